package controller

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// ListSubjects godoc
// @Summary List subjects with their topics
// @Tags content
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/subjects [get]
func (c *ContentController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.ContentService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// GetSubject godoc
// @Summary Get one subject
// @Tags content
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{id} [get]
func (c *ContentController) GetSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	subject, err := c.ContentService.GetSubject(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, subject)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Subject true "Subject"
// @Success 201 {object} util.Response{data=model.Subject}
// @Router /api/admin/subjects [post]
func (c *ContentController) CreateSubject(ctx *gin.Context) {
	var subject model.Subject
	if err := ctx.ShouldBindJSON(&subject); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.CreateSubject(&subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param body body model.Subject true "Subject"
// @Success 200 {object} util.Response{data=model.Subject}
// @Router /api/admin/subjects/{id} [put]
func (c *ContentController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var subject model.Subject
	if err := ctx.ShouldBindJSON(&subject); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	subject.ID = id

	if err := c.ContentService.UpdateSubject(&subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Tags content
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{id} [delete]
func (c *ContentController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteSubject(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTopics godoc
// @Summary List the topics of a subject
// @Tags content
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Router /api/subjects/{id}/topics [get]
func (c *ContentController) ListTopics(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	topics, err := c.ContentService.ListTopics(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// CreateTopic godoc
// @Summary Create a topic
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Topic true "Topic"
// @Success 201 {object} util.Response{data=model.Topic}
// @Router /api/admin/topics [post]
func (c *ContentController) CreateTopic(ctx *gin.Context) {
	var topic model.Topic
	if err := ctx.ShouldBindJSON(&topic); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.CreateTopic(&topic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary Update a topic
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param body body model.Topic true "Topic"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/admin/topics/{id} [put]
func (c *ContentController) UpdateTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var topic model.Topic
	if err := ctx.ShouldBindJSON(&topic); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic.ID = id

	if err := c.ContentService.UpdateTopic(&topic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary Delete a topic
// @Tags content
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response
// @Router /api/admin/topics/{id} [delete]
func (c *ContentController) DeleteTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteTopic(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListQuestions godoc
// @Summary List the questions of a topic, paginated
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/topics/{id}/questions [get]
func (c *ContentController) ListQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	questions, total, err := c.ContentService.ListQuestions(id, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Question true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/admin/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.CreateQuestion(&question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param body body model.Question true "Question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [put]
func (c *ContentController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question.ID = id

	if err := c.ContentService.UpdateQuestion(&question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags content
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *ContentController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CalibrateQuestions godoc
// @Summary Recalibrate question difficulty from answer history
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/topics/{id}/calibrate [post]
func (c *ContentController) CalibrateQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	calibrated, err := c.ContentService.CalibrateQuestions(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"calibrated": calibrated})
}

// ListResources godoc
// @Summary List lecture resources of a topic
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]model.LectureResource}
// @Router /api/topics/{id}/resources [get]
func (c *ContentController) ListResources(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resources, err := c.ContentService.ListResources(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// UploadLecture godoc
// @Summary Upload a lecture video or document for a topic
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param title formData string true "Resource title"
// @Param kind formData string true "video, pdf or notes"
// @Param file formData file true "File"
// @Success 201 {object} util.Response{data=model.LectureResource}
// @Router /api/admin/topics/{id}/resources [post]
func (c *ContentController) UploadLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	title := ctx.PostForm("title")
	kind := ctx.PostForm("kind")
	if title == "" || (kind != "video" && kind != "pdf" && kind != "notes") {
		util.BadRequest(ctx, "title and kind (video|pdf|notes) are required")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	resource, err := c.ContentService.UploadLecture(claims.UserID, id, title, kind, file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

// DeleteResource godoc
// @Summary Delete a lecture resource
// @Tags content
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} util.Response
// @Router /api/admin/resources/{id} [delete]
func (c *ContentController) DeleteResource(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteResource(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// pathID parses a numeric path parameter, replying 400 on garbage.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
