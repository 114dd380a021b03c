package controller

import (
	"errors"
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdaptiveController struct {
	AdaptiveService *service.AdaptiveService
}

func NewAdaptiveController(adaptiveService *service.AdaptiveService) *AdaptiveController {
	return &AdaptiveController{AdaptiveService: adaptiveService}
}

type StartAdaptiveRequest struct {
	TopicIDs []uint `json:"topicIds" binding:"required,min=1"`
}

// Start godoc
// @Summary Start an adaptive test over the given topics
// @Tags adaptive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartAdaptiveRequest true "Topic scope"
// @Success 200 {object} util.Response{data=service.AdaptiveStartView}
// @Failure 404 {object} util.Response
// @Router /api/adaptive/start [post]
func (c *AdaptiveController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartAdaptiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdaptiveService.Start(claims.UserID, req.TopicIDs)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestionsAvailable) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

type AdaptiveAnswerRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Selected   int  `json:"selected"`
}

// Answer godoc
// @Summary Submit the current item's answer and get the next item
// @Tags adaptive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body AdaptiveAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=service.AdaptiveNextView}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/adaptive/{id}/answer [post]
func (c *AdaptiveController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := ctx.Param("id")

	var req AdaptiveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdaptiveService.SubmitAnswer(claims.UserID, sessionID, req.QuestionID, req.Selected)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, knowledge.ErrSessionTerminated):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, knowledge.ErrItemNotInBank):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Results godoc
// @Summary Current ability estimate and percentile for a session
// @Tags adaptive
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=service.AdaptiveResultView}
// @Failure 404 {object} util.Response
// @Router /api/adaptive/{id}/results [get]
func (c *AdaptiveController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.AdaptiveService.Results(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}
