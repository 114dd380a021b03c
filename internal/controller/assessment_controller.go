package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

type CreateQuizRequest struct {
	TopicID          uint   `json:"topicId" binding:"required"`
	Title            string `json:"title" binding:"required"`
	QuestionCount    int    `json:"questionCount" binding:"required,min=1,max=50"`
	TimeLimitMinutes int    `json:"timeLimitMinutes"`
}

// CreateQuiz godoc
// @Summary Create a quiz from random topic questions
// @Tags assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateQuizRequest true "Quiz parameters"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *AssessmentController) CreateQuiz(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.AssessmentService.CreateQuiz(req.TopicID, req.Title, req.QuestionCount, req.TimeLimitMinutes)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestionsAvailable) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

// ListQuizzes godoc
// @Summary List published quizzes of a topic
// @Tags assessment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/topics/{id}/quizzes [get]
func (c *AssessmentController) ListQuizzes(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	quizzes, err := c.AssessmentService.ListQuizzes(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// StartQuiz godoc
// @Summary Start a quiz attempt
// @Tags assessment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/start [post]
func (c *AssessmentController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, questions, err := c.AssessmentService.StartQuiz(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuizNotPublished):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"attempt": attempt, "questions": questions})
}

type SubmitQuizRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required,dive"`
}

// SubmitQuiz godoc
// @Summary Submit quiz answers for grading
// @Tags assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Param body body SubmitQuizRequest true "Answers"
// @Success 200 {object} util.Response{data=service.QuizResultView}
// @Failure 409 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *AssessmentController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SubmitQuiz(claims.UserID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, result)
}

// GetAttempt godoc
// @Summary Get one of the user's quiz attempts
// @Tags assessment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AssessmentController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.AssessmentService.GetAttempt(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, attempt)
}
