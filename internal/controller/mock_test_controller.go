package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MockTestController struct {
	MockTestService    *service.MockTestService
	LeaderboardService *service.LeaderboardService
}

func NewMockTestController(mockTestService *service.MockTestService, leaderboardService *service.LeaderboardService) *MockTestController {
	return &MockTestController{MockTestService: mockTestService, LeaderboardService: leaderboardService}
}

// List godoc
// @Summary List published mock tests
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.MockTest}
// @Router /api/mock-tests [get]
func (c *MockTestController) List(ctx *gin.Context) {
	tests, err := c.MockTestService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// Start godoc
// @Summary Start or resume a timed mock test attempt
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mock test ID"
// @Success 200 {object} util.Response{data=service.MockTestStartView}
// @Router /api/mock-tests/{id}/start [post]
func (c *MockTestController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.MockTestService.Start(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuizNotPublished):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

type SubmitMockTestRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required,dive"`
}

// Submit godoc
// @Summary Submit a mock test before its deadline
// @Tags mock-tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Param body body SubmitMockTestRequest true "Answers"
// @Success 200 {object} util.Response{data=service.MockTestResultView}
// @Failure 409 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /api/mock-attempts/{id}/submit [post]
func (c *MockTestController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req SubmitMockTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.MockTestService.Submit(claims.UserID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrDeadlinePassed):
			util.Gone(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, result)
}

type CreateMockTestRequest struct {
	Title             string `json:"title" binding:"required"`
	TopicIDs          []uint `json:"topicIds" binding:"required,min=1"`
	QuestionsPerTopic int    `json:"questionsPerTopic" binding:"required,min=1,max=50"`
	DurationMinutes   int    `json:"durationMinutes" binding:"required,min=10"`
}

// Create godoc
// @Summary Create a mock test drawing questions across topics
// @Tags mock-tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMockTestRequest true "Test parameters"
// @Success 201 {object} util.Response{data=model.MockTest}
// @Router /api/admin/mock-tests [post]
func (c *MockTestController) Create(ctx *gin.Context) {
	var req CreateMockTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.MockTestService.CreateMockTest(req.Title, req.TopicIDs, req.QuestionsPerTopic, req.DurationMinutes)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestionsAvailable) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, test)
}

// Leaderboard godoc
// @Summary Top mock test scores
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Entries" default(10)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *MockTestController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := c.LeaderboardService.Top(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
