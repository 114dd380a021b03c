package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Overview godoc
// @Summary Progress overview across all topics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ProgressOverview}
// @Router /api/progress/analytics [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.AnalyticsService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// Trend godoc
// @Summary Weekly score and mastery trend
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param weeks query int false "Weeks to include" default(8)
// @Success 200 {object} util.Response{data=model.LearningTrend}
// @Router /api/progress/trend [get]
func (c *AnalyticsController) Trend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	weeks, _ := strconv.Atoi(ctx.DefaultQuery("weeks", "8"))
	trend, err := c.AnalyticsService.Trend(claims.UserID, weeks)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trend)
}

// BySubject godoc
// @Summary Mastery breakdown per subject
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SubjectBreakdown}
// @Router /api/progress/subjects [get]
func (c *AnalyticsController) BySubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	breakdown, err := c.AnalyticsService.BySubject(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, breakdown)
}

// WeakAreas godoc
// @Summary Topics below the mastery threshold, weakest first
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TopicMasteryItem}
// @Router /api/progress/weak-areas [get]
func (c *AnalyticsController) WeakAreas(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	weak, err := c.AnalyticsService.WeakAreas(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, weak)
}

// Readiness godoc
// @Summary Predicted exam score with confidence band
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ExamReadiness}
// @Router /api/progress/readiness [get]
func (c *AnalyticsController) Readiness(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	readiness, err := c.AnalyticsService.Readiness(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, readiness)
}
