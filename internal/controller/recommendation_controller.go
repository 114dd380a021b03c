package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// List godoc
// @Summary Current study recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Recommendation}
// @Router /api/ai/recommendations [get]
func (c *RecommendationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recommendations, err := c.RecommendationService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recommendations)
}

// Refresh godoc
// @Summary Rebuild recommendations from current performance
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Recommendation}
// @Router /api/ai/recommendations/refresh [post]
func (c *RecommendationController) Refresh(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recommendations, err := c.RecommendationService.Refresh(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recommendations)
}

// Acknowledge godoc
// @Summary Dismiss a recommendation
// @Tags recommendations
// @Security BearerAuth
// @Param id path int true "Recommendation ID"
// @Success 200 {object} util.Response
// @Router /api/ai/recommendations/{id}/ack [post]
func (c *RecommendationController) Acknowledge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.RecommendationService.Acknowledge(id, claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
