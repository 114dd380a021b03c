package controller

import (
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// Due godoc
// @Summary Due reviews ordered by priority
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items" default(20)
// @Success 200 {object} util.Response{data=[]model.DueReviewItem}
// @Router /api/reviews/due [get]
func (c *ReviewController) Due(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	items, err := c.ReviewService.DueReviews(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// PlanSession godoc
// @Summary Fit due reviews into an available time window
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param minutes query int false "Available minutes" default(30)
// @Success 200 {object} util.Response{data=[]model.DueReviewItem}
// @Router /api/reviews/session [get]
func (c *ReviewController) PlanSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	minutes, _ := strconv.Atoi(ctx.DefaultQuery("minutes", "30"))
	items, err := c.ReviewService.PlanReviewSession(claims.UserID, minutes)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

type RecordReviewRequest struct {
	Quality int `json:"quality" binding:"min=0,max=5"`
}

// Record godoc
// @Summary Record a review outcome for a topic
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param body body RecordReviewRequest true "Recall quality, 0-5"
// @Success 200 {object} util.Response{data=model.ReviewSchedule}
// @Router /api/reviews/topics/{id} [post]
func (c *ReviewController) Record(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req RecordReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Quality < knowledge.QualityBlackout || req.Quality > knowledge.QualityPerfect {
		util.BadRequest(ctx, "quality must be between 0 and 5")
		return
	}

	schedule, err := c.ReviewService.RecordReview(claims.UserID, id, req.Quality)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, schedule)
}
