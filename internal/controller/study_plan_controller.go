package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudyPlanController struct {
	StudyPlanService *service.StudyPlanService
}

func NewStudyPlanController(studyPlanService *service.StudyPlanService) *StudyPlanController {
	return &StudyPlanController{StudyPlanService: studyPlanService}
}

// Generate godoc
// @Summary Generate a weekly study plan from the user's exam date
// @Tags study-plan
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.StudyPlan}
// @Failure 400 {object} util.Response
// @Router /api/study-plan/generate [post]
func (c *StudyPlanController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, err := c.StudyPlanService.Generate(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamDateInPast):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, plan)
}

// GetActive godoc
// @Summary Get the active study plan
// @Tags study-plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.StudyPlan}
// @Failure 404 {object} util.Response
// @Router /api/study-plan [get]
func (c *StudyPlanController) GetActive(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, err := c.StudyPlanService.GetActive(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, plan)
}

// CompleteSession godoc
// @Summary Mark a planned session as completed
// @Tags study-plan
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} util.Response{data=model.StudySession}
// @Failure 404 {object} util.Response
// @Router /api/study-plan/sessions/{id}/complete [post]
func (c *StudyPlanController) CompleteSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.StudyPlanService.CompleteSession(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}
