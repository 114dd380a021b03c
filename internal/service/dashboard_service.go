package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

// DashboardService aggregates the landing-page payload from the other
// services. Partial failures degrade to empty sections rather than a 500.
type DashboardService struct {
	Plan      *StudyPlanService
	Review    *ReviewService
	Analytics *AnalyticsService
}

func NewDashboardService(plan *StudyPlanService, review *ReviewService, analytics *AnalyticsService) *DashboardService {
	return &DashboardService{Plan: plan, Review: review, Analytics: analytics}
}

func (s *DashboardService) Get(userID uint) (*model.DashboardData, error) {
	data := &model.DashboardData{
		TodaySessions: []model.StudySession{},
		DueReviews:    []model.DueReviewItem{},
	}

	if sessions, err := s.Plan.TodaySessions(userID); err == nil && sessions != nil {
		data.TodaySessions = sessions
		data.HasActivePlan = true
	}

	due, err := s.Review.DueReviews(userID, 5)
	if err != nil {
		logger.Log.Warn("dashboard reviews unavailable", zap.Uint("user_id", userID), zap.Error(err))
	} else {
		data.DueReviews = due
	}

	readiness, err := s.Analytics.Readiness(userID)
	if err != nil {
		logger.Log.Warn("dashboard readiness unavailable", zap.Uint("user_id", userID), zap.Error(err))
	} else {
		data.Readiness = readiness
	}

	return data, nil
}
