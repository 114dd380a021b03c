package service

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/monitoring"
	"time"
)

type StudyPlanService struct {
	PlanRepo  *repository.StudyPlanRepository
	UserRepo  *repository.UserRepository
	Review    *ReviewService
	Analytics *AnalyticsService
	Cfg       config.PlanConfig
}

func NewStudyPlanService(
	planRepo *repository.StudyPlanRepository,
	userRepo *repository.UserRepository,
	review *ReviewService,
	analytics *AnalyticsService,
	cfg config.PlanConfig,
) *StudyPlanService {
	return &StudyPlanService{
		PlanRepo:  planRepo,
		UserRepo:  userRepo,
		Review:    review,
		Analytics: analytics,
		Cfg:       cfg,
	}
}

// Generate builds a fresh weekly plan from the user's exam date, daily time
// budget, due reviews and weak areas, replacing any active plan.
func (s *StudyPlanService) Generate(userID uint) (*model.StudyPlan, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.ExamDate == nil || !user.ExamDate.After(time.Now()) {
		return nil, util.ErrExamDateInPast
	}

	now := time.Now()
	daysRemaining := int(user.ExamDate.Sub(now).Hours()/24) + 1
	dailyMinutes := int(user.DailyStudyHours * 60)

	due, err := s.Review.DueReviews(userID, 0)
	if err != nil {
		return nil, err
	}
	reviewTopics := make([]PlanTopic, 0, len(due))
	for _, d := range due {
		reviewTopics = append(reviewTopics, PlanTopic{ID: d.TopicID, Name: d.TopicName})
	}

	weak, err := s.Analytics.WeakAreas(userID)
	if err != nil {
		return nil, err
	}
	weakTopics := make([]PlanTopic, 0, len(weak))
	for _, w := range weak {
		weakTopics = append(weakTopics, PlanTopic{ID: w.TopicID, Name: w.TopicName})
	}

	sessions := BuildWeeklySchedule(ScheduleInput{
		DaysRemaining:   daysRemaining,
		DailyMinutes:    dailyMinutes,
		SessionMinutes:  s.Cfg.SessionMinutes,
		StartDay:        now.Weekday(),
		ReviewTopics:    reviewTopics,
		WeakTopics:      weakTopics,
		IncludeMockTest: s.Cfg.MockTestsPerWeek > 0,
	})

	plan := &model.StudyPlan{
		UserID:        userID,
		ExamDate:      *user.ExamDate,
		DaysRemaining: daysRemaining,
		DailyMinutes:  dailyMinutes,
		Active:        true,
		GeneratedAt:   now,
		Sessions:      sessions,
	}
	if err := s.PlanRepo.Replace(plan); err != nil {
		return nil, err
	}

	monitoring.PlanGenerations.Inc()
	return plan, nil
}

func (s *StudyPlanService) GetActive(userID uint) (*model.StudyPlan, error) {
	return s.PlanRepo.FindActive(userID)
}

// CompleteSession marks one scheduled block done.
func (s *StudyPlanService) CompleteSession(userID, sessionID uint) (*model.StudySession, error) {
	session, err := s.PlanRepo.FindSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return session, nil
	}

	session.Completed = true
	if err := s.PlanRepo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// TodaySessions returns the active plan's blocks for the current weekday.
func (s *StudyPlanService) TodaySessions(userID uint) ([]model.StudySession, error) {
	plan, err := s.PlanRepo.FindActive(userID)
	if err != nil {
		return nil, nil
	}

	today := time.Now().Weekday().String()
	sessions := make([]model.StudySession, 0)
	for _, session := range plan.Sessions {
		if session.Day == today {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}
