package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/logger"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type RecommendationService struct {
	RecommendationRepo *repository.RecommendationRepository
	Analytics          *AnalyticsService
	Review             *ReviewService
	AI                 *AIService
}

func NewRecommendationService(
	recommendationRepo *repository.RecommendationRepository,
	analytics *AnalyticsService,
	review *ReviewService,
	ai *AIService,
) *RecommendationService {
	return &RecommendationService{
		RecommendationRepo: recommendationRepo,
		Analytics:          analytics,
		Review:             review,
		AI:                 ai,
	}
}

// Refresh rebuilds the user's recommendation list from the rule engine and,
// when the AI backend is available, adds a coaching narrative. AI failure
// never fails the request.
func (s *RecommendationService) Refresh(userID uint) ([]model.Recommendation, error) {
	recommendations := make([]model.Recommendation, 0, 8)

	weak, err := s.Analytics.WeakAreas(userID)
	if err != nil {
		return nil, err
	}
	for i, item := range weak {
		if i >= 3 {
			break
		}
		topicID := item.TopicID
		recommendations = append(recommendations, model.Recommendation{
			UserID:   userID,
			Type:     model.RecommendWeakTopic,
			Source:   model.SourceRule,
			Title:    fmt.Sprintf("Strengthen %s", item.TopicName),
			Body:     fmt.Sprintf("Mastery is at %.0f%%. Practice a focused quiz on this topic.", item.Mastery),
			TopicID:  &topicID,
			Priority: 80 - i*10,
		})
	}

	due, err := s.Review.DueReviews(userID, 3)
	if err != nil {
		return nil, err
	}
	for i, item := range due {
		topicID := item.TopicID
		body := fmt.Sprintf("Review of %s is due.", item.TopicName)
		if item.DaysOverdue > 0 {
			body = fmt.Sprintf("Review of %s is %d days overdue. Retention drops fast once a review slips.", item.TopicName, item.DaysOverdue)
		}
		recommendations = append(recommendations, model.Recommendation{
			UserID:   userID,
			Type:     model.RecommendOverdueReview,
			Source:   model.SourceRule,
			Title:    fmt.Sprintf("Review %s", item.TopicName),
			Body:     body,
			TopicID:  &topicID,
			Priority: 70 - i*10,
		})
	}

	trend, err := s.Analytics.Trend(userID, 4)
	if err == nil && trend.Trend == "declining" {
		recommendations = append(recommendations, model.Recommendation{
			UserID:   userID,
			Type:     model.RecommendTrend,
			Source:   model.SourceRule,
			Title:    "Your scores dipped this week",
			Body:     "Recent quiz scores are below last week's. Shorter, more frequent sessions usually recover the slope.",
			Priority: 60,
		})
	}

	readiness, err := s.Analytics.Readiness(userID)
	if err == nil && readiness.Band != "at_risk" {
		recommendations = append(recommendations, model.Recommendation{
			UserID:   userID,
			Type:     model.RecommendMockTest,
			Source:   model.SourceRule,
			Title:    "Take a full mock test",
			Body:     "Your mastery supports a timed full-length run. Mock tests are the best predictor of the real score.",
			Priority: 40,
		})
	}

	if s.AI.Enabled() && readiness != nil {
		if narrative := s.narrative(weak, readiness); narrative != "" {
			recommendations = append(recommendations, model.Recommendation{
				UserID:   userID,
				Type:     model.RecommendNarrative,
				Source:   model.SourceAI,
				Title:    "Coach's note",
				Body:     narrative,
				Priority: 50,
			})
		}
	}

	if err := s.RecommendationRepo.Replace(userID, recommendations); err != nil {
		return nil, err
	}
	return s.RecommendationRepo.ListForUser(userID)
}

func (s *RecommendationService) narrative(weak []model.TopicMasteryItem, readiness *model.ExamReadiness) string {
	var summary strings.Builder
	fmt.Fprintf(&summary, "Predicted exam score: %.0f%% (%s).", readiness.PredictedScore, readiness.Band)
	if readiness.DaysToExam > 0 {
		fmt.Fprintf(&summary, " Days to exam: %d.", readiness.DaysToExam)
	}
	if len(weak) > 0 {
		names := make([]string, 0, len(weak))
		for _, w := range weak {
			names = append(names, fmt.Sprintf("%s (%.0f%%)", w.TopicName, w.Mastery))
		}
		fmt.Fprintf(&summary, " Weak topics: %s.", strings.Join(names, ", "))
	}

	advice, err := s.AI.StudyAdvice(summary.String())
	if err != nil {
		logger.Log.Warn("AI advice unavailable", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(advice)
}

func (s *RecommendationService) List(userID uint) ([]model.Recommendation, error) {
	return s.RecommendationRepo.ListForUser(userID)
}

func (s *RecommendationService) Acknowledge(recommendationID, userID uint) error {
	return s.RecommendationRepo.Acknowledge(recommendationID, userID)
}
