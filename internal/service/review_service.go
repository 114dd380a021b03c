package service

import (
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"time"
)

type ReviewService struct {
	ReviewRepo  *repository.ReviewRepository
	SubjectRepo *repository.SubjectRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, subjectRepo *repository.SubjectRepository) *ReviewService {
	return &ReviewService{ReviewRepo: reviewRepo, SubjectRepo: subjectRepo}
}

// QualityFromAccuracy maps a score fraction onto the SM-2 quality scale.
func QualityFromAccuracy(fraction float64) int {
	switch {
	case fraction >= 0.9:
		return knowledge.QualityPerfect
	case fraction >= 0.75:
		return knowledge.QualityCorrect
	case fraction >= 0.6:
		return knowledge.QualityHard
	case fraction >= 0.4:
		return knowledge.QualityFamiliar
	case fraction >= 0.2:
		return knowledge.QualityIncorrect
	default:
		return knowledge.QualityBlackout
	}
}

// RecordReview advances the SM-2 schedule for an explicit review outcome.
func (s *ReviewService) RecordReview(userID, topicID uint, quality int) (*model.ReviewSchedule, error) {
	weights, err := s.SubjectRepo.TopicWeights()
	if err != nil {
		return nil, err
	}

	schedule, err := s.ReviewRepo.GetOrCreate(userID, topicID, weights[topicID])
	if err != nil {
		return nil, err
	}

	next := knowledge.NextReview(knowledge.ReviewState{
		Repetition:   schedule.Repetition,
		IntervalDays: schedule.IntervalDays,
		EaseFactor:   schedule.EaseFactor,
	}, quality)

	now := time.Now()
	schedule.Repetition = next.Repetition
	schedule.IntervalDays = next.IntervalDays
	schedule.EaseFactor = next.EaseFactor
	schedule.LastReviewedAt = &now
	schedule.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)

	if err := s.ReviewRepo.Update(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ApplyPracticeOutcome treats a scored practice session as an implicit
// review of its topic.
func (s *ReviewService) ApplyPracticeOutcome(userID, topicID uint, accuracy float64) error {
	_, err := s.RecordReview(userID, topicID, QualityFromAccuracy(accuracy))
	return err
}

// DueReviews returns the user's reviews ordered by priority.
func (s *ReviewService) DueReviews(userID uint, limit int) ([]model.DueReviewItem, error) {
	schedules, err := s.ReviewRepo.ListDue(userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.prioritize(schedules, limit)
}

// PlanReviewSession fits due reviews into the available minutes.
func (s *ReviewService) PlanReviewSession(userID uint, availableMinutes int) ([]model.DueReviewItem, error) {
	schedules, err := s.ReviewRepo.ListDue(userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.prioritize(schedules, knowledge.FitSession(availableMinutes))
}

func (s *ReviewService) prioritize(schedules []model.ReviewSchedule, limit int) ([]model.DueReviewItem, error) {
	now := time.Now()

	candidates := make([]knowledge.ReviewCandidate, 0, len(schedules))
	for _, sched := range schedules {
		last := sched.CreatedAt
		if sched.LastReviewedAt != nil {
			last = *sched.LastReviewedAt
		}
		candidates = append(candidates, knowledge.ReviewCandidate{
			TopicID:      sched.TopicID,
			LastReviewed: last,
			NextReview:   sched.NextReviewAt,
			EaseFactor:   sched.EaseFactor,
			Importance:   sched.Importance,
		})
	}

	ranked := knowledge.PrioritizeReviews(candidates, limit, now)

	topicIDs := make([]uint, 0, len(ranked))
	for _, c := range ranked {
		topicIDs = append(topicIDs, c.TopicID)
	}
	topics, err := s.SubjectRepo.FindTopicsByIDs(topicIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}

	items := make([]model.DueReviewItem, 0, len(ranked))
	for _, c := range ranked {
		daysOverdue := int(now.Sub(c.NextReview).Hours() / 24)
		if daysOverdue < 0 {
			daysOverdue = 0
		}
		items = append(items, model.DueReviewItem{
			TopicID:      c.TopicID,
			TopicName:    names[c.TopicID],
			NextReviewAt: c.NextReview,
			DaysOverdue:  daysOverdue,
			Priority:     c.Priority,
		})
	}
	return items, nil
}
