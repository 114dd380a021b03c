package service

import (
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"fmt"
	"time"
)

type AnalyticsService struct {
	ProgressRepo *repository.ProgressRepository
	SubjectRepo  *repository.SubjectRepository
	QuizRepo     *repository.QuizRepository
	MockTestRepo *repository.MockTestRepository
	UserRepo     *repository.UserRepository
}

func NewAnalyticsService(
	progressRepo *repository.ProgressRepository,
	subjectRepo *repository.SubjectRepository,
	quizRepo *repository.QuizRepository,
	mockTestRepo *repository.MockTestRepository,
	userRepo *repository.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		ProgressRepo: progressRepo,
		SubjectRepo:  subjectRepo,
		QuizRepo:     quizRepo,
		MockTestRepo: mockTestRepo,
		UserRepo:     userRepo,
	}
}

func (s *AnalyticsService) Overview(userID uint) (*model.ProgressOverview, error) {
	topics, err := s.SubjectRepo.ListAllTopics()
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	attempts, correct, err := s.ProgressRepo.Totals(userID)
	if err != nil {
		return nil, err
	}

	overview := &model.ProgressOverview{
		TotalTopics:       len(topics),
		QuestionsAnswered: int(attempts),
	}

	var masterySum float64
	for _, p := range progress {
		if p.Attempts == 0 {
			continue
		}
		overview.PracticedTopics++
		masterySum += p.Mastery
		if p.Mastery < knowledge.WeakMastery {
			overview.WeakTopics++
		}
		if p.Mastery >= knowledge.MasteredMastery {
			overview.MasteredTopics++
		}
	}
	if overview.PracticedTopics > 0 {
		overview.AverageMastery = masterySum / float64(overview.PracticedTopics)
	}
	if attempts > 0 {
		overview.Accuracy = float64(correct) / float64(attempts) * 100
	}
	return overview, nil
}

// Trend rolls the current week into a snapshot and reports the last n weeks
// with a direction label.
func (s *AnalyticsService) Trend(userID uint, weeks int) (*model.LearningTrend, error) {
	if weeks <= 0 {
		weeks = 8
	}

	if err := s.snapshotCurrentWeek(userID); err != nil {
		return nil, err
	}

	snapshots, err := s.ProgressRepo.ListSnapshots(userID, weeks)
	if err != nil {
		return nil, err
	}

	points := make([]model.TrendPoint, 0, len(snapshots))
	for _, snap := range snapshots {
		points = append(points, model.TrendPoint{
			Week:              snap.Week,
			AverageScore:      snap.AverageScore,
			QuestionsAnswered: snap.QuestionsAnswered,
			AverageMastery:    snap.AverageMastery,
		})
	}

	return &model.LearningTrend{Weeks: points, Trend: ComputeTrend(points)}, nil
}

func (s *AnalyticsService) snapshotCurrentWeek(userID uint) error {
	scores, err := s.QuizRepo.RecentScores(userID, 20)
	if err != nil {
		return err
	}

	avgScore := 0.0
	for _, v := range scores {
		avgScore += v
	}
	if len(scores) > 0 {
		avgScore /= float64(len(scores))
	}

	avgMastery, err := s.ProgressRepo.AverageMastery(userID)
	if err != nil {
		return err
	}

	attempts, _, err := s.ProgressRepo.Totals(userID)
	if err != nil {
		return err
	}

	year, week := time.Now().ISOWeek()
	return s.ProgressRepo.UpsertSnapshot(&model.ProgressSnapshot{
		UserID:            userID,
		Week:              fmt.Sprintf("%d-%02d", year, week),
		AverageScore:      avgScore,
		QuestionsAnswered: int(attempts),
		AverageMastery:    avgMastery,
	})
}

// BySubject groups mastery per subject, averaged over its topics.
func (s *AnalyticsService) BySubject(userID uint) ([]model.SubjectBreakdown, error) {
	subjects, err := s.SubjectRepo.List()
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	byTopic := make(map[uint]model.TopicProgress, len(progress))
	for _, p := range progress {
		byTopic[p.TopicID] = p
	}

	out := make([]model.SubjectBreakdown, 0, len(subjects))
	for _, subject := range subjects {
		breakdown := model.SubjectBreakdown{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
		}

		var masterySum float64
		for _, topic := range subject.Topics {
			item := model.TopicMasteryItem{
				TopicID:   topic.ID,
				TopicName: topic.Name,
				Mastery:   50, // neutral prior until first practice
			}
			if p, ok := byTopic[topic.ID]; ok {
				item.Mastery = p.Mastery
				item.Attempts = p.Attempts
				if p.Attempts > 0 {
					item.Accuracy = float64(p.Correct) / float64(p.Attempts) * 100
				}
			}
			masterySum += item.Mastery
			breakdown.Topics = append(breakdown.Topics, item)
		}
		if len(subject.Topics) > 0 {
			breakdown.AverageMastery = masterySum / float64(len(subject.Topics))
		}
		out = append(out, breakdown)
	}
	return out, nil
}

// WeakAreas lists topics below the weak-mastery threshold, weakest first.
func (s *AnalyticsService) WeakAreas(userID uint) ([]model.TopicMasteryItem, error) {
	return s.ProgressRepo.WeakTopics(userID, knowledge.WeakMastery)
}

// Readiness predicts the user's exam outcome from recent quiz and mock test
// performance, mastery and syllabus coverage.
func (s *AnalyticsService) Readiness(userID uint) (*model.ExamReadiness, error) {
	quizScores, err := s.QuizRepo.RecentScores(userID, 10)
	if err != nil {
		return nil, err
	}
	mockScores, err := s.MockTestRepo.RecentScores(userID, 5)
	if err != nil {
		return nil, err
	}
	scores := append(quizScores, mockScores...)

	avgMastery, err := s.ProgressRepo.AverageMastery(userID)
	if err != nil {
		return nil, err
	}

	topics, err := s.SubjectRepo.ListAllTopics()
	if err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	practiced := 0
	for _, p := range progress {
		if p.Attempts > 0 {
			practiced++
		}
	}
	coverage := 0.0
	if len(topics) > 0 {
		coverage = float64(practiced) / float64(len(topics))
	}

	weak, err := s.ProgressRepo.WeakTopics(userID, knowledge.WeakMastery)
	if err != nil {
		return nil, err
	}

	readiness := ComputeReadiness(ReadinessInput{
		RecentScores:   scores,
		AverageMastery: avgMastery,
		Coverage:       coverage,
		WeakTopicCount: len(weak),
	})

	user, err := s.UserRepo.FindByID(userID)
	if err == nil && user.ExamDate != nil {
		days := int(time.Until(*user.ExamDate).Hours() / 24)
		if days > 0 {
			readiness.DaysToExam = days
		}
	}
	return &readiness, nil
}
