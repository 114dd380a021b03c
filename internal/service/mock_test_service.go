package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockTestService struct {
	MockTestRepo *repository.MockTestRepository
	QuestionRepo *repository.QuestionRepository
	Assessment   *AssessmentService
	Leaderboard  *LeaderboardService
}

func NewMockTestService(
	mockTestRepo *repository.MockTestRepository,
	questionRepo *repository.QuestionRepository,
	assessment *AssessmentService,
	leaderboard *LeaderboardService,
) *MockTestService {
	return &MockTestService{
		MockTestRepo: mockTestRepo,
		QuestionRepo: questionRepo,
		Assessment:   assessment,
		Leaderboard:  leaderboard,
	}
}

func (s *MockTestService) List() ([]model.MockTest, error) {
	return s.MockTestRepo.List(true)
}

type MockTestStartView struct {
	Attempt   *model.MockTestAttempt `json:"attempt"`
	Questions []QuestionView         `json:"questions"`
	Deadline  time.Time              `json:"deadline"`
}

// Start opens a timed attempt. An unfinished attempt on the same test is
// resumed; one whose deadline already passed is closed out with its partial
// score so a fresh attempt can begin.
func (s *MockTestService) Start(userID, testID uint) (*MockTestStartView, error) {
	test, err := s.MockTestRepo.FindByID(testID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if !test.Published {
		return nil, util.ErrQuizNotPublished
	}

	now := time.Now()
	attempt, err := s.MockTestRepo.FindOpenAttempt(userID, testID)
	if err == nil && now.After(attempt.Deadline) {
		attempt.Completed = true
		if uerr := s.MockTestRepo.UpdateAttempt(attempt); uerr != nil {
			return nil, uerr
		}
		err = gorm.ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attempt = &model.MockTestAttempt{
			UserID:     userID,
			MockTestID: testID,
			StartedAt:  now,
			Deadline:   now.Add(time.Duration(test.DurationMinutes) * time.Minute),
			Total:      len(test.Questions),
		}
		if err := s.MockTestRepo.CreateAttempt(attempt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	views := make([]QuestionView, 0, len(test.Questions))
	for _, q := range test.Questions {
		views = append(views, toQuestionView(q))
	}

	return &MockTestStartView{Attempt: attempt, Questions: views, Deadline: attempt.Deadline}, nil
}

type MockTestResultView struct {
	AttemptID  uint    `json:"attemptId"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Percentile float64 `json:"percentile"`
}

// Submit grades the attempt, feeds the knowledge tracer and records the
// score on the leaderboard. Late and duplicate submissions are rejected.
func (s *MockTestService) Submit(userID, attemptID uint, answers []AnswerInput) (*MockTestResultView, error) {
	attempt, err := s.MockTestRepo.FindAttempt(attemptID, userID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Completed {
		return nil, util.ErrAlreadySubmitted
	}
	if time.Now().After(attempt.Deadline) {
		return nil, util.ErrDeadlinePassed
	}

	test, err := s.MockTestRepo.FindByID(attempt.MockTestID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Question, len(test.Questions))
	for _, q := range test.Questions {
		byID[q.ID] = q
	}

	score := 0
	rows := make([]model.MockTestAnswer, 0, len(answers))
	topicResults := make(map[uint][]bool)

	for _, in := range answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d does not belong to this test", in.QuestionID)
		}
		correct := in.Selected == q.CorrectOption
		if correct {
			score++
		}
		rows = append(rows, model.MockTestAnswer{
			MockTestAttemptID: attempt.ID,
			QuestionID:        q.ID,
			Selected:          in.Selected,
			Correct:           correct,
		})
		topicResults[q.TopicID] = append(topicResults[q.TopicID], correct)
	}

	if err := s.MockTestRepo.CreateAnswers(rows); err != nil {
		return nil, err
	}

	now := time.Now()
	attempt.Score = score
	attempt.Total = len(test.Questions)
	attempt.Completed = true
	attempt.SubmittedAt = &now
	if err := s.MockTestRepo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}

	for topicID, results := range topicResults {
		if _, err := s.Assessment.RecordPractice(userID, topicID, results); err != nil {
			logger.Log.Error("knowledge update failed",
				zap.Uint("user_id", userID), zap.Uint("topic_id", topicID), zap.Error(err))
		}
	}

	percentage := 0.0
	if attempt.Total > 0 {
		percentage = float64(score) / float64(attempt.Total) * 100
	}

	if err := s.Leaderboard.RecordScore(userID, percentage); err != nil {
		logger.Log.Warn("leaderboard update failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	percentile, err := s.Leaderboard.Percentile(percentage)
	if err != nil {
		logger.Log.Warn("percentile lookup failed", zap.Error(err))
	}

	return &MockTestResultView{
		AttemptID:  attempt.ID,
		Score:      score,
		Total:      attempt.Total,
		Percentage: percentage,
		Percentile: percentile,
	}, nil
}

// CreateMockTest assembles a full-length test by drawing questions across
// the given topics proportionally.
func (s *MockTestService) CreateMockTest(title string, topicIDs []uint, questionsPerTopic, durationMinutes int) (*model.MockTest, error) {
	var questions []model.Question
	for _, topicID := range topicIDs {
		drawn, err := s.QuestionRepo.RandomByTopic(topicID, questionsPerTopic)
		if err != nil {
			return nil, err
		}
		questions = append(questions, drawn...)
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	test := &model.MockTest{
		Title:           title,
		DurationMinutes: durationMinutes,
		TotalMarks:      len(questions),
		Published:       true,
		Questions:       questions,
	}
	if err := s.MockTestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}
