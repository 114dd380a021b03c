package service

import (
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type AssessmentService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ProgressRepo *repository.ProgressRepository
	Review       *ReviewService
	BKT          knowledge.BKTParams
}

func NewAssessmentService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	review *ReviewService,
) *AssessmentService {
	return &AssessmentService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ProgressRepo: progressRepo,
		Review:       review,
		BKT:          knowledge.DefaultBKTParams(),
	}
}

// QuestionView is a question stripped of its answer key.
type QuestionView struct {
	ID      uint               `json:"id"`
	Type    model.QuestionType `json:"type"`
	Text    string             `json:"text"`
	Options []string           `json:"options"`
}

func toQuestionView(q model.Question) QuestionView {
	return QuestionView{ID: q.ID, Type: q.Type, Text: q.Text, Options: q.Options}
}

type AnswerInput struct {
	QuestionID   uint `json:"questionId" binding:"required"`
	Selected     int  `json:"selected"`
	TimeSpentSec int  `json:"timeSpentSec"`
}

type QuizResultView struct {
	AttemptID uint                `json:"attemptId"`
	Score     int                 `json:"score"`
	Total     int                 `json:"total"`
	Accuracy  float64             `json:"accuracy"`
	Mastery   map[uint]float64    `json:"mastery"` // topicID -> updated mastery
	Review    []ResultExplanation `json:"review"`
}

type ResultExplanation struct {
	QuestionID  uint   `json:"questionId"`
	Selected    int    `json:"selected"`
	Correct     int    `json:"correct"`
	WasCorrect  bool   `json:"wasCorrect"`
	Explanation string `json:"explanation,omitempty"`
}

// CreateQuiz builds a quiz from randomly drawn active questions of a topic.
func (s *AssessmentService) CreateQuiz(topicID uint, title string, questionCount, timeLimitMinutes int) (*model.Quiz, error) {
	questions, err := s.QuestionRepo.RandomByTopic(topicID, questionCount)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	quiz := &model.Quiz{
		TopicID:          topicID,
		Title:            title,
		TimeLimitMinutes: timeLimitMinutes,
		Published:        true,
		Questions:        questions,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *AssessmentService) ListQuizzes(topicID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByTopic(topicID, true)
}

// StartQuiz opens an attempt and returns the questions without answers.
func (s *AssessmentService) StartQuiz(userID, quizID uint) (*model.QuizAttempt, []QuestionView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, nil, util.ErrQuizNotFound
	}
	if !quiz.Published {
		return nil, nil, util.ErrQuizNotPublished
	}

	attempt := &model.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: time.Now(),
		Total:     len(quiz.Questions),
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, nil, err
	}

	views := make([]QuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		views = append(views, toQuestionView(q))
	}
	return attempt, views, nil
}

// SubmitQuiz grades server-side, persists the answers, advances the BKT
// state of every touched topic and schedules the follow-up review.
func (s *AssessmentService) SubmitQuiz(userID, attemptID uint, answers []AnswerInput) (*QuizResultView, error) {
	attempt, err := s.QuizRepo.FindAttempt(attemptID, userID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Completed {
		return nil, util.ErrAlreadySubmitted
	}

	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byID[q.ID] = q
	}

	score := 0
	rows := make([]model.QuizAnswer, 0, len(answers))
	explanations := make([]ResultExplanation, 0, len(answers))
	topicResults := make(map[uint][]bool)

	for _, in := range answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d does not belong to this quiz", in.QuestionID)
		}
		correct := in.Selected == q.CorrectOption
		if correct {
			score++
		}
		rows = append(rows, model.QuizAnswer{
			QuizAttemptID: attempt.ID,
			QuestionID:    q.ID,
			Selected:      in.Selected,
			Correct:       correct,
			TimeSpentSec:  in.TimeSpentSec,
		})
		explanations = append(explanations, ResultExplanation{
			QuestionID:  q.ID,
			Selected:    in.Selected,
			Correct:     q.CorrectOption,
			WasCorrect:  correct,
			Explanation: q.Explanation,
		})
		topicResults[q.TopicID] = append(topicResults[q.TopicID], correct)
	}

	if err := s.QuizRepo.CreateAnswers(rows); err != nil {
		return nil, err
	}

	now := time.Now()
	attempt.Score = score
	attempt.Total = len(quiz.Questions)
	attempt.Completed = true
	attempt.CompletedAt = &now
	if err := s.QuizRepo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}

	mastery := make(map[uint]float64, len(topicResults))
	for topicID, results := range topicResults {
		updated, err := s.RecordPractice(userID, topicID, results)
		if err != nil {
			logger.Log.Error("knowledge update failed",
				zap.Uint("user_id", userID), zap.Uint("topic_id", topicID), zap.Error(err))
			continue
		}
		mastery[topicID] = updated

		correctCount := 0
		for _, r := range results {
			if r {
				correctCount++
			}
		}
		accuracy := float64(correctCount) / float64(len(results))
		if err := s.Review.ApplyPracticeOutcome(userID, topicID, accuracy); err != nil {
			logger.Log.Error("review schedule update failed",
				zap.Uint("user_id", userID), zap.Uint("topic_id", topicID), zap.Error(err))
		}
	}

	accuracy := 0.0
	if attempt.Total > 0 {
		accuracy = float64(score) / float64(attempt.Total) * 100
	}

	return &QuizResultView{
		AttemptID: attempt.ID,
		Score:     score,
		Total:     attempt.Total,
		Accuracy:  accuracy,
		Mastery:   mastery,
		Review:    explanations,
	}, nil
}

// RecordPractice replays a batch of responses through BKT for one topic and
// returns the updated mastery (0-100).
func (s *AssessmentService) RecordPractice(userID, topicID uint, results []bool) (float64, error) {
	progress, err := s.ProgressRepo.GetOrCreate(userID, topicID)
	if err != nil {
		return 0, err
	}

	_, pKnow := s.BKT.ProcessSequence(progress.PKnow, results)

	now := time.Now()
	progress.PKnow = pKnow
	progress.Mastery = pKnow * 100
	progress.Attempts += len(results)
	for _, r := range results {
		if r {
			progress.Correct++
		}
	}
	progress.LastPracticedAt = &now

	if err := s.ProgressRepo.Update(progress); err != nil {
		return 0, err
	}
	return progress.Mastery, nil
}

func (s *AssessmentService) GetAttempt(userID, attemptID uint) (*model.QuizAttempt, error) {
	return s.QuizRepo.FindAttempt(attemptID, userID)
}
