package service

import (
	"context"
	"encoding/json"
	"exam_prep_backend/internal/knowledge"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/monitoring"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Adaptive sessions are short-lived; an abandoned one simply expires.
const adaptiveSessionTTL = 2 * time.Hour

type AdaptiveService struct {
	Redis        *redis.Client
	QuestionRepo *repository.QuestionRepository
}

func NewAdaptiveService(rdb *redis.Client, questionRepo *repository.QuestionRepository) *AdaptiveService {
	return &AdaptiveService{Redis: rdb, QuestionRepo: questionRepo}
}

type AdaptiveStartView struct {
	SessionID string       `json:"sessionId"`
	Question  QuestionView `json:"question"`
	ItemCount int          `json:"itemCount"`
}

type AdaptiveNextView struct {
	SessionID  string        `json:"sessionId"`
	Question   *QuestionView `json:"question,omitempty"`
	Terminated bool          `json:"terminated"`
	ItemsAsked int           `json:"itemsAsked"`
}

type AdaptiveResultView struct {
	SessionID      string  `json:"sessionId"`
	Ability        float64 `json:"ability"`
	Percentile     float64 `json:"percentile"`
	ConfidenceLow  float64 `json:"confidenceLow"`
	ConfidenceHigh float64 `json:"confidenceHigh"`
	StandardError  float64 `json:"standardError"`
	ItemsAsked     int     `json:"itemsAsked"`
	CorrectCount   int     `json:"correctCount"`
	Terminated     bool    `json:"terminated"`
}

// Start opens an adaptive session over the active questions of the given
// topics and returns the first item.
func (s *AdaptiveService) Start(userID uint, topicIDs []uint) (*AdaptiveStartView, error) {
	bank, err := s.QuestionRepo.ActiveIDsByTopics(topicIDs)
	if err != nil {
		return nil, err
	}
	if len(bank) < knowledge.CATMinItems {
		return nil, util.ErrNoQuestionsAvailable
	}

	session := knowledge.NewCATSession(uuid.New().String(), userID, bank)

	params, err := s.itemParams(bank)
	if err != nil {
		return nil, err
	}

	first, err := session.NextItem(params)
	if err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FindByID(first)
	if err != nil {
		return nil, err
	}

	if err := s.save(session); err != nil {
		return nil, err
	}
	monitoring.AdaptiveSessionsActive.Inc()

	return &AdaptiveStartView{
		SessionID: session.ID,
		Question:  toQuestionView(*question),
		ItemCount: len(bank),
	}, nil
}

// SubmitAnswer grades the response, re-estimates ability and returns either
// the next item or the termination signal.
func (s *AdaptiveService) SubmitAnswer(userID uint, sessionID string, questionID uint, selected int) (*AdaptiveNextView, error) {
	session, err := s.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminated {
		return nil, knowledge.ErrSessionTerminated
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, knowledge.ErrItemNotInBank
	}
	correct := selected == question.CorrectOption

	params, err := s.itemParams(session.ItemBank)
	if err != nil {
		return nil, err
	}

	if err := session.Submit(questionID, correct, params); err != nil {
		return nil, err
	}

	view := &AdaptiveNextView{
		SessionID:  session.ID,
		Terminated: session.Terminated,
		ItemsAsked: len(session.Responses),
	}

	if !session.Terminated {
		nextID, err := session.NextItem(params)
		if err == knowledge.ErrBankExhausted {
			session.Terminated = true
			view.Terminated = true
		} else if err != nil {
			return nil, err
		} else {
			next, err := s.QuestionRepo.FindByID(nextID)
			if err != nil {
				return nil, err
			}
			v := toQuestionView(*next)
			view.Question = &v
		}
	}

	if session.Terminated {
		monitoring.AdaptiveSessionsActive.Dec()
	}

	if err := s.save(session); err != nil {
		return nil, err
	}
	return view, nil
}

// Results reports the current estimate; the session need not be terminated.
func (s *AdaptiveService) Results(userID uint, sessionID string) (*AdaptiveResultView, error) {
	session, err := s.load(userID, sessionID)
	if err != nil {
		return nil, err
	}

	low, high := session.ConfidenceInterval()
	correct := 0
	for _, r := range session.Responses {
		if r.Correct {
			correct++
		}
	}

	return &AdaptiveResultView{
		SessionID:      session.ID,
		Ability:        session.Ability,
		Percentile:     session.Percentile(),
		ConfidenceLow:  low,
		ConfidenceHigh: high,
		StandardError:  session.SE,
		ItemsAsked:     len(session.Responses),
		CorrectCount:   correct,
		Terminated:     session.Terminated,
	}, nil
}

func (s *AdaptiveService) itemParams(ids []uint) (map[uint]knowledge.ItemParams, error) {
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	params := make(map[uint]knowledge.ItemParams, len(questions))
	for _, q := range questions {
		params[q.ID] = itemParamsOf(q)
	}
	return params, nil
}

func itemParamsOf(q model.Question) knowledge.ItemParams {
	p := knowledge.ItemParams{
		Difficulty:     q.Difficulty,
		Discrimination: q.Discrimination,
		Guessing:       q.Guessing,
	}
	if p.Discrimination == 0 {
		p = knowledge.DefaultItemParams()
	}
	return p
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cat:session:%s", sessionID)
}

func (s *AdaptiveService) save(session *knowledge.CATSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Redis.Set(context.Background(), sessionKey(session.ID), data, adaptiveSessionTTL).Err()
}

func (s *AdaptiveService) load(userID uint, sessionID string) (*knowledge.CATSession, error) {
	data, err := s.Redis.Get(context.Background(), sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session knowledge.CATSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return &session, nil
}
