package knowledge

import (
	"errors"
	"math"
	"time"
)

// CAT termination rules.
const (
	CATMinItems = 10
	CATMaxItems = 50
	CATTargetSE = 0.3
)

var (
	ErrSessionTerminated = errors.New("adaptive session already terminated")
	ErrItemNotInBank     = errors.New("item not in session bank")
	ErrBankExhausted     = errors.New("no items left in bank")
)

// CATResponse is one administered item and its outcome.
type CATResponse struct {
	QuestionID uint `json:"questionId"`
	Correct    bool `json:"correct"`
}

// CATSession is the state of one adaptive test. It is serialized to Redis
// between requests, so everything on it must round-trip through JSON.
type CATSession struct {
	ID           string        `json:"id"`
	UserID       uint          `json:"userId"`
	ItemBank     []uint        `json:"itemBank"`
	Administered []uint        `json:"administered"`
	Responses    []CATResponse `json:"responses"`
	Ability      float64       `json:"ability"`
	SE           float64       `json:"se"`
	Terminated   bool          `json:"terminated"`
	StartedAt    time.Time     `json:"startedAt"`
}

func NewCATSession(id string, userID uint, itemBank []uint) *CATSession {
	return &CATSession{
		ID:        id,
		UserID:    userID,
		ItemBank:  itemBank,
		Ability:   0,
		SE:        1,
		StartedAt: time.Now(),
	}
}

// NextItem picks the unadministered item with the highest Fisher information
// at the current ability estimate.
func (s *CATSession) NextItem(params map[uint]ItemParams) (uint, error) {
	if s.Terminated {
		return 0, ErrSessionTerminated
	}

	seen := make(map[uint]bool, len(s.Administered))
	for _, id := range s.Administered {
		seen[id] = true
	}

	var best uint
	bestInfo := -1.0
	for _, id := range s.ItemBank {
		if seen[id] {
			continue
		}
		item, ok := params[id]
		if !ok {
			item = DefaultItemParams()
		}
		info := FisherInformation(s.Ability, item)
		if info > bestInfo {
			bestInfo = info
			best = id
		}
	}

	if bestInfo < 0 {
		return 0, ErrBankExhausted
	}
	return best, nil
}

// Submit records a response, re-estimates ability over the full response
// history and updates the standard error. Termination is evaluated but a
// terminated session still returns its final state.
func (s *CATSession) Submit(questionID uint, correct bool, params map[uint]ItemParams) error {
	if s.Terminated {
		return ErrSessionTerminated
	}
	if !s.inBank(questionID) {
		return ErrItemNotInBank
	}

	s.Administered = append(s.Administered, questionID)
	s.Responses = append(s.Responses, CATResponse{QuestionID: questionID, Correct: correct})

	responses := make([]Response, 0, len(s.Responses))
	for _, r := range s.Responses {
		item, ok := params[r.QuestionID]
		if !ok {
			item = DefaultItemParams()
		}
		responses = append(responses, Response{Item: item, Correct: r.Correct})
	}

	s.Ability = EstimateAbility(responses, s.Ability)
	s.SE = 1 / math.Sqrt(float64(len(s.Responses)))

	if s.shouldTerminate() {
		s.Terminated = true
	}
	return nil
}

func (s *CATSession) shouldTerminate() bool {
	n := len(s.Responses)
	if n < CATMinItems {
		return false
	}
	if n >= CATMaxItems {
		return true
	}
	if n >= len(s.ItemBank) {
		return true
	}
	return s.SE <= CATTargetSE
}

// Percentile converts the ability estimate to a percentile score.
func (s *CATSession) Percentile() float64 {
	return AbilityToPercentile(s.Ability)
}

// ConfidenceInterval is the 95% interval around the ability estimate.
func (s *CATSession) ConfidenceInterval() (float64, float64) {
	return s.Ability - 1.96*s.SE, s.Ability + 1.96*s.SE
}

func (s *CATSession) inBank(questionID uint) bool {
	for _, id := range s.ItemBank {
		if id == questionID {
			return true
		}
	}
	return false
}
