// Package knowledge implements the learner-modelling algorithms: Bayesian
// Knowledge Tracing for mastery, SM-2 spaced repetition for review
// scheduling, and a 3PL IRT model with adaptive item selection.
package knowledge

// Mastery thresholds shared across the service. Mastery is P(know) scaled
// to 0-100.
const (
	WeakMastery     = 60.0
	MasteredMastery = 95.0
)

// BKTParams are the four classic BKT parameters.
type BKTParams struct {
	PInit  float64 // prior probability of knowing the skill
	PLearn float64 // probability of learning at each opportunity
	PSlip  float64 // probability of answering wrong despite knowing
	PGuess float64 // probability of guessing right without knowing
}

func DefaultBKTParams() BKTParams {
	return BKTParams{PInit: 0.5, PLearn: 0.3, PSlip: 0.1, PGuess: 0.2}
}

// Update applies Bayes' rule for the observed answer, then the learning
// transition. A degenerate posterior (zero evidence mass) keeps the prior.
func (p BKTParams) Update(pKnow float64, correct bool) float64 {
	var likelihoodKnow, likelihoodNotKnow float64
	if correct {
		likelihoodKnow = 1 - p.PSlip
		likelihoodNotKnow = p.PGuess
	} else {
		likelihoodKnow = p.PSlip
		likelihoodNotKnow = 1 - p.PGuess
	}

	numerator := likelihoodKnow * pKnow
	denominator := likelihoodKnow*pKnow + likelihoodNotKnow*(1-pKnow)

	posterior := pKnow
	if denominator > 0 {
		posterior = numerator / denominator
	}

	next := posterior + (1-posterior)*p.PLearn
	return clamp01(next)
}

// PredictCorrect is the probability the next answer is right given the
// current knowledge state.
func (p BKTParams) PredictCorrect(pKnow float64) float64 {
	return pKnow*(1-p.PSlip) + (1-pKnow)*p.PGuess
}

// ProcessSequence replays a response history and returns the trajectory and
// the final state.
func (p BKTParams) ProcessSequence(pInit float64, responses []bool) ([]float64, float64) {
	pKnow := pInit
	trajectory := make([]float64, 0, len(responses))
	for _, correct := range responses {
		pKnow = p.Update(pKnow, correct)
		trajectory = append(trajectory, pKnow)
	}
	return trajectory, pKnow
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
