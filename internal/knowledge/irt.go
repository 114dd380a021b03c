package knowledge

import "math"

// ItemParams are the 3PL item parameters.
type ItemParams struct {
	Difficulty     float64 // b
	Discrimination float64 // a
	Guessing       float64 // c
}

// DefaultItemParams suits an uncalibrated 4-option MCQ.
func DefaultItemParams() ItemParams {
	return ItemParams{Difficulty: 0, Discrimination: 1, Guessing: 0.25}
}

// Response pairs an item with whether it was answered correctly.
type Response struct {
	Item    ItemParams
	Correct bool
}

const (
	abilityMin  = -4.0
	abilityMax  = 4.0
	mleTol      = 1e-4
	mleMaxIters = 100
)

// Probability3PL is P(correct) = c + (1-c) / (1 + e^(-a(θ-b))).
func Probability3PL(ability float64, item ItemParams) float64 {
	exponent := item.Discrimination * (ability - item.Difficulty)
	return item.Guessing + (1-item.Guessing)*sigmoid(exponent)
}

// EstimateAbility finds the maximum-likelihood ability for the observed
// responses by Newton-Raphson on the log-likelihood. The estimate is clamped
// to [-4, 4]; with no responses the initial value is returned unchanged.
func EstimateAbility(responses []Response, initial float64) float64 {
	if len(responses) == 0 {
		return initial
	}

	theta := initial
	for i := 0; i < mleMaxIters; i++ {
		grad, hess := scoreAndInfo(theta, responses)
		if hess == 0 {
			break
		}
		// Newton step: the observed information approximates -L''.
		step := grad / hess
		theta += step
		theta = clampAbility(theta)
		if math.Abs(step) < mleTol {
			break
		}
	}
	return clampAbility(theta)
}

// scoreAndInfo returns the gradient of the log-likelihood and the Fisher
// information (used as the Newton denominator).
func scoreAndInfo(theta float64, responses []Response) (float64, float64) {
	var grad, info float64
	for _, r := range responses {
		p := Probability3PL(theta, r.Item)
		p = clampProb(p)
		dp := probDerivative(theta, r.Item)

		u := 0.0
		if r.Correct {
			u = 1.0
		}
		grad += (u - p) / (p * (1 - p)) * dp
		info += dp * dp / (p * (1 - p))
	}
	return grad, info
}

// probDerivative is dP/dθ for the 3PL model.
func probDerivative(theta float64, item ItemParams) float64 {
	s := sigmoid(item.Discrimination * (theta - item.Difficulty))
	return (1 - item.Guessing) * item.Discrimination * s * (1 - s)
}

// FisherInformation is the item information at the given ability, the 3PL
// form with the guessing correction.
func FisherInformation(ability float64, item ItemParams) float64 {
	p := Probability3PL(ability, item)
	p = clampProb(p)
	q := 1 - p
	a := item.Discrimination
	c := item.Guessing
	return a * a * (q / p) * ((p - c) * (p - c)) / ((1 - c) * (1 - c))
}

// CalibrateDifficulty converts an observed proportion correct to a logit
// difficulty, clamping away from 0 and 1.
func CalibrateDifficulty(pCorrect float64) float64 {
	if pCorrect > 0.99 {
		pCorrect = 0.99
	}
	if pCorrect < 0.01 {
		pCorrect = 0.01
	}
	return -math.Log(pCorrect / (1 - pCorrect))
}

// AbilityToPercentile maps an ability on the N(0,1) scale to a percentile.
func AbilityToPercentile(ability float64) float64 {
	percentile := 0.5 * (1 + math.Erf(ability/math.Sqrt2)) * 100
	return math.Round(percentile*100) / 100
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clampAbility(v float64) float64 {
	if v < abilityMin {
		return abilityMin
	}
	if v > abilityMax {
		return abilityMax
	}
	return v
}

func clampProb(p float64) float64 {
	const eps = 1e-10
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
