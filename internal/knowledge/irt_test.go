package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbability3PL(t *testing.T) {
	item := ItemParams{Difficulty: 0, Discrimination: 1, Guessing: 0.25}

	// At ability == difficulty the sigmoid is 0.5.
	assert.InDelta(t, 0.25+0.75*0.5, Probability3PL(0, item), 1e-9)

	// Guessing floor at very low ability, ceiling of 1 at very high.
	assert.InDelta(t, 0.25, Probability3PL(-10, item), 1e-3)
	assert.InDelta(t, 1.0, Probability3PL(10, item), 1e-3)

	// Monotone in ability.
	assert.Greater(t, Probability3PL(1, item), Probability3PL(-1, item))
}

func TestEstimateAbilityDirection(t *testing.T) {
	easy := ItemParams{Difficulty: -1, Discrimination: 1.2, Guessing: 0.2}
	medium := ItemParams{Difficulty: 0, Discrimination: 1.2, Guessing: 0.2}
	hard := ItemParams{Difficulty: 1, Discrimination: 1.2, Guessing: 0.2}

	allCorrect := []Response{
		{Item: easy, Correct: true},
		{Item: medium, Correct: true},
		{Item: hard, Correct: true},
	}
	allWrong := []Response{
		{Item: easy, Correct: false},
		{Item: medium, Correct: false},
		{Item: hard, Correct: false},
	}

	high := EstimateAbility(allCorrect, 0)
	low := EstimateAbility(allWrong, 0)

	assert.Greater(t, high, 0.0)
	assert.Less(t, low, 0.0)
	assert.Greater(t, high, low)
}

func TestEstimateAbilityClamped(t *testing.T) {
	item := ItemParams{Difficulty: 0, Discrimination: 2, Guessing: 0}

	many := make([]Response, 30)
	for i := range many {
		many[i] = Response{Item: item, Correct: true}
	}

	theta := EstimateAbility(many, 0)
	assert.LessOrEqual(t, theta, 4.0)
	assert.GreaterOrEqual(t, theta, -4.0)
}

func TestEstimateAbilityNoResponses(t *testing.T) {
	assert.Equal(t, 0.7, EstimateAbility(nil, 0.7))
}

func TestFisherInformationPeaksNearDifficulty(t *testing.T) {
	item := ItemParams{Difficulty: 0.5, Discrimination: 1.5, Guessing: 0.2}

	near := FisherInformation(0.5, item)
	far := FisherInformation(-3, item)
	assert.Greater(t, near, far)
}

func TestCalibrateDifficulty(t *testing.T) {
	// Harder questions (low proportion correct) get higher difficulty.
	assert.Greater(t, CalibrateDifficulty(0.2), CalibrateDifficulty(0.8))
	assert.InDelta(t, 0, CalibrateDifficulty(0.5), 1e-9)

	// Extreme proportions are clamped, not infinite.
	assert.False(t, CalibrateDifficulty(1.0) > 10)
	assert.False(t, CalibrateDifficulty(0.0) < -10)
}

func TestAbilityToPercentile(t *testing.T) {
	assert.InDelta(t, 50, AbilityToPercentile(0), 0.01)
	assert.Greater(t, AbilityToPercentile(1), 80.0)
	assert.Less(t, AbilityToPercentile(-1), 20.0)
	assert.GreaterOrEqual(t, AbilityToPercentile(-4), 0.0)
	assert.LessOrEqual(t, AbilityToPercentile(4), 100.0)
}
