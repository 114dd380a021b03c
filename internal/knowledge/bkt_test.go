package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCorrectRaisesKnowledge(t *testing.T) {
	p := DefaultBKTParams()

	next := p.Update(0.5, true)
	assert.Greater(t, next, 0.5)
	assert.LessOrEqual(t, next, 1.0)
}

func TestUpdateIncorrectLowersPosteriorBeforeLearning(t *testing.T) {
	p := DefaultBKTParams()

	// An incorrect answer drops the posterior, but the learning transition
	// pulls it back up. Verify against the hand-computed value.
	next := p.Update(0.5, false)
	// posterior = 0.1*0.5 / (0.1*0.5 + 0.8*0.5) = 1/9
	// next = 1/9 + (8/9)*0.3
	assert.InDelta(t, 1.0/9+8.0/9*0.3, next, 1e-9)
}

func TestUpdateDegenerateDenominatorKeepsPrior(t *testing.T) {
	p := BKTParams{PInit: 0.5, PLearn: 0, PSlip: 0, PGuess: 1}

	// With PSlip=0 an incorrect answer from a sure-known state has zero
	// evidence mass; the prior must survive.
	next := p.Update(1.0, false)
	assert.Equal(t, 1.0, next)
}

func TestProcessSequenceConverges(t *testing.T) {
	p := DefaultBKTParams()

	allCorrect := []bool{true, true, true, true, true, true, true, true}
	trajectory, final := p.ProcessSequence(p.PInit, allCorrect)

	require.Len(t, trajectory, len(allCorrect))
	for i := 1; i < len(trajectory); i++ {
		assert.GreaterOrEqual(t, trajectory[i], trajectory[i-1])
	}
	assert.Greater(t, final, 0.95)
}

func TestProcessSequenceAllWrongStaysLow(t *testing.T) {
	p := DefaultBKTParams()

	_, final := p.ProcessSequence(p.PInit, []bool{false, false, false, false})
	assert.Less(t, final*100, MasteredMastery)
}

func TestPredictCorrectBounds(t *testing.T) {
	p := DefaultBKTParams()

	assert.InDelta(t, p.PGuess, p.PredictCorrect(0), 1e-9)
	assert.InDelta(t, 1-p.PSlip, p.PredictCorrect(1), 1e-9)

	mid := p.PredictCorrect(0.5)
	assert.Greater(t, mid, p.PGuess)
	assert.Less(t, mid, 1-p.PSlip)
}
