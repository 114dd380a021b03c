package knowledge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReviewFailureResets(t *testing.T) {
	state := ReviewState{Repetition: 4, IntervalDays: 30, EaseFactor: 2.2}

	for _, quality := range []int{QualityBlackout, QualityIncorrect, QualityFamiliar} {
		next := NextReview(state, quality)
		assert.Equal(t, 0, next.Repetition)
		assert.Equal(t, 1, next.IntervalDays)
		assert.Equal(t, 2.2, next.EaseFactor, "ease factor survives a lapse")
	}
}

func TestNextReviewIntervalProgression(t *testing.T) {
	state := ReviewState{Repetition: 0, IntervalDays: 0, EaseFactor: 2.5}

	first := NextReview(state, QualityCorrect)
	assert.Equal(t, 1, first.IntervalDays)
	assert.Equal(t, 1, first.Repetition)

	second := NextReview(first, QualityCorrect)
	assert.Equal(t, 6, second.IntervalDays)

	third := NextReview(second, QualityCorrect)
	assert.Greater(t, third.IntervalDays, second.IntervalDays)
}

func TestNextReviewEaseFactorFloor(t *testing.T) {
	state := ReviewState{Repetition: 2, IntervalDays: 10, EaseFactor: 1.3}

	// Repeated hard recalls may not push the ease factor below 1.3.
	for i := 0; i < 5; i++ {
		state = NextReview(state, QualityHard)
		require.GreaterOrEqual(t, state.EaseFactor, 1.3)
	}
}

func TestNextReviewIntervalCap(t *testing.T) {
	state := ReviewState{Repetition: 10, IntervalDays: 300, EaseFactor: 2.5}

	next := NextReview(state, QualityPerfect)
	assert.Equal(t, maxIntervalDays, next.IntervalDays)
}

func TestRetentionDecays(t *testing.T) {
	assert.InDelta(t, 1.0, Retention(0, 2.5), 1e-9)
	assert.Greater(t, Retention(5, 2.5), Retention(30, 2.5))
	assert.Greater(t, Retention(10, 3.0), Retention(10, 1.3), "stronger memory decays slower")
}

func TestReviewPriorityOrdering(t *testing.T) {
	now := time.Now()

	overdue := ReviewPriority(now.AddDate(0, 0, -20), now.AddDate(0, 0, -10), 2.5, 0.1, now)
	onTime := ReviewPriority(now.AddDate(0, 0, -2), now, 2.5, 0.1, now)
	assert.Greater(t, overdue, onTime)

	important := ReviewPriority(now.AddDate(0, 0, -2), now, 2.5, 0.9, now)
	assert.Greater(t, important, onTime)
}

func TestPrioritizeReviews(t *testing.T) {
	now := time.Now()
	candidates := []ReviewCandidate{
		{TopicID: 1, LastReviewed: now.AddDate(0, 0, -1), NextReview: now, EaseFactor: 2.5, Importance: 0.1},
		{TopicID: 2, LastReviewed: now.AddDate(0, 0, -30), NextReview: now.AddDate(0, 0, -15), EaseFactor: 1.5, Importance: 0.5},
		{TopicID: 3, LastReviewed: now.AddDate(0, 0, -3), NextReview: now, EaseFactor: 2.5, Importance: 0.2},
	}

	ranked := PrioritizeReviews(candidates, 2, now)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(2), ranked[0].TopicID, "most overdue first")

	all := PrioritizeReviews(candidates, 0, now)
	assert.Len(t, all, 3, "non-positive limit returns everything")
}

func TestFitSession(t *testing.T) {
	assert.Equal(t, 6, FitSession(30))
	assert.Equal(t, 0, FitSession(0))
	assert.Equal(t, 0, FitSession(4))
}
