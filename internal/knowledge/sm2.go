package knowledge

import (
	"math"
	"sort"
	"time"
)

// Response quality grades, SM-2 convention. Quality below 3 means the item
// was not recalled and the schedule resets.
const (
	QualityBlackout  = 0
	QualityIncorrect = 1
	QualityFamiliar  = 2
	QualityHard      = 3
	QualityCorrect   = 4
	QualityPerfect   = 5
)

const (
	minEaseFactor    = 1.3
	maxIntervalDays  = 365
	minutesPerReview = 5 // budgeting assumption for session packing
)

// ReviewState is the SM-2 state carried between reviews.
type ReviewState struct {
	Repetition   int
	IntervalDays int
	EaseFactor   float64
}

// NextReview advances the SM-2 state for the given response quality.
func NextReview(state ReviewState, quality int) ReviewState {
	if quality < QualityHard {
		return ReviewState{
			Repetition:   0,
			IntervalDays: 1,
			EaseFactor:   state.EaseFactor,
		}
	}

	ease := state.EaseFactor + (0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02))
	if ease < minEaseFactor {
		ease = minEaseFactor
	}

	var interval int
	switch state.Repetition {
	case 0:
		interval = 1
	case 1:
		interval = 6
	default:
		interval = int(math.Ceil(float64(state.IntervalDays) * ease))
	}
	if interval > maxIntervalDays {
		interval = maxIntervalDays
	}

	return ReviewState{
		Repetition:   state.Repetition + 1,
		IntervalDays: interval,
		EaseFactor:   math.Round(ease*100) / 100,
	}
}

// Retention estimates recall probability from the Ebbinghaus forgetting
// curve, R = e^(-t/S), with strength scaled from the ease factor.
func Retention(daysSinceReview int, easeFactor float64) float64 {
	strength := easeFactor * 10
	return math.Exp(-float64(daysSinceReview) / strength)
}

// ReviewPriority scores urgency: overdue days, retention deficit and topic
// importance. Higher means review sooner.
func ReviewPriority(lastReview, nextReview time.Time, easeFactor, importance float64, now time.Time) float64 {
	daysOverdue := int(now.Sub(nextReview).Hours() / 24)
	daysSince := int(now.Sub(lastReview).Hours() / 24)

	urgency := float64(max(0, daysOverdue)) * 2
	retention := (1 - Retention(daysSince, easeFactor)) * 10
	weight := importance * 5

	return urgency + retention + weight
}

// ReviewCandidate is a schedulable review with its computed priority.
type ReviewCandidate struct {
	TopicID      uint
	LastReviewed time.Time
	NextReview   time.Time
	EaseFactor   float64
	Importance   float64
	Priority     float64
}

// PrioritizeReviews sorts candidates by priority, highest first, and caps
// the list at maxItems. A non-positive maxItems returns the full list.
func PrioritizeReviews(items []ReviewCandidate, maxItems int, now time.Time) []ReviewCandidate {
	out := make([]ReviewCandidate, len(items))
	copy(out, items)
	for i := range out {
		out[i].Priority = ReviewPriority(out[i].LastReviewed, out[i].NextReview, out[i].EaseFactor, out[i].Importance, now)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	if maxItems > 0 && len(out) > maxItems {
		out = out[:maxItems]
	}
	return out
}

// FitSession returns how many reviews fit in the available time at the
// standard per-item budget.
func FitSession(availableMinutes int) int {
	if availableMinutes <= 0 {
		return 0
	}
	return availableMinutes / minutesPerReview
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
