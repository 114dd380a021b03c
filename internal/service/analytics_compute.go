package service

import (
	"exam_prep_backend/internal/model"
	"math"
)

// ReadinessInput collects the features the readiness score is computed from.
type ReadinessInput struct {
	RecentScores   []float64 // newest first, as percentages
	AverageMastery float64   // 0-100
	Coverage       float64   // practiced topics / total topics, 0-1
	WeakTopicCount int
}

// Feature weights for the readiness score. Recent performance dominates,
// tempered by overall mastery and syllabus coverage, with a penalty per
// weak topic.
const (
	readinessRecentWeight   = 0.45
	readinessMasteryWeight  = 0.35
	readinessCoverageWeight = 0.20
	readinessWeakPenalty    = 1.5
)

// ComputeReadiness predicts the exam score from current performance. The
// confidence band widens as the sample of recent scores shrinks.
func ComputeReadiness(in ReadinessInput) model.ExamReadiness {
	avgRecent := 0.0
	for _, s := range in.RecentScores {
		avgRecent += s
	}
	n := len(in.RecentScores)
	if n > 0 {
		avgRecent /= float64(n)
	}

	score := readinessRecentWeight*avgRecent +
		readinessMasteryWeight*in.AverageMastery +
		readinessCoverageWeight*in.Coverage*100 -
		readinessWeakPenalty*float64(in.WeakTopicCount)
	score = clampPercent(score)

	margin := 25.0
	if n > 0 {
		margin = 5 + 10/math.Sqrt(float64(n))
	}

	band := "at_risk"
	switch {
	case score >= 70:
		band = "ready"
	case score >= 50:
		band = "borderline"
	}

	return model.ExamReadiness{
		PredictedScore: math.Round(score*100) / 100,
		ConfidenceLow:  clampPercent(score - margin),
		ConfidenceHigh: clampPercent(score + margin),
		Band:           band,
		WeakTopicCount: in.WeakTopicCount,
	}
}

// ComputeTrend labels the direction of the last two weekly snapshots. A
// movement within two points either way counts as stable.
func ComputeTrend(weeks []model.TrendPoint) string {
	if len(weeks) < 2 {
		return "stable"
	}

	prev := weeks[len(weeks)-2]
	last := weeks[len(weeks)-1]
	delta := last.AverageScore - prev.AverageScore

	switch {
	case delta > 2:
		return "improving"
	case delta < -2:
		return "declining"
	default:
		return "stable"
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
