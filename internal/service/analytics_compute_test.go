package service

import (
	"exam_prep_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReadinessBands(t *testing.T) {
	strong := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{85, 90, 88, 92, 87},
		AverageMastery: 85,
		Coverage:       0.9,
		WeakTopicCount: 0,
	})
	assert.Equal(t, "ready", strong.Band)
	assert.GreaterOrEqual(t, strong.PredictedScore, 70.0)

	middling := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{60, 55, 62},
		AverageMastery: 55,
		Coverage:       0.6,
		WeakTopicCount: 2,
	})
	assert.Equal(t, "borderline", middling.Band)

	weak := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{30, 25},
		AverageMastery: 35,
		Coverage:       0.3,
		WeakTopicCount: 6,
	})
	assert.Equal(t, "at_risk", weak.Band)
}

func TestComputeReadinessConfidenceNarrowsWithData(t *testing.T) {
	few := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{70},
		AverageMastery: 70,
		Coverage:       0.7,
	})
	many := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70},
		AverageMastery: 70,
		Coverage:       0.7,
	})

	fewWidth := few.ConfidenceHigh - few.ConfidenceLow
	manyWidth := many.ConfidenceHigh - many.ConfidenceLow
	assert.Greater(t, fewWidth, manyWidth)
}

func TestComputeReadinessClampsToPercentRange(t *testing.T) {
	floor := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{0, 0},
		AverageMastery: 0,
		Coverage:       0,
		WeakTopicCount: 30,
	})
	assert.GreaterOrEqual(t, floor.PredictedScore, 0.0)
	assert.GreaterOrEqual(t, floor.ConfidenceLow, 0.0)

	ceiling := ComputeReadiness(ReadinessInput{
		RecentScores:   []float64{100, 100, 100},
		AverageMastery: 100,
		Coverage:       1,
	})
	assert.LessOrEqual(t, ceiling.PredictedScore, 100.0)
	assert.LessOrEqual(t, ceiling.ConfidenceHigh, 100.0)
}

func TestComputeReadinessNoHistory(t *testing.T) {
	blank := ComputeReadiness(ReadinessInput{})
	assert.Equal(t, "at_risk", blank.Band)
	assert.Equal(t, 0.0, blank.PredictedScore)
}

func trendWeeks(scores ...float64) []model.TrendPoint {
	weeks := make([]model.TrendPoint, 0, len(scores))
	for i, s := range scores {
		weeks = append(weeks, model.TrendPoint{Week: string(rune('A' + i)), AverageScore: s})
	}
	return weeks
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name  string
		weeks []model.TrendPoint
		want  string
	}{
		{"improving", trendWeeks(60, 70), "improving"},
		{"declining", trendWeeks(70, 60), "declining"},
		{"stable within tolerance", trendWeeks(70, 71), "stable"},
		{"single week", trendWeeks(70), "stable"},
		{"no data", nil, "stable"},
		{"uses last two weeks only", trendWeeks(40, 80, 83), "improving"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTrend(tt.weeks))
		})
	}
}

func TestQualityFromAccuracy(t *testing.T) {
	tests := []struct {
		fraction float64
		want     int
	}{
		{1.0, 5},
		{0.9, 5},
		{0.8, 4},
		{0.65, 3},
		{0.5, 2},
		{0.3, 1},
		{0.1, 0},
		{0.0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityFromAccuracy(tt.fraction), "fraction %.2f", tt.fraction)
	}
}
