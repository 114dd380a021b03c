package service

import (
	"exam_prep_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleFixture() ScheduleInput {
	return ScheduleInput{
		DaysRemaining:  14,
		DailyMinutes:   120,
		SessionMinutes: 45,
		StartDay:       time.Monday,
		ReviewTopics: []PlanTopic{
			{ID: 1, Name: "Arithmetic"},
			{ID: 2, Name: "Puzzles"},
		},
		WeakTopics: []PlanTopic{
			{ID: 3, Name: "Geometry"},
			{ID: 4, Name: "Grammar"},
		},
		IncludeMockTest: true,
	}
}

func minutesPerDay(sessions []model.StudySession) map[string]int {
	out := make(map[string]int)
	for _, s := range sessions {
		out[s.Day] += s.DurationMinutes
	}
	return out
}

func TestBuildWeeklyScheduleRespectsDailyBudget(t *testing.T) {
	in := scheduleFixture()
	sessions := BuildWeeklySchedule(in)
	require.NotEmpty(t, sessions)

	for day, minutes := range minutesPerDay(sessions) {
		assert.LessOrEqual(t, minutes, in.DailyMinutes, "day %s over budget", day)
	}
}

func TestBuildWeeklyScheduleCapsAtSevenDays(t *testing.T) {
	in := scheduleFixture()
	in.DaysRemaining = 30

	sessions := BuildWeeklySchedule(in)
	days := make(map[string]bool)
	for _, s := range sessions {
		days[s.Day] = true
	}
	assert.LessOrEqual(t, len(days), 7)
}

func TestBuildWeeklyScheduleReviewsBeforeLearning(t *testing.T) {
	sessions := BuildWeeklySchedule(scheduleFixture())
	require.NotEmpty(t, sessions)

	seenLearn := false
	for _, s := range sessions {
		switch s.Type {
		case model.SessionLearn:
			seenLearn = true
		case model.SessionReview:
			assert.False(t, seenLearn, "review scheduled after learning started")
		}
	}
}

func TestBuildWeeklyScheduleMockTestOnLastDay(t *testing.T) {
	in := scheduleFixture()
	sessions := BuildWeeklySchedule(in)
	require.NotEmpty(t, sessions)

	last := sessions[len(sessions)-1]
	assert.Equal(t, model.SessionMockTest, last.Type)

	// Exactly one mock test slot per week.
	count := 0
	for _, s := range sessions {
		if s.Type == model.SessionMockTest {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildWeeklyScheduleNoMockTestWhenDisabled(t *testing.T) {
	in := scheduleFixture()
	in.IncludeMockTest = false

	for _, s := range BuildWeeklySchedule(in) {
		assert.NotEqual(t, model.SessionMockTest, s.Type)
	}
}

func TestBuildWeeklyScheduleShortRunway(t *testing.T) {
	in := scheduleFixture()
	in.DaysRemaining = 2

	sessions := BuildWeeklySchedule(in)
	require.NotEmpty(t, sessions)

	days := make(map[string]bool)
	for _, s := range sessions {
		days[s.Day] = true
	}
	assert.LessOrEqual(t, len(days), 2)
	assert.Equal(t, model.SessionMockTest, sessions[len(sessions)-1].Type)
}

func TestBuildWeeklyScheduleTinyBudgetShortensSession(t *testing.T) {
	in := scheduleFixture()
	in.DailyMinutes = 30 // below one full session

	sessions := BuildWeeklySchedule(in)
	require.NotEmpty(t, sessions)
	for _, s := range sessions {
		assert.LessOrEqual(t, s.DurationMinutes, 30)
	}
}

func TestBuildWeeklyScheduleDegenerateInputs(t *testing.T) {
	in := scheduleFixture()
	in.DaysRemaining = 0
	assert.Empty(t, BuildWeeklySchedule(in))

	in = scheduleFixture()
	in.DailyMinutes = 0
	assert.Empty(t, BuildWeeklySchedule(in))
}

func TestBuildWeeklyScheduleOrderIsSequential(t *testing.T) {
	sessions := BuildWeeklySchedule(scheduleFixture())
	for i, s := range sessions {
		assert.Equal(t, i, s.Order)
	}
}

func TestWeekdayNameWraps(t *testing.T) {
	assert.Equal(t, "Sunday", weekdayName(time.Saturday, 1))
	assert.Equal(t, "Monday", weekdayName(time.Monday, 7))
}
