package service

import (
	"exam_prep_backend/internal/model"
	"time"
)

// PlanTopic is a topic slated for a study session.
type PlanTopic struct {
	ID   uint
	Name string
}

// ScheduleInput describes one week of available study time.
type ScheduleInput struct {
	DaysRemaining   int
	DailyMinutes    int
	SessionMinutes  int
	StartDay        time.Weekday
	ReviewTopics    []PlanTopic // due reviews, highest priority first
	WeakTopics      []PlanTopic // weakest first
	IncludeMockTest bool
}

// BuildWeeklySchedule lays out up to seven days of sessions. Due reviews are
// placed first, then weak topics round-robin across the remaining slots. The
// last scheduled day carries the mock test. No day is ever filled beyond its
// minute budget.
func BuildWeeklySchedule(in ScheduleInput) []model.StudySession {
	days := in.DaysRemaining
	if days > 7 {
		days = 7
	}
	if days <= 0 || in.DailyMinutes <= 0 || in.SessionMinutes <= 0 {
		return nil
	}

	slotsPerDay := in.DailyMinutes / in.SessionMinutes
	if slotsPerDay == 0 {
		// Budget smaller than a full session: one shortened slot per day.
		slotsPerDay = 1
	}
	sessionMinutes := in.SessionMinutes
	if sessionMinutes > in.DailyMinutes {
		sessionMinutes = in.DailyMinutes
	}

	queue := make([]model.StudySession, 0, len(in.ReviewTopics)+len(in.WeakTopics))
	for _, t := range in.ReviewTopics {
		topicID := t.ID
		queue = append(queue, model.StudySession{
			TopicID:         &topicID,
			TopicName:       t.Name,
			Type:            model.SessionReview,
			DurationMinutes: sessionMinutes,
		})
	}

	totalSlots := days * slotsPerDay
	if in.IncludeMockTest {
		totalSlots--
	}
	for len(queue) < totalSlots && len(in.WeakTopics) > 0 {
		t := in.WeakTopics[len(queue)%len(in.WeakTopics)]
		topicID := t.ID
		queue = append(queue, model.StudySession{
			TopicID:         &topicID,
			TopicName:       t.Name,
			Type:            model.SessionLearn,
			DurationMinutes: sessionMinutes,
		})
	}
	if len(queue) > totalSlots {
		queue = queue[:totalSlots]
	}

	sessions := make([]model.StudySession, 0, len(queue)+1)
	order := 0
	idx := 0
	for day := 0; day < days; day++ {
		dayName := weekdayName(in.StartDay, day)
		lastDay := day == days-1

		slots := slotsPerDay
		if lastDay && in.IncludeMockTest {
			slots--
		}

		for slot := 0; slot < slots && idx < len(queue); slot++ {
			session := queue[idx]
			session.Day = dayName
			session.Order = order
			sessions = append(sessions, session)
			order++
			idx++
		}

		if lastDay && in.IncludeMockTest {
			sessions = append(sessions, model.StudySession{
				Day:             dayName,
				Order:           order,
				TopicName:       "Full mock test",
				Type:            model.SessionMockTest,
				DurationMinutes: sessionMinutes,
			})
			order++
		}
	}
	return sessions
}

func weekdayName(start time.Weekday, offset int) string {
	return time.Weekday((int(start) + offset) % 7).String()
}
