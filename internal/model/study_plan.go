package model

import "time"

type SessionType string

const (
	SessionLearn    SessionType = "learn"
	SessionReview   SessionType = "review"
	SessionMockTest SessionType = "mock_test"
)

// swagger:model StudyPlan
type StudyPlan struct {
	BaseModel
	UserID        uint           `gorm:"index;not null" json:"userId"`
	ExamDate      time.Time      `json:"examDate"`
	DaysRemaining int            `json:"daysRemaining"`
	DailyMinutes  int            `json:"dailyMinutes"`
	Active        bool           `gorm:"default:true" json:"active"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Sessions      []StudySession `json:"sessions,omitempty"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

// StudySession is one block in the weekly schedule. TopicID is nil for
// mock test slots.
// swagger:model StudySession
type StudySession struct {
	BaseModel
	StudyPlanID     uint        `gorm:"index;not null" json:"studyPlanId"`
	Day             string      `gorm:"size:10;not null" json:"day"` // Monday .. Sunday
	Order           int         `gorm:"default:0" json:"order"`
	TopicID         *uint       `json:"topicId"`
	TopicName       string      `gorm:"size:100" json:"topicName"`
	Type            SessionType `gorm:"size:20;default:'learn'" json:"type"`
	DurationMinutes int         `json:"durationMinutes"`
	Completed       bool        `gorm:"default:false" json:"completed"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
