package model

import "time"

// swagger:model MockTest
type MockTest struct {
	BaseModel
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"size:500" json:"description"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	TotalMarks      int        `gorm:"not null" json:"totalMarks"`
	Published       bool       `gorm:"default:false" json:"published"`
	Questions       []Question `gorm:"many2many:mock_test_questions" json:"questions,omitempty"`
}

func (MockTest) TableName() string {
	return "mock_tests"
}

// MockTestAttempt tracks the timed attempt lifecycle. Deadline is fixed at
// start; submissions past it are rejected.
// swagger:model MockTestAttempt
type MockTestAttempt struct {
	BaseModel
	UserID      uint             `gorm:"index;not null" json:"userId"`
	MockTestID  uint             `gorm:"index;not null" json:"mockTestId"`
	StartedAt   time.Time        `json:"startedAt"`
	Deadline    time.Time        `json:"deadline"`
	SubmittedAt *time.Time       `json:"submittedAt"`
	Score       int              `gorm:"default:0" json:"score"`
	Total       int              `gorm:"default:0" json:"total"`
	Completed   bool             `gorm:"default:false" json:"completed"`
	Answers     []MockTestAnswer `json:"answers,omitempty"`
}

func (MockTestAttempt) TableName() string {
	return "mock_test_attempts"
}

type MockTestAnswer struct {
	BaseModel
	MockTestAttemptID uint `gorm:"index;not null" json:"mockTestAttemptId"`
	QuestionID        uint `gorm:"index;not null" json:"questionId"`
	Selected          int  `json:"selected"`
	Correct           bool `json:"correct"`
}

func (MockTestAnswer) TableName() string {
	return "mock_test_answers"
}
