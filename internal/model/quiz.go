package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	TopicID          uint       `gorm:"index;not null" json:"topicId"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"size:500" json:"description"`
	TimeLimitMinutes int        `gorm:"default:15" json:"timeLimitMinutes"`
	Published        bool       `gorm:"default:false" json:"published"`
	Questions        []Question `gorm:"many2many:quiz_questions" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID      uint         `gorm:"index;not null" json:"userId"`
	QuizID      uint         `gorm:"index;not null" json:"quizId"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt"`
	Score       int          `gorm:"default:0" json:"score"`
	Total       int          `gorm:"default:0" json:"total"`
	Completed   bool         `gorm:"default:false" json:"completed"`
	Answers     []QuizAnswer `json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type QuizAnswer struct {
	BaseModel
	QuizAttemptID uint `gorm:"index;not null" json:"quizAttemptId"`
	QuestionID    uint `gorm:"index;not null" json:"questionId"`
	Selected      int  `json:"selected"`
	Correct       bool `json:"correct"`
	TimeSpentSec  int  `json:"timeSpentSec"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
