package model

import "time"

// TopicProgress holds the knowledge tracing state for one user/topic pair.
// PKnow is the BKT posterior; Mastery is the same value scaled to 0-100.
// swagger:model TopicProgress
type TopicProgress struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex:idx_user_topic;not null" json:"userId"`
	TopicID         uint       `gorm:"uniqueIndex:idx_user_topic;not null" json:"topicId"`
	PKnow           float64    `gorm:"default:0.5" json:"pKnow"`
	Mastery         float64    `gorm:"default:50" json:"mastery"`
	Attempts        int        `gorm:"default:0" json:"attempts"`
	Correct         int        `gorm:"default:0" json:"correct"`
	LastPracticedAt *time.Time `json:"lastPracticedAt"`
}

func (TopicProgress) TableName() string {
	return "topic_progress"
}

// ProgressSnapshot is the weekly rollup the trend endpoints read.
type ProgressSnapshot struct {
	BaseModel
	UserID            uint    `gorm:"uniqueIndex:idx_user_week;not null" json:"userId"`
	Week              string  `gorm:"uniqueIndex:idx_user_week;size:10;not null" json:"week"` // ISO year-week, e.g. 2026-35
	AverageScore      float64 `json:"averageScore"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	StudyMinutes      int     `json:"studyMinutes"`
	AverageMastery    float64 `json:"averageMastery"`
}

func (ProgressSnapshot) TableName() string {
	return "progress_snapshots"
}
