package model

import "time"

// ReviewSchedule is the persisted SM-2 state for one user/topic pair.
// swagger:model ReviewSchedule
type ReviewSchedule struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex:idx_user_topic_review;not null" json:"userId"`
	TopicID        uint       `gorm:"uniqueIndex:idx_user_topic_review;not null" json:"topicId"`
	Repetition     int        `gorm:"default:0" json:"repetition"`
	IntervalDays   int        `gorm:"default:1" json:"intervalDays"`
	EaseFactor     float64    `gorm:"default:2.5" json:"easeFactor"`
	Importance     float64    `gorm:"default:1" json:"importance"` // topic exam weight, 0-1
	LastReviewedAt *time.Time `json:"lastReviewedAt"`
	NextReviewAt   time.Time  `json:"nextReviewAt"`
}

func (ReviewSchedule) TableName() string {
	return "review_schedules"
}
