package model

// LectureResource is an uploaded study material (video lecture, PDF notes).
// Video metadata is probed at upload time.
// swagger:model LectureResource
type LectureResource struct {
	BaseModel
	TopicID         uint    `gorm:"index;not null" json:"topicId"`
	UploaderID      uint    `gorm:"index;not null" json:"uploaderId"`
	Title           string  `gorm:"size:200;not null" json:"title"`
	Kind            string  `gorm:"size:20;default:'video'" json:"kind"` // video | pdf | notes
	URL             string  `gorm:"size:500" json:"url"`
	SizeBytes       int64   `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
}

func (LectureResource) TableName() string {
	return "lecture_resources"
}
