package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Code        string  `gorm:"size:50;unique;not null" json:"code"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	ExamWeight  float64 `gorm:"default:0" json:"examWeight"` // share of exam marks, 0-1
	Order       int     `gorm:"default:0" json:"order"`
	Topics      []Topic `json:"topics,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Topic
type Topic struct {
	BaseModel
	SubjectID   uint    `gorm:"index;not null" json:"subjectId"`
	Code        string  `gorm:"size:50;not null" json:"code"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	ExamWeight  float64 `gorm:"default:0" json:"examWeight"` // share within the subject, 0-1
	Order       int     `gorm:"default:0" json:"order"`
}

func (Topic) TableName() string {
	return "topics"
}
