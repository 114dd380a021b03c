package model

type QuestionType string

const (
	MultipleChoice QuestionType = "mcq"
	TrueFalse      QuestionType = "true_false"
	Numeric        QuestionType = "numeric"
)

// Question carries its IRT item parameters alongside the content so the
// adaptive selector never needs a second lookup.
// swagger:model Question
type Question struct {
	BaseModel
	TopicID        uint         `gorm:"index;not null" json:"topicId"`
	Type           QuestionType `gorm:"size:20;default:'mcq'" json:"type"`
	Text           string       `gorm:"type:text;not null" json:"text"`
	Options        []string     `gorm:"serializer:json" json:"options"`
	CorrectOption  int          `gorm:"not null" json:"-"`
	Explanation    string       `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty     float64      `gorm:"default:0" json:"difficulty"`     // IRT b
	Discrimination float64      `gorm:"default:1" json:"discrimination"` // IRT a
	Guessing       float64      `gorm:"default:0.25" json:"guessing"`    // IRT c
	Active         bool         `gorm:"default:true" json:"active"`
}

func (Question) TableName() string {
	return "questions"
}
