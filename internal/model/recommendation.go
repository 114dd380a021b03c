package model

type RecommendationType string

const (
	RecommendWeakTopic     RecommendationType = "weak_topic"
	RecommendOverdueReview RecommendationType = "overdue_review"
	RecommendTrend         RecommendationType = "trend"
	RecommendMockTest      RecommendationType = "mock_test"
	RecommendNarrative     RecommendationType = "narrative"
)

type RecommendationSource string

const (
	SourceRule RecommendationSource = "rule"
	SourceAI   RecommendationSource = "ai"
)

// swagger:model Recommendation
type Recommendation struct {
	BaseModel
	UserID       uint                 `gorm:"index;not null" json:"userId"`
	Type         RecommendationType   `gorm:"size:30;not null" json:"type"`
	Source       RecommendationSource `gorm:"size:10;default:'rule'" json:"source"`
	Title        string               `gorm:"size:200;not null" json:"title"`
	Body         string               `gorm:"type:text" json:"body"`
	TopicID      *uint                `json:"topicId"`
	Priority     int                  `gorm:"default:0" json:"priority"` // higher first
	Acknowledged bool                 `gorm:"default:false" json:"acknowledged"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
