package model

import "time"

// ProgressOverview is the top card of the analytics page.
type ProgressOverview struct {
	TotalTopics       int     `json:"totalTopics"`
	PracticedTopics   int     `json:"practicedTopics"`
	AverageMastery    float64 `json:"averageMastery"`
	Accuracy          float64 `json:"accuracy"` // correct / attempts, 0-100
	QuestionsAnswered int     `json:"questionsAnswered"`
	WeakTopics        int     `json:"weakTopics"`
	MasteredTopics    int     `json:"masteredTopics"`
}

type TrendPoint struct {
	Week              string  `json:"week"`
	AverageScore      float64 `json:"averageScore"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	AverageMastery    float64 `json:"averageMastery"`
}

type LearningTrend struct {
	Weeks []TrendPoint `json:"weeks"`
	Trend string       `json:"trend"` // improving | declining | stable
}

type TopicMasteryItem struct {
	TopicID   uint    `json:"topicId"`
	TopicName string  `json:"topicName"`
	Mastery   float64 `json:"mastery"`
	Attempts  int     `json:"attempts"`
	Accuracy  float64 `json:"accuracy"`
}

type SubjectBreakdown struct {
	SubjectID      uint               `json:"subjectId"`
	SubjectName    string             `json:"subjectName"`
	AverageMastery float64            `json:"averageMastery"`
	Topics         []TopicMasteryItem `json:"topics"`
}

// ExamReadiness is the predicted exam outcome with a confidence band.
type ExamReadiness struct {
	PredictedScore float64 `json:"predictedScore"` // 0-100
	ConfidenceLow  float64 `json:"confidenceLow"`
	ConfidenceHigh float64 `json:"confidenceHigh"`
	Band           string  `json:"band"` // ready | borderline | at_risk
	WeakTopicCount int     `json:"weakTopicCount"`
	DaysToExam     int     `json:"daysToExam,omitempty"`
}

type DueReviewItem struct {
	TopicID      uint      `json:"topicId"`
	TopicName    string    `json:"topicName"`
	NextReviewAt time.Time `json:"nextReviewAt"`
	DaysOverdue  int       `json:"daysOverdue"`
	Priority     float64   `json:"priority"`
}

type DashboardData struct {
	TodaySessions []StudySession  `json:"todaySessions"`
	DueReviews    []DueReviewItem `json:"dueReviews"`
	Readiness     *ExamReadiness  `json:"readiness,omitempty"`
	HasActivePlan bool            `json:"hasActivePlan"`
}

type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	UserID uint    `json:"userId"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}
