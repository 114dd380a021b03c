package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions").First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByTopic(topicID uint, publishedOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("topic_id = ?", topicID)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) ReplaceQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Model(quiz).Association("Questions").Replace(questions)
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}

func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) FindAttempt(attemptID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Preload("Answers").
		Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizRepository) UpdateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Save(attempt).Error
}

func (r *QuizRepository) CreateAnswers(answers []model.QuizAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *QuizRepository) ListUserAttempts(userID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND completed = ?", userID, true).
		Order("completed_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

// RecentScores returns recent completed attempt scores as percentages,
// newest first.
func (r *QuizRepository) RecentScores(userID uint, limit int) ([]float64, error) {
	attempts, err := r.ListUserAttempts(userID, limit)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		if a.Total > 0 {
			scores = append(scores, float64(a.Score)/float64(a.Total)*100)
		}
	}
	return scores, nil
}

// WeeklyActivity aggregates completed attempts per ISO week.
func (r *QuizRepository) WeeklyActivity(userID uint) (map[string]int, error) {
	type row struct {
		Week  string
		Count int
	}
	var rows []row
	err := r.DB.Table("quiz_attempts").
		Select("CONCAT(YEAR(completed_at), '-', LPAD(WEEK(completed_at, 3), 2, '0')) AS week, COUNT(*) AS count").
		Where("user_id = ? AND completed = ?", userID, true).
		Group("week").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Week] = r.Count
	}
	return out, nil
}
