package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type MockTestRepository struct {
	DB *gorm.DB
}

func NewMockTestRepository(db *gorm.DB) *MockTestRepository {
	return &MockTestRepository{DB: db}
}

func (r *MockTestRepository) Create(test *model.MockTest) error {
	return r.DB.Create(test).Error
}

func (r *MockTestRepository) FindByID(id uint) (*model.MockTest, error) {
	var test model.MockTest
	err := r.DB.Preload("Questions").First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *MockTestRepository) List(publishedOnly bool) ([]model.MockTest, error) {
	var tests []model.MockTest
	query := r.DB.Model(&model.MockTest{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Order("created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *MockTestRepository) Update(test *model.MockTest) error {
	return r.DB.Save(test).Error
}

func (r *MockTestRepository) ReplaceQuestions(test *model.MockTest, questions []model.Question) error {
	return r.DB.Model(test).Association("Questions").Replace(questions)
}

func (r *MockTestRepository) Delete(id uint) error {
	return r.DB.Delete(&model.MockTest{}, id).Error
}

func (r *MockTestRepository) CreateAttempt(attempt *model.MockTestAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *MockTestRepository) FindAttempt(attemptID, userID uint) (*model.MockTestAttempt, error) {
	var attempt model.MockTestAttempt
	err := r.DB.Preload("Answers").
		Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindOpenAttempt returns the user's unfinished attempt on a test, if any.
func (r *MockTestRepository) FindOpenAttempt(userID, testID uint) (*model.MockTestAttempt, error) {
	var attempt model.MockTestAttempt
	err := r.DB.Where("user_id = ? AND mock_test_id = ? AND completed = ?", userID, testID, false).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *MockTestRepository) UpdateAttempt(attempt *model.MockTestAttempt) error {
	return r.DB.Save(attempt).Error
}

func (r *MockTestRepository) CreateAnswers(answers []model.MockTestAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *MockTestRepository) ListUserAttempts(userID uint, limit int) ([]model.MockTestAttempt, error) {
	var attempts []model.MockTestAttempt
	err := r.DB.Where("user_id = ? AND completed = ?", userID, true).
		Order("submitted_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *MockTestRepository) RecentScores(userID uint, limit int) ([]float64, error) {
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
