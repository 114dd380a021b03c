package repository

import (
	"errors"
	"exam_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// GetOrCreate returns the SM-2 state for a user/topic pair, seeding a fresh
// schedule due tomorrow on first contact.
func (r *ReviewRepository) GetOrCreate(userID, topicID uint, importance float64) (*model.ReviewSchedule, error) {
	var schedule model.ReviewSchedule
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		schedule = model.ReviewSchedule{
			UserID:       userID,
			TopicID:      topicID,
			Repetition:   0,
			IntervalDays: 1,
			EaseFactor:   2.5,
			Importance:   importance,
			NextReviewAt: time.Now().AddDate(0, 0, 1),
		}
		if err := r.DB.Create(&schedule).Error; err != nil {
			return nil, err
		}
		return &schedule, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ReviewRepository) Update(schedule *model.ReviewSchedule) error {
	return r.DB.Save(schedule).Error
}

func (r *ReviewRepository) ListByUser(userID uint) ([]model.ReviewSchedule, error) {
	var schedules []model.ReviewSchedule
	err := r.DB.Where("user_id = ?", userID).Find(&schedules).Error
	return schedules, err
}

func (r *ReviewRepository) ListDue(userID uint, now time.Time) ([]model.ReviewSchedule, error) {
	var schedules []model.ReviewSchedule
	err := r.DB.Where("user_id = ? AND next_review_at <= ?", userID, now).
		Order("next_review_at ASC").Find(&schedules).Error
	return schedules, err
}
