package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// Replace swaps the user's unacknowledged recommendations for a fresh set.
// Acknowledged ones are kept as history.
func (r *RecommendationRepository) Replace(userID uint, recommendations []model.Recommendation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND acknowledged = ?", userID, false).
			Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		if len(recommendations) == 0 {
			return nil
		}
		return tx.Create(&recommendations).Error
	})
}

func (r *RecommendationRepository) ListForUser(userID uint) ([]model.Recommendation, error) {
	var recommendations []model.Recommendation
	err := r.DB.Where("user_id = ? AND acknowledged = ?", userID, false).
		Order("priority DESC, created_at DESC").Find(&recommendations).Error
	return recommendations, err
}

func (r *RecommendationRepository) Acknowledge(recommendationID, userID uint) error {
	return r.DB.Model(&model.Recommendation{}).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		Update("acknowledged", true).Error
}
