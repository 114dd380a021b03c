package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type StudyPlanRepository struct {
	DB *gorm.DB
}

func NewStudyPlanRepository(db *gorm.DB) *StudyPlanRepository {
	return &StudyPlanRepository{DB: db}
}

// Replace deactivates any existing plan and stores the new one with its
// sessions in a single transaction.
func (r *StudyPlanRepository) Replace(plan *model.StudyPlan) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.StudyPlan{}).
			Where("user_id = ? AND active = ?", plan.UserID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
}

func (r *StudyPlanRepository) FindActive(userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Preload("Sessions", func(db *gorm.DB) *gorm.DB {
		return db.Order("study_sessions.order ASC")
	}).Where("user_id = ? AND active = ?", userID, true).
		Order("generated_at DESC").First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *StudyPlanRepository) FindSession(sessionID, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Joins("JOIN study_plans ON study_plans.id = study_sessions.study_plan_id").
		Where("study_sessions.id = ? AND study_plans.user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *StudyPlanRepository) UpdateSession(session *model.StudySession) error {
	return r.DB.Save(session).Error
}
