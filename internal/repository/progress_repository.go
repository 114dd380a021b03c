package repository

import (
	"errors"
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the tracing state for a user/topic pair, creating the
// neutral prior row on first contact.
func (r *ProgressRepository) GetOrCreate(userID, topicID uint) (*model.TopicProgress, error) {
	var progress model.TopicProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.TopicProgress{
			UserID:  userID,
			TopicID: topicID,
			PKnow:   0.5,
			Mastery: 50,
		}
		if err := r.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Update(progress *model.TopicProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.TopicProgress, error) {
	var progress []model.TopicProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

// WeakTopics returns topics below the mastery threshold, weakest first,
// with topic names resolved.
func (r *ProgressRepository) WeakTopics(userID uint, threshold float64) ([]model.TopicMasteryItem, error) {
	var items []model.TopicMasteryItem
	err := r.DB.Table("topic_progress").
		Select("topic_progress.topic_id, topics.name AS topic_name, topic_progress.mastery, topic_progress.attempts, "+
			"CASE WHEN topic_progress.attempts > 0 THEN topic_progress.correct / topic_progress.attempts * 100 ELSE 0 END AS accuracy").
		Joins("JOIN topics ON topics.id = topic_progress.topic_id").
		Where("topic_progress.user_id = ? AND topic_progress.mastery < ? AND topic_progress.deleted_at IS NULL", userID, threshold).
		Order("topic_progress.mastery ASC").
		Scan(&items).Error
	return items, err
}

func (r *ProgressRepository) AverageMastery(userID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.TopicProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(mastery), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *ProgressRepository) Totals(userID uint) (attempts int64, correct int64, err error) {
	type row struct {
		Attempts int64
		Correct  int64
	}
	var res row
	err = r.DB.Model(&model.TopicProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(attempts), 0) AS attempts, COALESCE(SUM(correct), 0) AS correct").
		Scan(&res).Error
	return res.Attempts, res.Correct, err
}

func (r *ProgressRepository) UpsertSnapshot(snapshot *model.ProgressSnapshot) error {
	var existing model.ProgressSnapshot
	err := r.DB.Where("user_id = ? AND week = ?", snapshot.UserID, snapshot.Week).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(snapshot).Error
	}
	if err != nil {
		return err
	}

	existing.AverageScore = snapshot.AverageScore
	existing.QuestionsAnswered = snapshot.QuestionsAnswered
	existing.StudyMinutes = snapshot.StudyMinutes
	existing.AverageMastery = snapshot.AverageMastery
	return r.DB.Save(&existing).Error
}

func (r *ProgressRepository) ListSnapshots(userID uint, weeks int) ([]model.ProgressSnapshot, error) {
	var snapshots []model.ProgressSnapshot
	err := r.DB.Where("user_id = ?", userID).
		Order("week DESC").Limit(weeks).Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	// Oldest first for charting.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots, nil
}
