package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(resource *model.LectureResource) error {
	return r.DB.Create(resource).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.LectureResource, error) {
	var resource model.LectureResource
	err := r.DB.First(&resource, id).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *ResourceRepository) ListByTopic(topicID uint) ([]model.LectureResource, error) {
	var resources []model.LectureResource
	err := r.DB.Where("topic_id = ?", topicID).Order("created_at DESC").Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LectureResource{}, id).Error
}
