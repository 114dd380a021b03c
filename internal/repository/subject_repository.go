package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) List() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.order ASC")
	}).Order("subjects.order ASC").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Preload("Topics").First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}

func (r *SubjectRepository) ListTopics(subjectID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("subject_id = ?", subjectID).Order("`order` ASC").Find(&topics).Error
	return topics, err
}

func (r *SubjectRepository) ListAllTopics() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("subject_id ASC, `order` ASC").Find(&topics).Error
	return topics, err
}

func (r *SubjectRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *SubjectRepository) FindTopicsByIDs(ids []uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("id IN ?", ids).Find(&topics).Error
	return topics, err
}

func (r *SubjectRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *SubjectRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *SubjectRepository) DeleteTopic(id uint) error {
	return r.DB.Delete(&model.Topic{}, id).Error
}

// TopicWeights returns each topic's share of the whole exam, the topic
// weight scaled by its subject weight.
func (r *SubjectRepository) TopicWeights() (map[uint]float64, error) {
	type row struct {
		TopicID       uint
		TopicWeight   float64
		SubjectWeight float64
	}
	var rows []row
	err := r.DB.Table("topics").
		Select("topics.id AS topic_id, topics.exam_weight AS topic_weight, subjects.exam_weight AS subject_weight").
		Joins("JOIN subjects ON subjects.id = topics.subject_id").
		Where("topics.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	weights := make(map[uint]float64, len(rows))
	for _, r := range rows {
		weights[r.TopicID] = r.TopicWeight * r.SubjectWeight
	}
	return weights, nil
}
