package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByTopic(topicID uint, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{}).Where("topic_id = ? AND active = ?", topicID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset((page - 1) * limit).Limit(limit).Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepository) RandomByTopic(topicID uint, n int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("topic_id = ? AND active = ?", topicID, true).
		Order("RAND()").Limit(n).Find(&questions).Error
	return questions, err
}

// ActiveIDsByTopics returns the item bank for an adaptive test.
func (r *QuestionRepository) ActiveIDsByTopics(topicIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).
		Where("topic_id IN ? AND active = ?", topicIDs, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// ProportionCorrect aggregates historical accuracy per question across quiz
// answers, the input for difficulty calibration.
func (r *QuestionRepository) ProportionCorrect(questionIDs []uint) (map[uint]float64, error) {
	type row struct {
		QuestionID uint
		PCorrect   float64
	}
	var rows []row
	err := r.DB.Table("quiz_answers").
		Select("question_id, AVG(correct) AS p_correct").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.QuestionID] = r.PCorrect
	}
	return out, nil
}

func (r *QuestionRepository) UpdateItemParams(questionID uint, difficulty, discrimination, guessing float64) error {
	return r.DB.Model(&model.Question{}).Where("id = ?", questionID).
		Updates(map[string]interface{}{
			"difficulty":     difficulty,
			"discrimination": discrimination,
			"guessing":       guessing,
		}).Error
}
