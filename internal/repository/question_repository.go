package repository

import (
	"errors"
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListByUnit(unitID string, stepType model.StepType) ([]model.Question, error) {
	var qs []model.Question
	query := r.DB.Where("unit_id = ?", unitID)
	if stepType != "" {
		query = query.Where("step_type = ?", stepType)
	}
	err := query.Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// Delete 题目与其提示一起删除
func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Hint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *QuestionRepository) ListHints(questionID string) ([]model.Hint, error) {
	var hints []model.Hint
	err := r.DB.Where("question_id = ?", questionID).Order("hint_level ASC").Find(&hints).Error
	return hints, err
}

func (r *QuestionRepository) FindHintByLevel(questionID string, level int) (*model.Hint, error) {
	var hint model.Hint
	err := r.DB.Where("question_id = ? AND hint_level = ?", questionID, level).First(&hint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hint, nil
}

func (r *QuestionRepository) FindHintByID(hintID string) (*model.Hint, error) {
	var hint model.Hint
	err := r.DB.First(&hint, "id = ?", hintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hint, nil
}

func (r *QuestionRepository) CreateHint(hint *model.Hint) error {
	return r.DB.Create(hint).Error
}

func (r *QuestionRepository) UpdateHint(hint *model.Hint) error {
	return r.DB.Save(hint).Error
}

func (r *QuestionRepository) CountHints(questionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Hint{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}
