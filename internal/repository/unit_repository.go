package repository

import (
	"errors"
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type UnitRepository struct {
	DB *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{DB: db}
}

// FindByID 带步骤加载单元，步骤按 step_order 升序；不存在返回 (nil, nil)
func (r *UnitRepository) FindByID(id string) (*model.Unit, error) {
	var unit model.Unit
	err := r.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC")
	}).First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *UnitRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("sort_order ASC").Find(&subjects).Error
	return subjects, err
}

func (r *UnitRepository) List(subjectCode string) ([]model.Unit, error) {
	var units []model.Unit
	query := r.DB.Order("created_at ASC")
	if subjectCode != "" {
		query = query.Where("subject_code = ?", subjectCode)
	}
	err := query.Find(&units).Error
	return units, err
}

func (r *UnitRepository) Create(unit *model.Unit) error {
	return r.DB.Create(unit).Error
}

func (r *UnitRepository) Update(unit *model.Unit) error {
	return r.DB.Save(unit).Error
}

// Delete 连同步骤一起删除
func (r *UnitRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", id).Delete(&model.UnitStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Unit{}, "id = ?", id).Error
	})
}

func (r *UnitRepository) CreateStep(step *model.UnitStep) error {
	return r.DB.Create(step).Error
}

func (r *UnitRepository) FindStepByID(stepID string) (*model.UnitStep, error) {
	var step model.UnitStep
	err := r.DB.First(&step, "id = ?", stepID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *UnitRepository) UpdateStep(step *model.UnitStep) error {
	return r.DB.Save(step).Error
}
