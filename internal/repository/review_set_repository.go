package repository

import (
	"errors"
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewSetRepository struct {
	DB *gorm.DB
}

func NewReviewSetRepository(db *gorm.DB) *ReviewSetRepository {
	return &ReviewSetRepository{DB: db}
}

func (r *ReviewSetRepository) FindByID(id string) (*model.ReviewSet, error) {
	var rs model.ReviewSet
	err := r.DB.First(&rs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

// FindByUnit 返回单元当前启用的复习集（最早创建的一个）
func (r *ReviewSetRepository) FindByUnit(unitID string) (*model.ReviewSet, error) {
	var rs model.ReviewSet
	err := r.DB.Where("unit_id = ?", unitID).Order("created_at ASC").First(&rs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *ReviewSetRepository) Create(rs *model.ReviewSet) error {
	return r.DB.Create(rs).Error
}

func (r *ReviewSetRepository) Update(rs *model.ReviewSet) error {
	return r.DB.Save(rs).Error
}
