package repository

import (
	"errors"
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Find 返回 (nil, nil) 表示记录不存在，即虚拟的 not_started 状态
func (r *ProgressRepository) Find(userID, unitID string) (*model.UserUnitProgress, error) {
	var item model.UserUnitProgress
	err := r.DB.Where("user_id = ? AND unit_id = ?", userID, unitID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ProgressRepository) Save(item *model.UserUnitProgress) error {
	return r.DB.Save(item).Error
}

// SaveWithTestAttempt 状态变更和测试记录必须一起落库，
// 避免并发提交时出现只记录一半的情况
func (r *ProgressRepository) SaveWithTestAttempt(item *model.UserUnitProgress, attempt *model.UnitTestAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Create(attempt).Error
	})
}

// SaveWithReviewAttempt 同上，复习提交的状态变更与记录同事务
func (r *ProgressRepository) SaveWithReviewAttempt(item *model.UserUnitProgress, attempt *model.ReviewAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Create(attempt).Error
	})
}

// CreateReviewAttempt 未清除复习时状态不变，只记录一次尝试
func (r *ProgressRepository) CreateReviewAttempt(attempt *model.ReviewAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *ProgressRepository) CountByStatus(userID string, status model.ProgressStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserUnitProgress{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// FindInProgressUnit 返回用户最近更新的进行中单元，没有则 (nil, nil)
func (r *ProgressRepository) FindInProgressUnit(userID string) (*model.UserUnitProgress, error) {
	var item model.UserUnitProgress
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.InProgress).
		Order("updated_at DESC").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
