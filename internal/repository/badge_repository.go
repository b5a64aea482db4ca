package repository

import (
	"errors"
	"math_edu_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListBadges() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByID(id string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.First(&badge, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindByType(badgeType model.BadgeType) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("badge_type = ?", badgeType).First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) Create(badge *model.Badge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) Update(badge *model.Badge) error {
	return r.DB.Save(badge).Error
}

func (r *BadgeRepository) ListUserBadges(userID string) ([]model.UserBadge, error) {
	var items []model.UserBadge
	err := r.DB.Where("user_id = ?", userID).Order("awarded_at ASC").Find(&items).Error
	return items, err
}

func (r *BadgeRepository) LatestUserBadges(userID string, limit int) ([]model.UserBadge, error) {
	var items []model.UserBadge
	err := r.DB.Where("user_id = ?", userID).Order("awarded_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

// AwardOnce 幂等授予：同一用户同一徽章重复授予时静默忽略
func (r *BadgeRepository) AwardOnce(item *model.UserBadge) error {
	err := r.DB.Create(item).Error
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return nil
	}
	return err
}
