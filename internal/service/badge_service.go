package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"time"
)

type BadgeService struct {
	BadgeRepo    *repository.BadgeRepository
	ProgressRepo *repository.ProgressRepository
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, progressRepo *repository.ProgressRepository) *BadgeService {
	return &BadgeService{
		BadgeRepo:    badgeRepo,
		ProgressRepo: progressRepo,
	}
}

func (s *BadgeService) ListCatalog() ([]model.Badge, error) {
	return s.BadgeRepo.ListBadges()
}

func (s *BadgeService) MyBadges(userID string) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListUserBadges(userID)
}

// EvaluateResult 本次评估新授予的徽章
type EvaluateResult struct {
	AwardedBadges []model.UserBadge `json:"awardedBadges"`
}

// Evaluate 按当前进度评估可授予的徽章。目前只有
// first_completion 有明确口径：存在至少一个已完成单元。
// streak 类徽章等连续天数口径定稿后再接入
func (s *BadgeService) Evaluate(userID string) (*EvaluateResult, error) {
	result := &EvaluateResult{AwardedBadges: []model.UserBadge{}}

	completed, err := s.ProgressRepo.CountByStatus(userID, model.Completed)
	if err != nil {
		return nil, err
	}
	if completed == 0 {
		return result, nil
	}

	badge, err := s.BadgeRepo.FindByType(model.FirstCompletion)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return result, nil
	}

	existing, err := s.BadgeRepo.ListUserBadges(userID)
	if err != nil {
		return nil, err
	}
	for _, item := range existing {
		if item.BadgeID == badge.ID {
			return result, nil
		}
	}

	awarded := model.UserBadge{
		UserID:         userID,
		BadgeID:        badge.ID,
		BadgeName:      badge.Name,
		BadgeType:      badge.BadgeType,
		ConditionValue: badge.ConditionValue,
		AwardedAt:      time.Now(),
	}
	if err := s.BadgeRepo.AwardOnce(&awarded); err != nil {
		return nil, err
	}
	result.AwardedBadges = append(result.AwardedBadges, awarded)
	return result, nil
}
