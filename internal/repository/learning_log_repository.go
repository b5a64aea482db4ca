package repository

import (
	"errors"
	"math_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LearningLogRepository struct {
	DB *gorm.DB
}

func NewLearningLogRepository(db *gorm.DB) *LearningLogRepository {
	return &LearningLogRepository{DB: db}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// IncrementToday 当天记录不存在则创建，存在则计数加一
func (r *LearningLogRepository) IncrementToday(userID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var item model.DailyLearningLog
		err := tx.Where("user_id = ? AND learning_date = ?", userID, today()).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.DailyLearningLog{
				UserID:        userID,
				LearningDate:  today(),
				AnsweredCount: 1,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&item).Update("answered_count", gorm.Expr("answered_count + ?", 1)).Error
	})
}

func (r *LearningLogRepository) TodayCount(userID string) (int, error) {
	var item model.DailyLearningLog
	err := r.DB.Where("user_id = ? AND learning_date = ?", userID, today()).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.AnsweredCount, nil
}
