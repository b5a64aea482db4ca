package model

import "time"

// RecommendationLog 每日推荐的发放记录，source 目前只有随机抽样
type RecommendationLog struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	QuestionID      string    `gorm:"type:varchar(36);not null" json:"questionId"`
	RecommendedDate time.Time `gorm:"type:date;not null" json:"recommendedDate"`
	Source          string    `gorm:"size:20;default:'random';not null" json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (RecommendationLog) TableName() string {
	return "recommendation_logs"
}
