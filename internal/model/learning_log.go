package model

import "time"

// DailyLearningLog 每人每天一条的答题计数，用于进度摘要里的当日答题数。
// 连续学习天数(streak)的计算留给后续的徽章/激励模块
type DailyLearningLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_daily_learning" json:"userId"`
	LearningDate  time.Time `gorm:"type:date;not null;uniqueIndex:uq_daily_learning" json:"learningDate"`
	AnsweredCount int       `gorm:"default:0;not null" json:"answeredCount"`
}

func (DailyLearningLog) TableName() string {
	return "daily_learning_logs"
}
