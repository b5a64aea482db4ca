package model

import "time"

// UnitTestAttempt 确认测试的一次提交，只写入不回读的审计记录
type UnitTestAttempt struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	UnitID       string    `gorm:"type:varchar(36);index;not null" json:"unitId"`
	ScorePercent float64   `gorm:"not null" json:"scorePercent"`
	IsPassed     bool      `gorm:"not null" json:"isPassed"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (UnitTestAttempt) TableName() string {
	return "unit_test_attempts"
}

// ReviewAttempt 复习集的一次提交，同样只写入不回读
type ReviewAttempt struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	UnitID       string    `gorm:"type:varchar(36);index;not null" json:"unitId"`
	ReviewSetID  string    `gorm:"type:varchar(36);not null" json:"reviewSetId"`
	CorrectCount int       `gorm:"not null" json:"correctCount"`
	IsCleared    bool      `gorm:"not null" json:"isCleared"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (ReviewAttempt) TableName() string {
	return "review_attempts"
}
