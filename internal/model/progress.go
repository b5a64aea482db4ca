package model

import "time"

type ProgressStatus string

const (
	NotStarted ProgressStatus = "not_started"
	InProgress ProgressStatus = "in_progress"
	Completed  ProgressStatus = "completed"
)

// UserUnitProgress 每个 (user, unit) 组合唯一的一条进度记录。
// 记录不存在时视为虚拟默认态 (not_started, 1, intro)，
// current_step_order 除测试失败降级为 review 外单调不减
type UserUnitProgress struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string         `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_unit" json:"userId"`
	UnitID           string         `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_unit" json:"unitId"`
	Status           ProgressStatus `gorm:"type:enum('not_started','in_progress','completed');default:'not_started';not null" json:"status"`
	CurrentStepOrder int            `gorm:"default:1;not null" json:"currentStepOrder"`
	CurrentStepType  StepType       `gorm:"size:20;default:'intro';not null" json:"currentStepType"`
	CompletedAt      *time.Time     `json:"completedAt"`
	CreatedAt        time.Time      `json:"-"`
	UpdatedAt        time.Time      `json:"-"`
}

func (UserUnitProgress) TableName() string {
	return "user_unit_progress"
}
