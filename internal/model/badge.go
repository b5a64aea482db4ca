package model

import (
	"time"

	"gorm.io/gorm"
)

type BadgeType string

const (
	FirstCompletion BadgeType = "first_completion"
	UnitCompletion  BadgeType = "unit_completion"
	Streak          BadgeType = "streak"
)

// Badge 徽章目录
type Badge struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"badgeId"`
	BadgeType      BadgeType `gorm:"type:enum('first_completion','unit_completion','streak');not null" json:"badgeType"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	ConditionValue *int      `json:"conditionValue"`
}

func (Badge) TableName() string {
	return "badges"
}

func (b *Badge) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = NewID("b")
	}
	return
}

// UserBadge 用户已获得的徽章，冗余名称/类型方便直接展示
type UserBadge struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_badge" json:"userId"`
	BadgeID        string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_badge" json:"badgeId"`
	BadgeName      string    `gorm:"size:100;not null" json:"badgeName"`
	BadgeType      BadgeType `gorm:"size:30;not null" json:"badgeType"`
	ConditionValue *int      `json:"conditionValue"`
	AwardedAt      time.Time `json:"awardedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
