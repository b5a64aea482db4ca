package model

import (
	"time"

	"gorm.io/gorm"
)

type StepType string

const (
	StepIntro    StepType = "intro"
	StepExample  StepType = "example"
	StepPractice StepType = "practice"
	StepTest     StepType = "test"
	// StepReview 虚拟第五步：只存在于进度记录的 current_step_type 上，
	// 不是单元目录里的实体步骤
	StepReview StepType = "review"
)

// Unit 学习单元，固定包含 stepOrder 1..4 的四个步骤
type Unit struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"unitId"`
	SubjectCode string     `gorm:"size:10;index;not null" json:"subjectCode"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	IsPublished bool       `gorm:"default:true" json:"isPublished"`
	Steps       []UnitStep `gorm:"foreignKey:UnitID" json:"steps,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = NewID("unit")
	}
	return
}

// StepByType 在固定四步序列里按类型查找步骤，找不到返回 nil
func (u *Unit) StepByType(stepType StepType) *UnitStep {
	for i := range u.Steps {
		if u.Steps[i].StepType == stepType {
			return &u.Steps[i]
		}
	}
	return nil
}

type UnitStep struct {
	ID              string   `gorm:"primaryKey;type:varchar(36)" json:"stepId"`
	UnitID          string   `gorm:"index;type:varchar(36);not null" json:"unitId"`
	StepOrder       int      `gorm:"not null" json:"stepOrder"`
	StepType        StepType `gorm:"type:enum('intro','example','practice','test');not null" json:"stepType"`
	Title           string   `gorm:"size:255;not null" json:"title"`
	ContentMarkdown string   `gorm:"type:text" json:"contentMarkdown"`
}

func (UnitStep) TableName() string {
	return "unit_steps"
}

func (s *UnitStep) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = NewID("st")
	}
	return
}
