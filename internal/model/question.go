package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	NumericInput QuestionType = "numeric_input"
	Dropdown     QuestionType = "dropdown"
)

// Question 题目。StepType 标记题目用途（practice/test/review），
// 其中 review 题不属于固定四步，而是由复习集引用
type Question struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"questionId"`
	UnitID        string          `gorm:"index;type:varchar(36);not null" json:"unitId"`
	StepType      StepType        `gorm:"type:enum('practice','test','review');not null" json:"stepType"`
	QuestionType  QuestionType    `gorm:"type:enum('numeric_input','dropdown');not null" json:"questionType"`
	Body          string          `gorm:"type:text;not null" json:"body"`
	Choices       json.RawMessage `gorm:"type:json" json:"choices"`
	CorrectAnswer string          `gorm:"size:255;not null" json:"-"`
	Explanation   string          `gorm:"type:text" json:"-"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == "" {
		q.ID = NewID("q")
	}
	return
}

// Hint 题目的分级提示，level 从 1 开始递进
type Hint struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"hintId"`
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	HintLevel  int    `gorm:"not null" json:"hintLevel"`
	HintText   string `gorm:"type:text;not null" json:"hintText"`
}

func (Hint) TableName() string {
	return "hints"
}

func (h *Hint) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = NewID("h")
	}
	return
}
