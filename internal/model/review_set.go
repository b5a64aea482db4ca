package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ReviewSetSize 复习集固定包含 5 道 review 题
const ReviewSetSize = 5

// ReviewSet 复习集：测试未通过后用来清除 review 状态的题目组合。
// 同一单元可以有多个复习集，提交时必须指明其中一个
type ReviewSet struct {
	ID                   string          `gorm:"primaryKey;type:varchar(36)" json:"reviewSetId"`
	UnitID               string          `gorm:"index;type:varchar(36);not null" json:"unitId"`
	QuestionIDs          json.RawMessage `gorm:"type:json;not null" json:"questionIds"`
	RequiredCorrectCount int             `gorm:"default:4;not null" json:"requiredCorrectCount"`
	CreatedAt            time.Time       `json:"-"`
	UpdatedAt            time.Time       `json:"-"`
}

func (ReviewSet) TableName() string {
	return "review_sets"
}

func (rs *ReviewSet) BeforeCreate(tx *gorm.DB) (err error) {
	if rs.ID == "" {
		rs.ID = NewID("rs")
	}
	return
}

// QuestionIDList 解析 JSON 列为题目ID切片，解析失败返回空切片
func (rs *ReviewSet) QuestionIDList() []string {
	var ids []string
	if len(rs.QuestionIDs) > 0 {
		_ = json.Unmarshal(rs.QuestionIDs, &ids)
	}
	return ids
}

// SetQuestionIDList 将题目ID切片编码进 JSON 列
func (rs *ReviewSet) SetQuestionIDList(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	rs.QuestionIDs = raw
	return nil
}

// Contains 判断题目是否属于该复习集
func (rs *ReviewSet) Contains(questionID string) bool {
	for _, id := range rs.QuestionIDList() {
		if id == questionID {
			return true
		}
	}
	return false
}
