package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"
	"strings"
)

// AnswerItem 一道题的作答
type AnswerItem struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// QuestionResolver 判分时按ID解析题目，不存在返回 (nil, nil)
type QuestionResolver interface {
	FindByID(id string) (*model.Question, error)
}

// CountCorrectAnswers 批量判分。规则：
//   - 题目ID解析不到 → 整批以 ErrQuestionNotFound 失败，不产生部分得分
//   - 题目存在但不在目标范围内（relevant 为 false）→ 不计分也不报错
//   - 双方去除首尾空白后做大小写敏感的字符串比较
func CountCorrectAnswers(resolver QuestionResolver, answers []AnswerItem, relevant func(q *model.Question) bool) (int, error) {
	correct := 0
	for _, a := range answers {
		q, err := resolver.FindByID(a.QuestionID)
		if err != nil {
			return 0, err
		}
		if q == nil {
			return 0, util.ErrQuestionNotFound
		}
		if !relevant(q) {
			continue
		}
		if strings.TrimSpace(a.Answer) == strings.TrimSpace(q.CorrectAnswer) {
			correct++
		}
	}
	return correct, nil
}

// IsAnswerCorrect 单题判分，与批量判分使用同一比较规则
func IsAnswerCorrect(q *model.Question, answer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectAnswer)
}
