package service

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"
	"testing"
)

func evaluatorResolver() *fakeQuestionStore {
	return &fakeQuestionStore{questions: map[string]*model.Question{
		"q_1": {ID: "q_1", UnitID: "unit_1", StepType: model.StepTest, CorrectAnswer: "5"},
		"q_2": {ID: "q_2", UnitID: "unit_1", StepType: model.StepTest, CorrectAnswer: "A"},
		"q_3": {ID: "q_3", UnitID: "unit_1", StepType: model.StepPractice, CorrectAnswer: "7"},
	}}
}

func allRelevant(q *model.Question) bool { return true }

func TestCountCorrectAnswers(t *testing.T) {
	resolver := evaluatorResolver()

	tests := []struct {
		name    string
		answers []AnswerItem
		want    int
	}{
		{
			name:    "exact match",
			answers: []AnswerItem{{QuestionID: "q_1", Answer: "5"}},
			want:    1,
		},
		{
			name:    "surrounding whitespace ignored",
			answers: []AnswerItem{{QuestionID: "q_1", Answer: "  5  "}, {QuestionID: "q_2", Answer: "A\n"}},
			want:    2,
		},
		{
			name:    "case sensitive",
			answers: []AnswerItem{{QuestionID: "q_2", Answer: "a"}},
			want:    0,
		},
		{
			name:    "wrong answer",
			answers: []AnswerItem{{QuestionID: "q_1", Answer: "6"}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountCorrectAnswers(resolver, tt.answers, allRelevant)
			if err != nil {
				t.Fatalf("CountCorrectAnswers: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountCorrectAnswersUnknownQuestion(t *testing.T) {
	resolver := evaluatorResolver()
	answers := []AnswerItem{
		{QuestionID: "q_1", Answer: "5"},
		{QuestionID: "q_missing", Answer: "5"},
	}

	// 不存在的题目ID让整批失败，不产生部分得分
	if _, err := CountCorrectAnswers(resolver, answers, allRelevant); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestCountCorrectAnswersIrrelevantSkipped(t *testing.T) {
	resolver := evaluatorResolver()
	answers := []AnswerItem{
		{QuestionID: "q_1", Answer: "5"},
		{QuestionID: "q_3", Answer: "7"},
	}

	got, err := CountCorrectAnswers(resolver, answers, func(q *model.Question) bool {
		return q.StepType == model.StepTest
	})
	if err != nil {
		t.Fatalf("CountCorrectAnswers: %v", err)
	}
	if got != 1 {
		t.Fatalf("practice answer must not score in test scope, got %d", got)
	}
}

func TestIsAnswerCorrect(t *testing.T) {
	q := &model.Question{CorrectAnswer: "12"}
	if !IsAnswerCorrect(q, " 12 ") {
		t.Fatal("trimmed answer should match")
	}
	if IsAnswerCorrect(q, "13") {
		t.Fatal("wrong answer should not match")
	}
}
