package model

import "testing"

func TestReviewSetQuestionIDRoundTrip(t *testing.T) {
	rs := &ReviewSet{}
	ids := []string{"q_r_1", "q_r_2", "q_r_3", "q_r_4", "q_r_5"}
	if err := rs.SetQuestionIDList(ids); err != nil {
		t.Fatalf("SetQuestionIDList: %v", err)
	}

	got := rs.QuestionIDList()
	if len(got) != len(ids) {
		t.Fatalf("got %d ids, want %d", len(got), len(ids))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("order not preserved at %d: got %s want %s", i, got[i], ids[i])
		}
	}

	if !rs.Contains("q_r_3") {
		t.Fatal("Contains should find member")
	}
	if rs.Contains("q_t_1") {
		t.Fatal("Contains should reject non-member")
	}
}

func TestReviewSetQuestionIDListEmpty(t *testing.T) {
	rs := &ReviewSet{}
	if got := rs.QuestionIDList(); len(got) != 0 {
		t.Fatalf("empty column should yield empty list, got %v", got)
	}
}

func TestStepByType(t *testing.T) {
	u := &Unit{Steps: []UnitStep{
		{StepOrder: 1, StepType: StepIntro},
		{StepOrder: 2, StepType: StepExample},
	}}
	if step := u.StepByType(StepExample); step == nil || step.StepOrder != 2 {
		t.Fatalf("unexpected step: %+v", step)
	}
	if step := u.StepByType(StepTest); step != nil {
		t.Fatalf("missing step should be nil, got %+v", step)
	}
}
