package service

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"
	"testing"
)

type fakeUnitStore struct {
	units map[string]*model.Unit
}

func (f *fakeUnitStore) FindByID(id string) (*model.Unit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type fakeQuestionStore struct {
	questions map[string]*model.Question
}

func (f *fakeQuestionStore) FindByID(id string) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	return q, nil
}

type fakeReviewSetStore struct {
	sets map[string]*model.ReviewSet
}

func (f *fakeReviewSetStore) FindByID(id string) (*model.ReviewSet, error) {
	rs, ok := f.sets[id]
	if !ok {
		return nil, nil
	}
	return rs, nil
}

type fakeProgressStore struct {
	items          map[string]*model.UserUnitProgress
	testAttempts   []*model.UnitTestAttempt
	reviewAttempts []*model.ReviewAttempt
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{items: map[string]*model.UserUnitProgress{}}
}

func (f *fakeProgressStore) key(userID, unitID string) string {
	return userID + "|" + unitID
}

func (f *fakeProgressStore) Find(userID, unitID string) (*model.UserUnitProgress, error) {
	item, ok := f.items[f.key(userID, unitID)]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeProgressStore) Save(item *model.UserUnitProgress) error {
	f.items[f.key(item.UserID, item.UnitID)] = item
	return nil
}

func (f *fakeProgressStore) SaveWithTestAttempt(item *model.UserUnitProgress, attempt *model.UnitTestAttempt) error {
	f.items[f.key(item.UserID, item.UnitID)] = item
	f.testAttempts = append(f.testAttempts, attempt)
	return nil
}

func (f *fakeProgressStore) SaveWithReviewAttempt(item *model.UserUnitProgress, attempt *model.ReviewAttempt) error {
	f.items[f.key(item.UserID, item.UnitID)] = item
	f.reviewAttempts = append(f.reviewAttempts, attempt)
	return nil
}

func (f *fakeProgressStore) CreateReviewAttempt(attempt *model.ReviewAttempt) error {
	f.reviewAttempts = append(f.reviewAttempts, attempt)
	return nil
}

func (f *fakeProgressStore) CountByStatus(userID string, status model.ProgressStatus) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.UserID == userID && item.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeDailyLogStore struct {
	counts map[string]int
}

func (f *fakeDailyLogStore) TodayCount(userID string) (int, error) {
	return f.counts[userID], nil
}

func testFixture() (*ProgressService, *fakeProgressStore) {
	unit := &model.Unit{
		ID:          "unit_1",
		SubjectCode: "1A",
		Title:       "数と式",
		Steps: []model.UnitStep{
			{ID: "st_1", UnitID: "unit_1", StepOrder: 1, StepType: model.StepIntro, Title: "導入", ContentMarkdown: "導入"},
			{ID: "st_2", UnitID: "unit_1", StepOrder: 2, StepType: model.StepExample, Title: "例題", ContentMarkdown: "例題"},
			{ID: "st_3", UnitID: "unit_1", StepOrder: 3, StepType: model.StepPractice, Title: "演習", ContentMarkdown: "演習"},
			{ID: "st_4", UnitID: "unit_1", StepOrder: 4, StepType: model.StepTest, Title: "確認テスト", ContentMarkdown: "確認"},
		},
	}

	questions := map[string]*model.Question{}
	for i, id := range []string{"q_t_1", "q_t_2", "q_t_3", "q_t_4", "q_t_5"} {
		questions[id] = &model.Question{
			ID: id, UnitID: "unit_1", StepType: model.StepTest,
			QuestionType: model.NumericInput, CorrectAnswer: []string{"1", "2", "3", "4", "5"}[i],
		}
	}
	for i, id := range []string{"q_r_1", "q_r_2", "q_r_3", "q_r_4", "q_r_5"} {
		questions[id] = &model.Question{
			ID: id, UnitID: "unit_1", StepType: model.StepReview,
			QuestionType: model.NumericInput, CorrectAnswer: []string{"1", "2", "3", "4", "5"}[i],
		}
	}
	questions["q_pr_1"] = &model.Question{
		ID: "q_pr_1", UnitID: "unit_1", StepType: model.StepPractice,
		QuestionType: model.NumericInput, CorrectAnswer: "5",
	}

	rs := &model.ReviewSet{ID: "rs_1", UnitID: "unit_1", RequiredCorrectCount: 4}
	rs.SetQuestionIDList([]string{"q_r_1", "q_r_2", "q_r_3", "q_r_4", "q_r_5"})

	progress := newFakeProgressStore()
	svc := NewProgressService(
		&fakeUnitStore{units: map[string]*model.Unit{"unit_1": unit}},
		&fakeQuestionStore{questions: questions},
		&fakeReviewSetStore{sets: map[string]*model.ReviewSet{"rs_1": rs}},
		progress,
		&fakeDailyLogStore{counts: map[string]int{"u_1": 2}},
	)
	return svc, progress
}

func testAnswers(pairs ...string) []AnswerItem {
	answers := make([]AnswerItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		answers = append(answers, AnswerItem{QuestionID: pairs[i], Answer: pairs[i+1]})
	}
	return answers
}

func TestStartUnitResetsProgress(t *testing.T) {
	svc, store := testFixture()

	view, err := svc.StartUnit("u_1", "unit_1")
	if err != nil {
		t.Fatalf("StartUnit: %v", err)
	}
	if view.Status != model.InProgress || view.CurrentStepOrder != 1 || view.CurrentStepType != model.StepIntro {
		t.Fatalf("unexpected initial progress: %+v", view)
	}

	// 标记为已完成后重新 start，应回到初始状态
	item := store.items["u_1|unit_1"]
	item.Status = model.Completed
	item.CurrentStepOrder = 4
	item.CurrentStepType = model.StepTest

	view, err = svc.StartUnit("u_1", "unit_1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if view.Status != model.InProgress || view.CurrentStepOrder != 1 || view.CurrentStepType != model.StepIntro {
		t.Fatalf("restart did not reset progress: %+v", view)
	}
	if view.CompletedAt != nil {
		t.Fatal("restart should clear completedAt")
	}
}

func TestStartUnitUnknownUnit(t *testing.T) {
	svc, _ := testFixture()
	if _, err := svc.StartUnit("u_1", "unit_missing"); !errors.Is(err, util.ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestGetProgressVirtualDefault(t *testing.T) {
	svc, _ := testFixture()
	view, err := svc.GetProgress("u_1", "unit_1")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if view.Status != model.NotStarted || view.CurrentStepOrder != 1 || view.CurrentStepType != model.StepIntro {
		t.Fatalf("expected virtual not_started state, got %+v", view)
	}
}

func TestAccessStepGating(t *testing.T) {
	svc, store := testFixture()

	if _, err := svc.AccessStep("u_1", "unit_1", model.StepIntro); !errors.Is(err, util.ErrUnitNotStarted) {
		t.Fatalf("expected ErrUnitNotStarted before start, got %v", err)
	}

	if _, err := svc.StartUnit("u_1", "unit_1"); err != nil {
		t.Fatalf("StartUnit: %v", err)
	}

	// 超出当前进度一步以上的步骤被锁定
	if _, err := svc.AccessStep("u_1", "unit_1", model.StepPractice); !errors.Is(err, util.ErrStepLocked) {
		t.Fatalf("expected ErrStepLocked for practice at order 1, got %v", err)
	}

	// 恰好前进一步则推进进度
	content, err := svc.AccessStep("u_1", "unit_1", model.StepExample)
	if err != nil {
		t.Fatalf("advance to example: %v", err)
	}
	if content.StepType != model.StepExample {
		t.Fatalf("unexpected content: %+v", content)
	}
	if item := store.items["u_1|unit_1"]; item.CurrentStepOrder != 2 || item.CurrentStepType != model.StepExample {
		t.Fatalf("progress not advanced: %+v", item)
	}

	// 回看已解锁的步骤不回退进度
	if _, err := svc.AccessStep("u_1", "unit_1", model.StepIntro); err != nil {
		t.Fatalf("re-read intro: %v", err)
	}
	if item := store.items["u_1|unit_1"]; item.CurrentStepOrder != 2 || item.CurrentStepType != model.StepExample {
		t.Fatalf("re-read must not regress progress: %+v", item)
	}

	if _, err := svc.AccessStep("u_1", "unit_1", "warmup"); !errors.Is(err, util.ErrStepNotFound) {
		t.Fatalf("expected ErrStepNotFound for unknown step, got %v", err)
	}
}

func advanceToPractice(t *testing.T, svc *ProgressService) {
	t.Helper()
	if _, err := svc.StartUnit("u_1", "unit_1"); err != nil {
		t.Fatalf("StartUnit: %v", err)
	}
	for _, step := range []model.StepType{model.StepExample, model.StepPractice} {
		if _, err := svc.AccessStep("u_1", "unit_1", step); err != nil {
			t.Fatalf("advance to %s: %v", step, err)
		}
	}
}

func TestSubmitTestPass(t *testing.T) {
	svc, store := testFixture()
	advanceToPractice(t, svc)

	// 5题对4题正好80分，及格
	result, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "2", "q_t_3", "3", "q_t_4", "4", "q_t_5", "wrong",
	))
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if result.ScorePercent != 80 || !result.IsPassed || result.NextAction != "passed" {
		t.Fatalf("unexpected result: %+v", result)
	}

	item := store.items["u_1|unit_1"]
	if item.Status != model.Completed || item.CurrentStepOrder != 4 || item.CurrentStepType != model.StepTest {
		t.Fatalf("pass should complete unit: %+v", item)
	}
	if item.CompletedAt == nil {
		t.Fatal("completedAt should be set on pass")
	}
	if len(store.testAttempts) != 1 || !store.testAttempts[0].IsPassed {
		t.Fatalf("attempt not recorded: %+v", store.testAttempts)
	}
}

func TestSubmitTestFailEntersReview(t *testing.T) {
	svc, store := testFixture()
	advanceToPractice(t, svc)

	result, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "wrong", "q_t_3", "wrong", "q_t_4", "wrong", "q_t_5", "wrong",
	))
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if result.IsPassed || result.NextAction != "go_review" || result.ScorePercent != 20 {
		t.Fatalf("unexpected result: %+v", result)
	}

	item := store.items["u_1|unit_1"]
	if item.Status != model.InProgress || item.CurrentStepOrder != 3 || item.CurrentStepType != model.StepReview {
		t.Fatalf("fail should enter review state: %+v", item)
	}
}

func TestSubmitTestScoreRounding(t *testing.T) {
	svc, _ := testFixture()
	advanceToPractice(t, svc)

	result, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "wrong", "q_t_3", "wrong",
	))
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if result.ScorePercent != 33.33 {
		t.Fatalf("expected 33.33, got %v", result.ScorePercent)
	}
}

func TestSubmitTestPreconditions(t *testing.T) {
	svc, store := testFixture()

	answers := testAnswers("q_t_1", "1")

	if _, err := svc.SubmitTest("u_1", "unit_1", answers); !errors.Is(err, util.ErrUnitNotStarted) {
		t.Fatalf("expected ErrUnitNotStarted, got %v", err)
	}

	if _, err := svc.StartUnit("u_1", "unit_1"); err != nil {
		t.Fatalf("StartUnit: %v", err)
	}
	if _, err := svc.SubmitTest("u_1", "unit_1", answers); !errors.Is(err, util.ErrPracticeNotReached) {
		t.Fatalf("expected ErrPracticeNotReached at order 1, got %v", err)
	}

	// review 状态下不允许重考
	item := store.items["u_1|unit_1"]
	item.CurrentStepOrder = 3
	item.CurrentStepType = model.StepReview
	if _, err := svc.SubmitTest("u_1", "unit_1", answers); !errors.Is(err, util.ErrReviewRequired) {
		t.Fatalf("expected ErrReviewRequired, got %v", err)
	}

	item.CurrentStepType = model.StepPractice
	if _, err := svc.SubmitTest("u_1", "unit_1", nil); !errors.Is(err, util.ErrAnswersRequired) {
		t.Fatalf("expected ErrAnswersRequired, got %v", err)
	}
}

func TestSubmitTestUnknownQuestionFailsWhole(t *testing.T) {
	svc, store := testFixture()
	advanceToPractice(t, svc)

	_, err := svc.SubmitTest("u_1", "unit_1", testAnswers("q_t_1", "1", "q_missing", "1"))
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if len(store.testAttempts) != 0 {
		t.Fatal("failed submission must not record an attempt")
	}
	if item := store.items["u_1|unit_1"]; item.CurrentStepType == model.StepReview {
		t.Fatal("failed submission must not change state")
	}
}

func TestSubmitTestIrrelevantAnswersCountTowardTotal(t *testing.T) {
	svc, _ := testFixture()
	advanceToPractice(t, svc)

	// 练习题即使答对也不计分，但会计入分母
	result, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "2", "q_t_3", "3", "q_t_4", "4", "q_pr_1", "5",
	))
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if result.ScorePercent != 80 || !result.IsPassed {
		t.Fatalf("expected 4/5=80 passed, got %+v", result)
	}
}

func enterReviewState(t *testing.T, svc *ProgressService, store *fakeProgressStore) {
	t.Helper()
	advanceToPractice(t, svc)
	if _, err := svc.SubmitTest("u_1", "unit_1", testAnswers("q_t_1", "wrong")); err != nil {
		t.Fatalf("failing submit: %v", err)
	}
	if item := store.items["u_1|unit_1"]; item.CurrentStepType != model.StepReview {
		t.Fatalf("fixture not in review state: %+v", item)
	}
}

func TestSubmitReviewCleared(t *testing.T) {
	svc, store := testFixture()
	enterReviewState(t, svc, store)

	result, err := svc.SubmitReview("u_1", "unit_1", "rs_1", testAnswers(
		"q_r_1", "1", "q_r_2", "2", "q_r_3", "3", "q_r_4", "4", "q_r_5", "wrong",
	))
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if !result.IsCleared || !result.CanRetryTest || result.CorrectCount != 4 || result.QuestionCount != 5 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// 复习清除只解锁重考，不直接标记 completed
	item := store.items["u_1|unit_1"]
	if item.Status != model.InProgress || item.CurrentStepOrder != 4 || item.CurrentStepType != model.StepTest {
		t.Fatalf("cleared review should return to test step: %+v", item)
	}
}

func TestSubmitTestRetryAfterClearedReview(t *testing.T) {
	svc, store := testFixture()
	enterReviewState(t, svc, store)

	if _, err := svc.SubmitReview("u_1", "unit_1", "rs_1", testAnswers(
		"q_r_1", "1", "q_r_2", "2", "q_r_3", "3", "q_r_4", "4", "q_r_5", "5",
	)); err != nil {
		t.Fatalf("clearing review: %v", err)
	}

	// 清除复习后重考不再被拒，通过即完成单元
	result, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "2", "q_t_3", "3", "q_t_4", "4", "q_t_5", "5",
	))
	if err != nil {
		t.Fatalf("retry after cleared review: %v", err)
	}
	if !result.IsPassed || result.ScorePercent != 100 || result.NextAction != "passed" {
		t.Fatalf("unexpected retry result: %+v", result)
	}

	item := store.items["u_1|unit_1"]
	if item.Status != model.Completed || item.CurrentStepOrder != 4 || item.CurrentStepType != model.StepTest {
		t.Fatalf("passing retry should complete unit: %+v", item)
	}
	if item.CompletedAt == nil {
		t.Fatal("completedAt should be set after passing retry")
	}
}

func TestSubmitReviewNotCleared(t *testing.T) {
	svc, store := testFixture()
	enterReviewState(t, svc, store)

	result, err := svc.SubmitReview("u_1", "unit_1", "rs_1", testAnswers(
		"q_r_1", "1", "q_r_2", "wrong", "q_r_3", "wrong", "q_r_4", "wrong", "q_r_5", "wrong",
	))
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if result.IsCleared || result.CorrectCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	item := store.items["u_1|unit_1"]
	if item.CurrentStepType != model.StepReview || item.CurrentStepOrder != 3 {
		t.Fatalf("uncleared review must not change state: %+v", item)
	}
	if len(store.reviewAttempts) != 1 {
		t.Fatalf("attempt should still be recorded: %d", len(store.reviewAttempts))
	}
}

func TestSubmitReviewPreconditions(t *testing.T) {
	svc, store := testFixture()

	if _, err := svc.SubmitReview("u_1", "unit_1", "rs_1", nil); !errors.Is(err, util.ErrUnitNotStarted) {
		t.Fatalf("expected ErrUnitNotStarted, got %v", err)
	}

	if _, err := svc.StartUnit("u_1", "unit_1"); err != nil {
		t.Fatalf("StartUnit: %v", err)
	}
	if _, err := svc.SubmitReview("u_1", "unit_1", "rs_1", nil); !errors.Is(err, util.ErrReviewNotActive) {
		t.Fatalf("expected ErrReviewNotActive, got %v", err)
	}

	item := store.items["u_1|unit_1"]
	item.CurrentStepOrder = 3
	item.CurrentStepType = model.StepReview
	if _, err := svc.SubmitReview("u_1", "unit_1", "rs_missing", nil); !errors.Is(err, util.ErrReviewSetNotFound) {
		t.Fatalf("expected ErrReviewSetNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc, store := testFixture()
	advanceToPractice(t, svc)
	if _, err := svc.SubmitTest("u_1", "unit_1", testAnswers(
		"q_t_1", "1", "q_t_2", "2", "q_t_3", "3", "q_t_4", "4", "q_t_5", "5",
	)); err != nil {
		t.Fatalf("passing submit: %v", err)
	}
	store.items["u_1|unit_2"] = &model.UserUnitProgress{
		UserID: "u_1", UnitID: "unit_2",
		Status: model.InProgress, CurrentStepOrder: 2, CurrentStepType: model.StepExample,
	}

	summary, err := svc.Summary("u_1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.CompletedUnits != 1 || summary.InProgressUnits != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.StreakDays != 0 {
		t.Fatalf("streakDays should be 0, got %d", summary.StreakDays)
	}
	if summary.TodaySolvedCount != 2 {
		t.Fatalf("expected todaySolvedCount 2, got %d", summary.TodaySolvedCount)
	}
}
