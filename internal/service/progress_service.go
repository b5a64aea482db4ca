package service

import (
	"math"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/util"
	"sync"
	"time"
)

// PassThreshold 确认测试的及格线（百分比）
const PassThreshold = 80.0

// UnitStore 解析单元及其固定四步，不存在返回 (nil, nil)
type UnitStore interface {
	FindByID(id string) (*model.Unit, error)
}

// ReviewSetStore 解析复习集，不存在返回 (nil, nil)
type ReviewSetStore interface {
	FindByID(id string) (*model.ReviewSet, error)
}

// ProgressStore 进度记录的读写。提交类操作要求状态变更与
// 审计记录在同一事务内落库
type ProgressStore interface {
	Find(userID, unitID string) (*model.UserUnitProgress, error)
	Save(item *model.UserUnitProgress) error
	SaveWithTestAttempt(item *model.UserUnitProgress, attempt *model.UnitTestAttempt) error
	SaveWithReviewAttempt(item *model.UserUnitProgress, attempt *model.ReviewAttempt) error
	CreateReviewAttempt(attempt *model.ReviewAttempt) error
	CountByStatus(userID string, status model.ProgressStatus) (int64, error)
}

// DailyLogStore 当日答题计数，进度摘要用
type DailyLogStore interface {
	TodayCount(userID string) (int, error)
}

// ProgressService 单元进度状态机。
// 状态为 (status, currentStepOrder, currentStepType)，记录不存在时
// 视为 (not_started, 1, intro)。所有状态转移按 (user, unit) 串行化
type ProgressService struct {
	Units      UnitStore
	Questions  QuestionResolver
	ReviewSets ReviewSetStore
	Progress   ProgressStore
	DailyLogs  DailyLogStore

	locks sync.Map // key: userID+"|"+unitID -> *sync.Mutex
}

func NewProgressService(units UnitStore, questions QuestionResolver, reviewSets ReviewSetStore, progress ProgressStore, dailyLogs DailyLogStore) *ProgressService {
	return &ProgressService{
		Units:      units,
		Questions:  questions,
		ReviewSets: reviewSets,
		Progress:   progress,
		DailyLogs:  dailyLogs,
	}
}

// lock 获取 (user, unit) 对应的临界区，返回解锁函数
func (s *ProgressService) lock(userID, unitID string) func() {
	v, _ := s.locks.LoadOrStore(userID+"|"+unitID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ProgressView 进度快照
type ProgressView struct {
	UnitID           string               `json:"unitId"`
	Status           model.ProgressStatus `json:"status"`
	CurrentStepOrder int                  `json:"currentStepOrder"`
	CurrentStepType  model.StepType       `json:"currentStepType"`
	CompletedAt      *time.Time           `json:"completedAt"`
}

func progressView(unitID string, item *model.UserUnitProgress) *ProgressView {
	if item == nil {
		// 虚拟默认态：从未 start 过的单元
		return &ProgressView{
			UnitID:           unitID,
			Status:           model.NotStarted,
			CurrentStepOrder: 1,
			CurrentStepType:  model.StepIntro,
		}
	}
	return &ProgressView{
		UnitID:           unitID,
		Status:           item.Status,
		CurrentStepOrder: item.CurrentStepOrder,
		CurrentStepType:  item.CurrentStepType,
		CompletedAt:      item.CompletedAt,
	}
}

// StartUnit 无条件把进度重置为 (in_progress, 1, intro)。
// 重复调用幂等，已完成的单元也会被重新开始
func (s *ProgressService) StartUnit(userID, unitID string) (*ProgressView, error) {
	unit, err := s.Units.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	unlock := s.lock(userID, unitID)
	defer unlock()

	item, err := s.Progress.Find(userID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &model.UserUnitProgress{UserID: userID, UnitID: unitID}
	}
	item.Status = model.InProgress
	item.CurrentStepOrder = 1
	item.CurrentStepType = model.StepIntro
	item.CompletedAt = nil

	if err := s.Progress.Save(item); err != nil {
		return nil, err
	}
	return progressView(unitID, item), nil
}

// GetProgress 查询进度，没有记录时返回虚拟默认态而非报错
func (s *ProgressService) GetProgress(userID, unitID string) (*ProgressView, error) {
	unit, err := s.Units.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	item, err := s.Progress.Find(userID, unitID)
	if err != nil {
		return nil, err
	}
	return progressView(unitID, item), nil
}

// StepContent 步骤内容
type StepContent struct {
	UnitID          string         `json:"unitId"`
	StepType        model.StepType `json:"stepType"`
	Title           string         `json:"title"`
	ContentMarkdown string         `json:"contentMarkdown"`
}

// AccessStep 步骤访问门控。
// 超出当前进度一步以上的步骤被锁定；恰好前进一步则推进进度；
// 回看已解锁步骤只返回内容，不回退 current_step_type
func (s *ProgressService) AccessStep(userID, unitID string, stepType model.StepType) (*StepContent, error) {
	unit, err := s.Units.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}
	step := unit.StepByType(stepType)
	if step == nil {
		return nil, util.ErrStepNotFound
	}

	unlock := s.lock(userID, unitID)
	defer unlock()

	item, err := s.Progress.Find(userID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, util.ErrUnitNotStarted
	}

	requestedOrder := step.StepOrder
	if requestedOrder > item.CurrentStepOrder+1 {
		return nil, util.ErrStepLocked
	}

	if requestedOrder == item.CurrentStepOrder+1 {
		item.CurrentStepOrder = requestedOrder
		item.CurrentStepType = stepType
		if err := s.Progress.Save(item); err != nil {
			return nil, err
		}
	}

	return &StepContent{
		UnitID:          unitID,
		StepType:        stepType,
		Title:           step.Title,
		ContentMarkdown: step.ContentMarkdown,
	}, nil
}

// TestResult 确认测试结果
type TestResult struct {
	ScorePercent  float64 `json:"scorePercent"`
	PassThreshold float64 `json:"passThreshold"`
	IsPassed      bool    `json:"isPassed"`
	NextAction    string  `json:"nextAction"`
}

// SubmitTest 提交确认测试。
// 前置条件按序检查：已 start、不处于 review、已到达 practice、答案非空。
// 通过 → (completed, 4, test)；未通过 → (in_progress, 3, review)
func (s *ProgressService) SubmitTest(userID, unitID string, answers []AnswerItem) (*TestResult, error) {
	unit, err := s.Units.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	unlock := s.lock(userID, unitID)
	defer unlock()

	item, err := s.Progress.Find(userID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, util.ErrUnitNotStarted
	}
	if item.CurrentStepType == model.StepReview {
		return nil, util.ErrReviewRequired
	}
	if item.CurrentStepOrder < 3 {
		return nil, util.ErrPracticeNotReached
	}

	total := len(answers)
	if total == 0 {
		return nil, util.ErrAnswersRequired
	}

	correct, err := CountCorrectAnswers(s.Questions, answers, func(q *model.Question) bool {
		return q.UnitID == unitID && q.StepType == model.StepTest
	})
	if err != nil {
		return nil, err
	}

	score := math.Round(float64(correct)/float64(total)*100*100) / 100
	passed := score >= PassThreshold

	attempt := &model.UnitTestAttempt{
		UserID:       userID,
		UnitID:       unitID,
		ScorePercent: score,
		IsPassed:     passed,
	}

	if passed {
		now := time.Now()
		item.Status = model.Completed
		item.CurrentStepOrder = 4
		item.CurrentStepType = model.StepTest
		item.CompletedAt = &now
	} else {
		item.Status = model.InProgress
		item.CurrentStepOrder = 3
		item.CurrentStepType = model.StepReview
		item.CompletedAt = nil
	}

	if err := s.Progress.SaveWithTestAttempt(item, attempt); err != nil {
		return nil, err
	}

	nextAction := "go_review"
	if passed {
		nextAction = "passed"
	}
	return &TestResult{
		ScorePercent:  score,
		PassThreshold: PassThreshold,
		IsPassed:      passed,
		NextAction:    nextAction,
	}, nil
}

// ReviewResult 复习集提交结果
type ReviewResult struct {
	CorrectCount         int  `json:"correctCount"`
	QuestionCount        int  `json:"questionCount"`
	RequiredCorrectCount int  `json:"requiredCorrectCount"`
	IsCleared            bool `json:"isCleared"`
	CanRetryTest         bool `json:"canRetryTest"`
}

// SubmitReview 提交复习集。仅在 current_step_type == review 时有效。
// 清除成功把状态转回 (4, test)（不标记 completed，须重新通过测试）；
// 未清除则状态不变，只记录尝试
func (s *ProgressService) SubmitReview(userID, unitID, reviewSetID string, answers []AnswerItem) (*ReviewResult, error) {
	unit, err := s.Units.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	unlock := s.lock(userID, unitID)
	defer unlock()

	item, err := s.Progress.Find(userID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, util.ErrUnitNotStarted
	}
	if item.CurrentStepType != model.StepReview {
		return nil, util.ErrReviewNotActive
	}

	rs, err := s.ReviewSets.FindByID(reviewSetID)
	if err != nil {
		return nil, err
	}
	if rs == nil || rs.UnitID != unitID {
		return nil, util.ErrReviewSetNotFound
	}

	correct, err := CountCorrectAnswers(s.Questions, answers, func(q *model.Question) bool {
		return rs.Contains(q.ID)
	})
	if err != nil {
		return nil, err
	}

	cleared := correct >= rs.RequiredCorrectCount

	attempt := &model.ReviewAttempt{
		UserID:       userID,
		UnitID:       unitID,
		ReviewSetID:  reviewSetID,
		CorrectCount: correct,
		IsCleared:    cleared,
	}

	if cleared {
		item.CurrentStepOrder = 4
		item.CurrentStepType = model.StepTest
		if err := s.Progress.SaveWithReviewAttempt(item, attempt); err != nil {
			return nil, err
		}
	} else {
		if err := s.Progress.CreateReviewAttempt(attempt); err != nil {
			return nil, err
		}
	}

	return &ReviewResult{
		CorrectCount:         correct,
		QuestionCount:        len(rs.QuestionIDList()),
		RequiredCorrectCount: rs.RequiredCorrectCount,
		IsCleared:            cleared,
		CanRetryTest:         cleared,
	}, nil
}

// SummaryResult 学习进度摘要
type SummaryResult struct {
	CompletedUnits   int64 `json:"completedUnits"`
	InProgressUnits  int64 `json:"inProgressUnits"`
	StreakDays       int   `json:"streakDays"`
	TodaySolvedCount int   `json:"todaySolvedCount"`
}

// Summary 进度摘要。streakDays 的计算属于激励模块，这里恒为 0
func (s *ProgressService) Summary(userID string) (*SummaryResult, error) {
	completed, err := s.Progress.CountByStatus(userID, model.Completed)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Progress.CountByStatus(userID, model.InProgress)
	if err != nil {
		return nil, err
	}

	todaySolved := 0
	if s.DailyLogs != nil {
		todaySolved, err = s.DailyLogs.TodayCount(userID)
		if err != nil {
			return nil, err
		}
	}

	return &SummaryResult{
		CompletedUnits:   completed,
		InProgressUnits:  inProgress,
		StreakDays:       0,
		TodaySolvedCount: todaySolved,
	}, nil
}
