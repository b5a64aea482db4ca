package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	unitCacheKeyPrefix = "catalog:unit:"
	unitCacheTTL       = 10 * time.Minute
)

// CatalogService 目录读取与单题作答，读多写少
type CatalogService struct {
	UnitRepo        *repository.UnitRepository
	QuestionRepo    *repository.QuestionRepository
	ReviewSetRepo   *repository.ReviewSetRepository
	LearningLogRepo *repository.LearningLogRepository
	Redis           *redis.Client
}

func NewCatalogService(unitRepo *repository.UnitRepository, questionRepo *repository.QuestionRepository, reviewSetRepo *repository.ReviewSetRepository, learningLogRepo *repository.LearningLogRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		UnitRepo:        unitRepo,
		QuestionRepo:    questionRepo,
		ReviewSetRepo:   reviewSetRepo,
		LearningLogRepo: learningLogRepo,
		Redis:           rdb,
	}
}

func (s *CatalogService) ListSubjects() ([]model.Subject, error) {
	return s.UnitRepo.ListSubjects()
}

// UnitListItem 单元列表项。列表不合并个人进度，
// 统一展示 not_started/1，详情进度由进度接口给出
type UnitListItem struct {
	UnitID           string               `json:"unitId"`
	SubjectCode      string               `json:"subjectCode"`
	Title            string               `json:"title"`
	Status           model.ProgressStatus `json:"status"`
	CurrentStepOrder int                  `json:"currentStepOrder"`
}

func (s *CatalogService) ListUnits(subjectCode string) ([]UnitListItem, error) {
	units, err := s.UnitRepo.List(subjectCode)
	if err != nil {
		return nil, err
	}

	items := make([]UnitListItem, 0, len(units))
	for _, u := range units {
		items = append(items, UnitListItem{
			UnitID:           u.ID,
			SubjectCode:      u.SubjectCode,
			Title:            u.Title,
			Status:           model.NotStarted,
			CurrentStepOrder: 1,
		})
	}
	return items, nil
}

// StepSummary 详情里的步骤概要，不含正文
type StepSummary struct {
	StepOrder int            `json:"stepOrder"`
	StepType  model.StepType `json:"stepType"`
	Title     string         `json:"title"`
}

type UnitDetail struct {
	UnitID      string        `json:"unitId"`
	SubjectCode string        `json:"subjectCode"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Steps       []StepSummary `json:"steps"`
}

// GetUnit 单元详情，带 Redis 缓存
func (s *CatalogService) GetUnit(unitID string) (*UnitDetail, error) {
	ctx := context.Background()
	cacheKey := unitCacheKeyPrefix + unitID

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var detail UnitDetail
			if json.Unmarshal([]byte(val), &detail) == nil {
				return &detail, nil
			}
		}
	}

	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	detail := &UnitDetail{
		UnitID:      unit.ID,
		SubjectCode: unit.SubjectCode,
		Title:       unit.Title,
		Description: unit.Description,
		Steps:       make([]StepSummary, 0, len(unit.Steps)),
	}
	for _, step := range unit.Steps {
		detail.Steps = append(detail.Steps, StepSummary{
			StepOrder: step.StepOrder,
			StepType:  step.StepType,
			Title:     step.Title,
		})
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(detail); err == nil {
			s.Redis.Set(ctx, cacheKey, raw, unitCacheTTL)
		}
	}
	return detail, nil
}

// InvalidateUnitCache 管理端改动目录后清掉缓存
func (s *CatalogService) InvalidateUnitCache(unitID string) {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), unitCacheKeyPrefix+unitID)
	}
}

// QuestionView 不含答案的题目视图
type QuestionView struct {
	QuestionID   string             `json:"questionId"`
	UnitID       string             `json:"unitId"`
	StepType     model.StepType     `json:"stepType"`
	QuestionType model.QuestionType `json:"questionType"`
	Body         string             `json:"body"`
	Choices      json.RawMessage    `json:"choices"`
}

func questionView(q *model.Question) QuestionView {
	choices := q.Choices
	if len(choices) == 0 {
		choices = json.RawMessage("[]")
	}
	return QuestionView{
		QuestionID:   q.ID,
		UnitID:       q.UnitID,
		StepType:     q.StepType,
		QuestionType: q.QuestionType,
		Body:         q.Body,
		Choices:      choices,
	}
}

// ListQuestions 按单元（可选按用途）出题，count 限制在 1..50，
// randomOrder 时打乱顺序
func (s *CatalogService) ListQuestions(unitID string, stepType model.StepType, count int, randomOrder bool) ([]QuestionView, error) {
	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	questions, err := s.QuestionRepo.ListByUnit(unitID, stepType)
	if err != nil {
		return nil, err
	}

	if randomOrder {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, questionView(&questions[i]))
	}
	return views, nil
}

// AnswerResult 单题作答结果
type AnswerResult struct {
	IsCorrect         bool   `json:"isCorrect"`
	CorrectAnswer     string `json:"correctAnswer"`
	Explanation       string `json:"explanation"`
	NextHintAvailable bool   `json:"nextHintAvailable"`
}

// AnswerQuestion 单题即时判分，同时累计当日答题数
func (s *CatalogService) AnswerQuestion(userID, questionID, answer string) (*AnswerResult, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, util.ErrQuestionNotFound
	}

	correct := IsAnswerCorrect(q, answer)

	hintCount, err := s.QuestionRepo.CountHints(questionID)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		if err := s.LearningLogRepo.IncrementToday(userID); err != nil {
			return nil, err
		}
	}

	return &AnswerResult{
		IsCorrect:         correct,
		CorrectAnswer:     q.CorrectAnswer,
		Explanation:       q.Explanation,
		NextHintAvailable: !correct && hintCount > 0,
	}, nil
}

type HintView struct {
	QuestionID string `json:"questionId"`
	HintID     string `json:"hintId"`
	HintLevel  int    `json:"hintLevel"`
	HintText   string `json:"hintText"`
}

func (s *CatalogService) GetHint(questionID string, level int) (*HintView, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, util.ErrQuestionNotFound
	}

	hint, err := s.QuestionRepo.FindHintByLevel(questionID, level)
	if err != nil {
		return nil, err
	}
	if hint == nil {
		return nil, util.ErrHintNotFound
	}

	return &HintView{
		QuestionID: questionID,
		HintID:     hint.ID,
		HintLevel:  hint.HintLevel,
		HintText:   hint.HintText,
	}, nil
}

// ReviewSetView 复习集与其题目
type ReviewSetView struct {
	ReviewSetID          string         `json:"reviewSetId"`
	QuestionCount        int            `json:"questionCount"`
	RequiredCorrectCount int            `json:"requiredCorrectCount"`
	Questions            []QuestionView `json:"questions"`
}

// GetActiveReviewSet 返回单元当前启用的复习集及题目
func (s *CatalogService) GetActiveReviewSet(unitID string) (*ReviewSetView, error) {
	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	rs, err := s.ReviewSetRepo.FindByUnit(unitID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, util.ErrReviewSetNotFound
	}

	return s.reviewSetView(rs)
}

// GetReviewSet 按ID取复习集视图，管理端回显用
func (s *CatalogService) GetReviewSet(reviewSetID string) (*ReviewSetView, error) {
	rs, err := s.ReviewSetRepo.FindByID(reviewSetID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, util.ErrReviewSetNotFound
	}
	return s.reviewSetView(rs)
}

func (s *CatalogService) reviewSetView(rs *model.ReviewSet) (*ReviewSetView, error) {
	ids := rs.QuestionIDList()
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	// 保持复习集声明的题目顺序
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	views := make([]QuestionView, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			views = append(views, questionView(q))
		}
	}

	return &ReviewSetView{
		ReviewSetID:          rs.ID,
		QuestionCount:        len(views),
		RequiredCorrectCount: rs.RequiredCorrectCount,
		Questions:            views,
	}, nil
}
