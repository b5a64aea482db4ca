package service

import (
	"math/rand"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"time"
)

// RecommendationService 每日推荐与首页聚合
type RecommendationService struct {
	QuestionRepo       *repository.QuestionRepository
	UnitRepo           *repository.UnitRepository
	RecommendationRepo *repository.RecommendationRepository
	ProgressRepo       *repository.ProgressRepository
	BadgeRepo          *repository.BadgeRepository
	LearningLogRepo    *repository.LearningLogRepository
}

func NewRecommendationService(
	questionRepo *repository.QuestionRepository,
	unitRepo *repository.UnitRepository,
	recommendationRepo *repository.RecommendationRepository,
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
	learningLogRepo *repository.LearningLogRepository,
) *RecommendationService {
	return &RecommendationService{
		QuestionRepo:       questionRepo,
		UnitRepo:           unitRepo,
		RecommendationRepo: recommendationRepo,
		ProgressRepo:       progressRepo,
		BadgeRepo:          badgeRepo,
		LearningLogRepo:    learningLogRepo,
	}
}

// RecommendedQuestion 推荐列表项，附单元标题方便客户端直接展示
type RecommendedQuestion struct {
	QuestionID string         `json:"questionId"`
	UnitID     string         `json:"unitId"`
	UnitTitle  string         `json:"unitTitle"`
	StepType   model.StepType `json:"stepType"`
	Body       string         `json:"body"`
}

// DailyRecommendations 随机抽样推荐。count 限制在 1..10，
// 题库不足时返回全部；登录用户会落一条发放记录
func (s *RecommendationService) DailyRecommendations(userID string, count int) ([]RecommendedQuestion, error) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	questions, err := s.QuestionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > count {
		questions = questions[:count]
	}

	titles, err := s.unitTitles(questions)
	if err != nil {
		return nil, err
	}

	items := make([]RecommendedQuestion, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		items = append(items, RecommendedQuestion{
			QuestionID: q.ID,
			UnitID:     q.UnitID,
			UnitTitle:  titles[q.UnitID],
			StepType:   q.StepType,
			Body:       q.Body,
		})
	}

	if userID != "" && len(items) > 0 {
		now := time.Now()
		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		logs := make([]model.RecommendationLog, 0, len(items))
		for _, item := range items {
			logs = append(logs, model.RecommendationLog{
				UserID:          userID,
				QuestionID:      item.QuestionID,
				RecommendedDate: date,
				Source:          "random",
			})
		}
		if err := s.RecommendationRepo.CreateBatch(logs); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *RecommendationService) unitTitles(questions []model.Question) (map[string]string, error) {
	titles := make(map[string]string)
	for i := range questions {
		unitID := questions[i].UnitID
		if _, ok := titles[unitID]; ok {
			continue
		}
		unit, err := s.UnitRepo.FindByID(unitID)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			titles[unitID] = unit.Title
		} else {
			titles[unitID] = ""
		}
	}
	return titles, nil
}

// InProgressUnitView 首页的继续学习卡片
type InProgressUnitView struct {
	UnitID           string         `json:"unitId"`
	Title            string         `json:"title"`
	CurrentStepOrder int            `json:"currentStepOrder"`
	CurrentStepType  model.StepType `json:"currentStepType"`
}

type LatestBadgeView struct {
	BadgeID   string          `json:"badgeId"`
	Name      string          `json:"name"`
	BadgeType model.BadgeType `json:"badgeType"`
	AwardedAt time.Time       `json:"awardedAt"`
}

// HomeView 首页聚合视图
type HomeView struct {
	TodayRecommendation []RecommendedQuestion `json:"todayRecommendation"`
	StreakDays          int                   `json:"streakDays"`
	TodaySolvedCount    int                   `json:"todaySolvedCount"`
	InProgressUnit      *InProgressUnitView   `json:"inProgressUnit"`
	LatestBadges        []LatestBadgeView     `json:"latestBadges"`
}

// Home 聚合首页数据。连续天数的口径尚未定稿，先固定为 0
func (s *RecommendationService) Home(userID string) (*HomeView, error) {
	recommendation, err := s.DailyRecommendations(userID, 3)
	if err != nil {
		return nil, err
	}

	todayCount, err := s.LearningLogRepo.TodayCount(userID)
	if err != nil {
		return nil, err
	}

	view := &HomeView{
		TodayRecommendation: recommendation,
		StreakDays:          0,
		TodaySolvedCount:    todayCount,
		LatestBadges:        []LatestBadgeView{},
	}

	progress, err := s.ProgressRepo.FindInProgressUnit(userID)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		unit, err := s.UnitRepo.FindByID(progress.UnitID)
		if err != nil {
			return nil, err
		}
		title := ""
		if unit != nil {
			title = unit.Title
		}
		view.InProgressUnit = &InProgressUnitView{
			UnitID:           progress.UnitID,
			Title:            title,
			CurrentStepOrder: progress.CurrentStepOrder,
			CurrentStepType:  progress.CurrentStepType,
		}
	}

	badges, err := s.BadgeRepo.LatestUserBadges(userID, 3)
	if err != nil {
		return nil, err
	}
	for _, b := range badges {
		view.LatestBadges = append(view.LatestBadges, LatestBadgeView{
			BadgeID:   b.BadgeID,
			Name:      b.BadgeName,
			BadgeType: b.BadgeType,
			AwardedAt: b.AwardedAt,
		})
	}
	return view, nil
}
