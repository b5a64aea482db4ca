package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// AdminService 目录与徽章的管理端写操作，
// 所有改动都会同步清掉相关的单元缓存
type AdminService struct {
	UnitRepo      *repository.UnitRepository
	QuestionRepo  *repository.QuestionRepository
	ReviewSetRepo *repository.ReviewSetRepository
	BadgeRepo     *repository.BadgeRepository
	Catalog       *CatalogService
	Storage       *StorageService
}

func NewAdminService(
	unitRepo *repository.UnitRepository,
	questionRepo *repository.QuestionRepository,
	reviewSetRepo *repository.ReviewSetRepository,
	badgeRepo *repository.BadgeRepository,
	catalog *CatalogService,
	storage *StorageService,
) *AdminService {
	return &AdminService{
		UnitRepo:      unitRepo,
		QuestionRepo:  questionRepo,
		ReviewSetRepo: reviewSetRepo,
		BadgeRepo:     badgeRepo,
		Catalog:       catalog,
		Storage:       storage,
	}
}

type UnitUpsertInput struct {
	SubjectCode string `json:"subjectCode" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPublished *bool  `json:"isPublished"`
}

func (s *AdminService) CreateUnit(input UnitUpsertInput) (*UnitDetail, error) {
	unit := &model.Unit{
		SubjectCode: input.SubjectCode,
		Title:       input.Title,
		Description: input.Description,
		IsPublished: input.IsPublished == nil || *input.IsPublished,
	}
	if err := s.UnitRepo.Create(unit); err != nil {
		return nil, err
	}
	return &UnitDetail{
		UnitID:      unit.ID,
		SubjectCode: unit.SubjectCode,
		Title:       unit.Title,
		Description: unit.Description,
		Steps:       []StepSummary{},
	}, nil
}

func (s *AdminService) UpdateUnit(unitID string, input UnitUpsertInput) (*UnitDetail, error) {
	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	unit.SubjectCode = input.SubjectCode
	unit.Title = input.Title
	unit.Description = input.Description
	if input.IsPublished != nil {
		unit.IsPublished = *input.IsPublished
	}
	if err := s.UnitRepo.Update(unit); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateUnitCache(unitID)

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
	return detail, nil
}

func (s *AdminService) DeleteUnit(unitID string) error {
	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return util.ErrUnitNotFound
	}
	if err := s.UnitRepo.Delete(unitID); err != nil {
		return err
	}
	s.Catalog.InvalidateUnitCache(unitID)
	return nil
}

type StepUpsertInput struct {
	StepType        model.StepType `json:"stepType" binding:"required"`
	StepOrder       int            `json:"stepOrder" binding:"required"`
	Title           string         `json:"title" binding:"required"`
	ContentMarkdown string         `json:"contentMarkdown"`
}

func (s *AdminService) CreateStep(unitID string, input StepUpsertInput) (*model.UnitStep, error) {
	unit, err := s.UnitRepo.FindByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	step := &model.UnitStep{
		UnitID:          unitID,
		StepOrder:       input.StepOrder,
		StepType:        input.StepType,
		Title:           input.Title,
		ContentMarkdown: input.ContentMarkdown,
	}
	if err := s.UnitRepo.CreateStep(step); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateUnitCache(unitID)
	return step, nil
}

func (s *AdminService) UpdateStep(stepID string, input StepUpsertInput) (*model.UnitStep, error) {
	step, err := s.UnitRepo.FindStepByID(stepID)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, util.ErrStepNotFound
	}

	step.StepType = input.StepType
	step.StepOrder = input.StepOrder
	step.Title = input.Title
	step.ContentMarkdown = input.ContentMarkdown
	if err := s.UnitRepo.UpdateStep(step); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateUnitCache(step.UnitID)
	return step, nil
}

type QuestionUpsertInput struct {
	UnitID        string             `json:"unitId" binding:"required"`
	StepType      model.StepType     `json:"stepType" binding:"required"`
	QuestionType  model.QuestionType `json:"questionType" binding:"required"`
	Body          string             `json:"body" binding:"required"`
	Choices       json.RawMessage    `json:"choices"`
	CorrectAnswer string             `json:"correctAnswer" binding:"required"`
	Explanation   string             `json:"explanation"`
}

func (s *AdminService) CreateQuestion(input QuestionUpsertInput) (*QuestionView, error) {
	unit, err := s.UnitRepo.FindByID(input.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, util.ErrUnitNotFound
	}

	q := &model.Question{
		UnitID:        input.UnitID,
		StepType:      input.StepType,
		QuestionType:  input.QuestionType,
		Body:          input.Body,
		Choices:       input.Choices,
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	view := questionView(q)
	return &view, nil
}

func (s *AdminService) UpdateQuestion(questionID string, input QuestionUpsertInput) (*QuestionView, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, util.ErrQuestionNotFound
	}

	q.UnitID = input.UnitID
	q.StepType = input.StepType
	q.QuestionType = input.QuestionType
	q.Body = input.Body
	q.Choices = input.Choices
	q.CorrectAnswer = input.CorrectAnswer
	q.Explanation = input.Explanation
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	view := questionView(q)
	return &view, nil
}

func (s *AdminService) DeleteQuestion(questionID string) error {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return err
	}
	if q == nil {
		return util.ErrQuestionNotFound
	}
	return s.QuestionRepo.Delete(questionID)
}

type HintUpsertInput struct {
	HintLevel int    `json:"hintLevel" binding:"required"`
	HintText  string `json:"hintText" binding:"required"`
}

func (s *AdminService) CreateHint(questionID string, input HintUpsertInput) (*HintView, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, util.ErrQuestionNotFound
	}

	hint := &model.Hint{
		QuestionID: questionID,
		HintLevel:  input.HintLevel,
		HintText:   input.HintText,
	}
	if err := s.QuestionRepo.CreateHint(hint); err != nil {
		return nil, err
	}
	return &HintView{
		QuestionID: questionID,
		HintID:     hint.ID,
		HintLevel:  hint.HintLevel,
		HintText:   hint.HintText,
	}, nil
}

func (s *AdminService) UpdateHint(hintID string, input HintUpsertInput) (*HintView, error) {
	hint, err := s.QuestionRepo.FindHintByID(hintID)
	if err != nil {
		return nil, err
	}
	if hint == nil {
		return nil, util.ErrHintNotFound
	}

	hint.HintLevel = input.HintLevel
	hint.HintText = input.HintText
	if err := s.QuestionRepo.UpdateHint(hint); err != nil {
		return nil, err
	}
	return &HintView{
		QuestionID: hint.QuestionID,
		HintID:     hint.ID,
		HintLevel:  hint.HintLevel,
		HintText:   hint.HintText,
	}, nil
}

type ReviewSetUpsertInput struct {
	UnitID               string   `json:"unitId" binding:"required"`
	QuestionIDs          []string `json:"questionIds" binding:"required"`
	RequiredCorrectCount int      `json:"requiredCorrectCount" binding:"required"`
}

func (s *AdminService) CreateReviewSet(input ReviewSetUpsertInput) (*ReviewSetView, error) {
	if err := s.checkReviewSetInput(input); err != nil {
		return nil, err
	}

	rs := &model.ReviewSet{
		UnitID:               input.UnitID,
		RequiredCorrectCount: input.RequiredCorrectCount,
	}
	if err := rs.SetQuestionIDList(input.QuestionIDs); err != nil {
		return nil, err
	}
	if err := s.ReviewSetRepo.Create(rs); err != nil {
		return nil, err
	}
	return s.Catalog.GetActiveReviewSet(input.UnitID)
}

func (s *AdminService) UpdateReviewSet(reviewSetID string, input ReviewSetUpsertInput) (*ReviewSetView, error) {
	if err := s.checkReviewSetInput(input); err != nil {
		return nil, err
	}

	rs, err := s.ReviewSetRepo.FindByID(reviewSetID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, util.ErrReviewSetNotFound
	}

	rs.UnitID = input.UnitID
	rs.RequiredCorrectCount = input.RequiredCorrectCount
	if err := rs.SetQuestionIDList(input.QuestionIDs); err != nil {
		return nil, err
	}
	if err := s.ReviewSetRepo.Update(rs); err != nil {
		return nil, err
	}
	return s.Catalog.GetReviewSet(reviewSetID)
}

// checkReviewSetInput 只校验单元与题目引用存在；
// 题目数量与 requiredCorrectCount 的取值范围不在此限制
func (s *AdminService) checkReviewSetInput(input ReviewSetUpsertInput) error {
	unit, err := s.UnitRepo.FindByID(input.UnitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return util.ErrUnitNotFound
	}
	for _, id := range input.QuestionIDs {
		q, err := s.QuestionRepo.FindByID(id)
		if err != nil {
			return err
		}
		if q == nil {
			return util.ErrQuestionNotFound
		}
	}
	return nil
}

type BadgeUpsertInput struct {
	BadgeType      model.BadgeType `json:"badgeType" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	ConditionValue *int            `json:"conditionValue"`
}

func (s *AdminService) CreateBadge(input BadgeUpsertInput) ([]model.Badge, error) {
	badge := &model.Badge{
		BadgeType:      input.BadgeType,
		Name:           input.Name,
		ConditionValue: input.ConditionValue,
	}
	if err := s.BadgeRepo.Create(badge); err != nil {
		return nil, err
	}
	return s.BadgeRepo.ListBadges()
}

func (s *AdminService) UpdateBadge(badgeID string, input BadgeUpsertInput) ([]model.Badge, error) {
	badge, err := s.BadgeRepo.FindByID(badgeID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, util.ErrBadgeNotFound
	}

	badge.BadgeType = input.BadgeType
	badge.Name = input.Name
	badge.ConditionValue = input.ConditionValue
	if err := s.BadgeRepo.Update(badge); err != nil {
		return nil, err
	}
	return s.BadgeRepo.ListBadges()
}

// ImportResult 批量导入结果。失败行不会中断整批，
// 逐行记录原因返回给调用方
type ImportResult struct {
	ImportedCount int      `json:"importedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}

// ImportQuestionsFromExcel 从 xlsx 批量导入题目。
// 首个工作表，第一行为表头，列依次为：
// unitId, stepType, questionType, body, choices(JSON数组), correctAnswer, explanation
func (s *AdminService) ImportQuestionsFromExcel(reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("打开Excel文件失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel文件没有工作表")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1
		if len(row) < 6 {
			result.SkippedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: 列数不足", rowNum))
			continue
		}

		unitID := strings.TrimSpace(row[0])
		unit, err := s.UnitRepo.FindByID(unitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			result.SkippedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: 单元 %s 不存在", rowNum, unitID))
			continue
		}

		var choices json.RawMessage
		if raw := strings.TrimSpace(row[4]); raw != "" {
			if !json.Valid([]byte(raw)) {
				result.SkippedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("第%d行: choices 不是合法JSON", rowNum))
				continue
			}
			choices = json.RawMessage(raw)
		}

		explanation := ""
		if len(row) > 6 {
			explanation = strings.TrimSpace(row[6])
		}

		q := &model.Question{
			UnitID:        unitID,
			StepType:      model.StepType(strings.TrimSpace(row[1])),
			QuestionType:  model.QuestionType(strings.TrimSpace(row[2])),
			Body:          strings.TrimSpace(row[3]),
			Choices:       choices,
			CorrectAnswer: strings.TrimSpace(row[5]),
			Explanation:   explanation,
		}
		if q.Body == "" || q.CorrectAnswer == "" {
			result.SkippedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: body 或 correctAnswer 为空", rowNum))
			continue
		}
		if err := s.QuestionRepo.Create(q); err != nil {
			return nil, err
		}
		result.ImportedCount++
	}
	return result, nil
}

// UploadContentImage 上传教材插图，返回可访问的URL
func (s *AdminService) UploadContentImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	objectName := "content/" + strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	return s.Storage.Upload(ctx, objectName, reader, size, contentType)
}
