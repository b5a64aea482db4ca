package controller

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// ProgressController 学习流程：start、步骤门控、测试与复习提交
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

func currentUserID(ctx *gin.Context) string {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// mapProgressError 学习流程错误到HTTP状态码的统一映射
func mapProgressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnitNotFound),
		errors.Is(err, util.ErrStepNotFound),
		errors.Is(err, util.ErrReviewSetNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrUnitNotStarted),
		errors.Is(err, util.ErrStepLocked),
		errors.Is(err, util.ErrReviewRequired),
		errors.Is(err, util.ErrPracticeNotReached),
		errors.Is(err, util.ErrReviewNotActive):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAnswersRequired):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// StartUnit godoc
// @Summary 开始学习单元
// @Description 无条件把进度重置到第一步，已完成的单元也会重新开始
// @Tags 学习进度
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/units/{unit_id}/start [post]
func (c *ProgressController) StartUnit(ctx *gin.Context) {
	view, err := c.ProgressService.StartUnit(currentUserID(ctx), ctx.Param("unit_id"))
	if err != nil {
		mapProgressError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetProgress godoc
// @Summary 单元进度
// @Description 未开始的单元返回 not_started 默认态
// @Tags 学习进度
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/units/{unit_id}/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	view, err := c.ProgressService.GetProgress(currentUserID(ctx), ctx.Param("unit_id"))
	if err != nil {
		mapProgressError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// AccessStep godoc
// @Summary 访问步骤内容
// @Description 超出进度一步以上的步骤返回409；恰好前进一步时推进进度
// @Tags 学习进度
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   step_type path string true "步骤类型 intro/example/practice/test"
// @Success 200 {object} util.Response{data=service.StepContent}
// @Failure 404 {object} util.Response "单元或步骤不存在"
// @Failure 409 {object} util.Response "未开始或步骤被锁定"
// @Router /api/v1/units/{unit_id}/steps/{step_type} [get]
func (c *ProgressController) AccessStep(ctx *gin.Context) {
	content, err := c.ProgressService.AccessStep(
		currentUserID(ctx),
		ctx.Param("unit_id"),
		model.StepType(ctx.Param("step_type")),
	)
	if err != nil {
		mapProgressError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// TestSubmitRequest 确认测试提交
type TestSubmitRequest struct {
	Answers []service.AnswerItem `json:"answers"`
}

// SubmitTest godoc
// @Summary 提交确认测试
// @Description 80分及格。通过后单元完成，未通过进入复习状态
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   body body TestSubmitRequest true "作答列表"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Failure 400 {object} util.Response "答案为空"
// @Failure 404 {object} util.Response "单元或题目不存在"
// @Failure 409 {object} util.Response "流程前置条件不满足"
// @Router /api/v1/units/{unit_id}/tests/submit [post]
func (c *ProgressController) SubmitTest(ctx *gin.Context) {
	var req TestSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.SubmitTest(currentUserID(ctx), ctx.Param("unit_id"), req.Answers)
	if err != nil {
		monitoring.TestSubmissionCounter.WithLabelValues("rejected").Inc()
		mapProgressError(ctx, err)
		return
	}

	if result.IsPassed {
		monitoring.TestSubmissionCounter.WithLabelValues("passed").Inc()
	} else {
		monitoring.TestSubmissionCounter.WithLabelValues("failed").Inc()
	}
	util.Success(ctx, result)
}

// ReviewSubmitRequest 复习集提交
type ReviewSubmitRequest struct {
	ReviewSetID string               `json:"reviewSetId" binding:"required"`
	Answers     []service.AnswerItem `json:"answers"`
}

// SubmitReview godoc
// @Summary 提交复习集
// @Description 达到 requiredCorrectCount 后解锁重考
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   body body ReviewSubmitRequest true "复习集与作答列表"
// @Success 200 {object} util.Response{data=service.ReviewResult}
// @Failure 404 {object} util.Response "单元、复习集或题目不存在"
// @Failure 409 {object} util.Response "当前不处于复习状态"
// @Router /api/v1/units/{unit_id}/review-set/submit [post]
func (c *ProgressController) SubmitReview(ctx *gin.Context) {
	var req ReviewSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.SubmitReview(currentUserID(ctx), ctx.Param("unit_id"), req.ReviewSetID, req.Answers)
	if err != nil {
		monitoring.ReviewSubmissionCounter.WithLabelValues("rejected").Inc()
		mapProgressError(ctx, err)
		return
	}

	if result.IsCleared {
		monitoring.ReviewSubmissionCounter.WithLabelValues("cleared").Inc()
	} else {
		monitoring.ReviewSubmissionCounter.WithLabelValues("not_cleared").Inc()
	}
	util.Success(ctx, result)
}

// Summary godoc
// @Summary 学习进度摘要
// @Tags 学习进度
// @Produce  json
// @Success 200 {object} util.Response{data=service.SummaryResult}
// @Router /api/v1/progress/summary [get]
func (c *ProgressController) Summary(ctx *gin.Context) {
	result, err := c.ProgressService.Summary(currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
