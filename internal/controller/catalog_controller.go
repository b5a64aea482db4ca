package controller

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListSubjects godoc
// @Summary 科目列表
// @Tags 目录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/v1/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.CatalogService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// ListUnits godoc
// @Summary 单元列表
// @Description 可按科目代码过滤，列表不合并个人进度
// @Tags 目录
// @Produce  json
// @Param   subject query string false "科目代码 1A/2B/2C"
// @Success 200 {object} util.Response{data=[]service.UnitListItem}
// @Router /api/v1/units [get]
func (c *CatalogController) ListUnits(ctx *gin.Context) {
	items, err := c.CatalogService.ListUnits(ctx.Query("subject"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetUnit godoc
// @Summary 单元详情
// @Tags 目录
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response{data=service.UnitDetail}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/units/{unit_id} [get]
func (c *CatalogController) GetUnit(ctx *gin.Context) {
	detail, err := c.CatalogService.GetUnit(ctx.Param("unit_id"))
	if err != nil {
		if errors.Is(err, util.ErrUnitNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// ListQuestions godoc
// @Summary 单元题目列表
// @Description 不返回答案与解析。count 限制在 1..50
// @Tags 目录
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   stepType query string false "题目用途 practice/test/review"
// @Param   count query int false "返回数量，默认10"
// @Param   random query bool false "是否打乱顺序"
// @Success 200 {object} util.Response{data=[]service.QuestionView}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/units/{unit_id}/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	count := 10
	if raw := ctx.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}
	randomOrder := ctx.Query("random") == "true"

	views, err := c.CatalogService.ListQuestions(
		ctx.Param("unit_id"),
		model.StepType(ctx.Query("stepType")),
		count,
		randomOrder,
	)
	if err != nil {
		if errors.Is(err, util.ErrUnitNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, views)
}

// AnswerRequest 单题作答请求
type AnswerRequest struct {
	Answer    string `json:"answer" binding:"required"`
	ElapsedMs *int   `json:"elapsedMs"`
}

// AnswerQuestion godoc
// @Summary 单题作答
// @Description 即时判分并返回解析，登录用户会累计当日答题数
// @Tags 目录
// @Accept  json
// @Produce  json
// @Param   question_id path string true "题目ID"
// @Param   body body AnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/v1/questions/{question_id}/answer [post]
func (c *CatalogController) AnswerQuestion(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := ""
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	result, err := c.CatalogService.AnswerQuestion(userID, ctx.Param("question_id"), req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetHint godoc
// @Summary 分级提示
// @Tags 目录
// @Produce  json
// @Param   question_id path string true "题目ID"
// @Param   level path int true "提示级别，从1开始"
// @Success 200 {object} util.Response{data=service.HintView}
// @Failure 404 {object} util.Response "题目或提示不存在"
// @Router /api/v1/questions/{question_id}/hints/{level} [get]
func (c *CatalogController) GetHint(ctx *gin.Context) {
	level, err := strconv.Atoi(ctx.Param("level"))
	if err != nil {
		util.BadRequest(ctx, "invalid hint level")
		return
	}

	hint, err := c.CatalogService.GetHint(ctx.Param("question_id"), level)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrHintNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, hint)
}

// GetReviewSet godoc
// @Summary 单元复习集
// @Description 返回当前启用的复习集及其题目（不含答案）
// @Tags 目录
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response{data=service.ReviewSetView}
// @Failure 404 {object} util.Response "单元或复习集不存在"
// @Router /api/v1/units/{unit_id}/review-set [get]
func (c *CatalogController) GetReviewSet(ctx *gin.Context) {
	view, err := c.CatalogService.GetActiveReviewSet(ctx.Param("unit_id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnitNotFound), errors.Is(err, util.ErrReviewSetNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}
