package controller

import (
	"errors"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 目录与徽章的管理端接口
type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

func mapAdminError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnitNotFound),
		errors.Is(err, util.ErrStepNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrHintNotFound),
		errors.Is(err, util.ErrReviewSetNotFound),
		errors.Is(err, util.ErrBadgeNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateUnit godoc
// @Summary 创建单元
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   body body service.UnitUpsertInput true "单元信息"
// @Success 200 {object} util.Response{data=service.UnitDetail}
// @Router /api/v1/admin/units [post]
func (c *AdminController) CreateUnit(ctx *gin.Context) {
	var input service.UnitUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.AdminService.CreateUnit(input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// UpdateUnit godoc
// @Summary 更新单元
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   body body service.UnitUpsertInput true "单元信息"
// @Success 200 {object} util.Response{data=service.UnitDetail}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/admin/units/{unit_id} [put]
func (c *AdminController) UpdateUnit(ctx *gin.Context) {
	var input service.UnitUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.AdminService.UpdateUnit(ctx.Param("unit_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// DeleteUnit godoc
// @Summary 删除单元
// @Tags 管理端
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/admin/units/{unit_id} [delete]
func (c *AdminController) DeleteUnit(ctx *gin.Context) {
	if err := c.AdminService.DeleteUnit(ctx.Param("unit_id")); err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{})
}

// CreateStep godoc
// @Summary 创建步骤
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   unit_id path string true "单元ID"
// @Param   body body service.StepUpsertInput true "步骤信息"
// @Success 200 {object} util.Response{data=model.UnitStep}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/admin/units/{unit_id}/steps [post]
func (c *AdminController) CreateStep(ctx *gin.Context) {
	var input service.StepUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	step, err := c.AdminService.CreateStep(ctx.Param("unit_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, step)
}

// UpdateStep godoc
// @Summary 更新步骤
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   step_id path string true "步骤ID"
// @Param   body body service.StepUpsertInput true "步骤信息"
// @Success 200 {object} util.Response{data=model.UnitStep}
// @Failure 404 {object} util.Response "步骤不存在"
// @Router /api/v1/admin/steps/{step_id} [put]
func (c *AdminController) UpdateStep(ctx *gin.Context) {
	var input service.StepUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	step, err := c.AdminService.UpdateStep(ctx.Param("step_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, step)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   body body service.QuestionUpsertInput true "题目信息"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 404 {object} util.Response "单元不存在"
// @Router /api/v1/admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var input service.QuestionUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.CreateQuestion(input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   question_id path string true "题目ID"
// @Param   body body service.QuestionUpsertInput true "题目信息"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/v1/admin/questions/{question_id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	var input service.QuestionUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.UpdateQuestion(ctx.Param("question_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 管理端
// @Produce  json
// @Param   question_id path string true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/v1/admin/questions/{question_id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	if err := c.AdminService.DeleteQuestion(ctx.Param("question_id")); err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{})
}

// CreateHint godoc
// @Summary 创建提示
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   question_id path string true "题目ID"
// @Param   body body service.HintUpsertInput true "提示信息"
// @Success 200 {object} util.Response{data=service.HintView}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/v1/admin/questions/{question_id}/hints [post]
func (c *AdminController) CreateHint(ctx *gin.Context) {
	var input service.HintUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.CreateHint(ctx.Param("question_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateHint godoc
// @Summary 更新提示
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   hint_id path string true "提示ID"
// @Param   body body service.HintUpsertInput true "提示信息"
// @Success 200 {object} util.Response{data=service.HintView}
// @Failure 404 {object} util.Response "提示不存在"
// @Router /api/v1/admin/hints/{hint_id} [put]
func (c *AdminController) UpdateHint(ctx *gin.Context) {
	var input service.HintUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.UpdateHint(ctx.Param("hint_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CreateReviewSet godoc
// @Summary 创建复习集
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   body body service.ReviewSetUpsertInput true "复习集信息"
// @Success 200 {object} util.Response{data=service.ReviewSetView}
// @Failure 404 {object} util.Response "单元或题目不存在"
// @Router /api/v1/admin/review-sets [post]
func (c *AdminController) CreateReviewSet(ctx *gin.Context) {
	var input service.ReviewSetUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.CreateReviewSet(input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateReviewSet godoc
// @Summary 更新复习集
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   set_id path string true "复习集ID"
// @Param   body body service.ReviewSetUpsertInput true "复习集信息"
// @Success 200 {object} util.Response{data=service.ReviewSetView}
// @Failure 404 {object} util.Response "复习集不存在"
// @Router /api/v1/admin/review-sets/{set_id} [put]
func (c *AdminController) UpdateReviewSet(ctx *gin.Context) {
	var input service.ReviewSetUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AdminService.UpdateReviewSet(ctx.Param("set_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CreateBadge godoc
// @Summary 创建徽章
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   body body service.BadgeUpsertInput true "徽章信息"
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/v1/admin/badges [post]
func (c *AdminController) CreateBadge(ctx *gin.Context) {
	var input service.BadgeUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badges, err := c.AdminService.CreateBadge(input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// UpdateBadge godoc
// @Summary 更新徽章
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Param   badge_id path string true "徽章ID"
// @Param   body body service.BadgeUpsertInput true "徽章信息"
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Failure 404 {object} util.Response "徽章不存在"
// @Router /api/v1/admin/badges/{badge_id} [put]
func (c *AdminController) UpdateBadge(ctx *gin.Context) {
	var input service.BadgeUpsertInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badges, err := c.AdminService.UpdateBadge(ctx.Param("badge_id"), input)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// ImportQuestions godoc
// @Summary 批量导入题目
// @Description 上传xlsx文件，首个工作表按固定列导入题目
// @Tags 管理端
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "xlsx文件"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Router /api/v1/admin/questions/import [post]
func (c *AdminController) ImportQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	result, err := c.AdminService.ImportQuestionsFromExcel(f)
	if err != nil {
		mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// UploadContentImage godoc
// @Summary 上传教材插图
// @Tags 管理端
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Router /api/v1/admin/content/images [post]
func (c *AdminController) UploadContentImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	url, err := c.AdminService.UploadContentImage(
		ctx.Request.Context(),
		fileHeader.Filename,
		f,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
