package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
}

func NewBadgeController(badgeService *service.BadgeService) *BadgeController {
	return &BadgeController{BadgeService: badgeService}
}

// ListBadges godoc
// @Summary 徽章目录
// @Tags 徽章
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/v1/badges [get]
func (c *BadgeController) ListBadges(ctx *gin.Context) {
	badges, err := c.BadgeService.ListCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// MyBadges godoc
// @Summary 我的徽章
// @Tags 徽章
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.UserBadge}
// @Router /api/v1/badges/me [get]
func (c *BadgeController) MyBadges(ctx *gin.Context) {
	badges, err := c.BadgeService.MyBadges(currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Evaluate godoc
// @Summary 评估并授予徽章
// @Description 按当前进度检查可授予的徽章，重复评估幂等
// @Tags 徽章
// @Produce  json
// @Success 200 {object} util.Response{data=service.EvaluateResult}
// @Router /api/v1/badges/evaluate [post]
func (c *BadgeController) Evaluate(ctx *gin.Context) {
	result, err := c.BadgeService.Evaluate(currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
