package controller

import (
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HomeController 首页聚合与每日推荐
type HomeController struct {
	RecommendationService *service.RecommendationService
}

func NewHomeController(recommendationService *service.RecommendationService) *HomeController {
	return &HomeController{RecommendationService: recommendationService}
}

// Home godoc
// @Summary 首页聚合
// @Description 今日推荐、进行中单元、最近徽章
// @Tags 首页
// @Produce  json
// @Success 200 {object} util.Response{data=service.HomeView}
// @Router /api/v1/home [get]
func (c *HomeController) Home(ctx *gin.Context) {
	view, err := c.RecommendationService.Home(currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// TodayRecommendations godoc
// @Summary 今日推荐题目
// @Description 随机抽样，count 限制在 1..10
// @Tags 首页
// @Produce  json
// @Param   count query int false "推荐数量，默认3"
// @Success 200 {object} util.Response{data=object}
// @Router /api/v1/recommendations/today [get]
func (c *HomeController) TodayRecommendations(ctx *gin.Context) {
	count := 3
	if raw := ctx.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}

	items, err := c.RecommendationService.DailyRecommendations(currentUserID(ctx), count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"source": "random", "items": items})
}
