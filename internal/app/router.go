package app

import (
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/middleware"
	"math_edu_backend/internal/model"
	"math_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api/v1")

	// 公共路由（无需登录）
	public := api.Group("")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/oauth", c.auth.OAuth)
		public.POST("/auth/logout", c.auth.Logout)

		// 目录读取允许游客访问
		public.GET("/subjects", c.catalog.ListSubjects)
		public.GET("/units", c.catalog.ListUnits)
		public.GET("/units/:unit_id", c.catalog.GetUnit)
		public.GET("/units/:unit_id/questions", c.catalog.ListQuestions)
		public.GET("/units/:unit_id/review-set", c.catalog.GetReviewSet)
		public.GET("/questions/:question_id/hints/:level", c.catalog.GetHint)
	}

	// 单题作答游客可用，登录用户额外累计当日答题数
	api.POST("/questions/:question_id/answer", middleware.OptionalAuthMiddleware(cfg), c.catalog.AnswerQuestion)

	// 需要登录的学习流程
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/home", c.home.Home)
		authGroup.GET("/recommendations/today", c.home.TodayRecommendations)

		authGroup.POST("/units/:unit_id/start", c.progress.StartUnit)
		authGroup.GET("/units/:unit_id/progress", c.progress.GetProgress)
		authGroup.GET("/units/:unit_id/steps/:step_type", c.progress.AccessStep)
		authGroup.POST("/units/:unit_id/tests/submit", c.progress.SubmitTest)
		authGroup.POST("/units/:unit_id/review-set/submit", c.progress.SubmitReview)
		authGroup.GET("/progress/summary", c.progress.Summary)

		authGroup.GET("/badges", c.badge.ListBadges)
		authGroup.GET("/badges/me", c.badge.MyBadges)
		authGroup.POST("/badges/evaluate", c.badge.Evaluate)
	}

	// 管理端接口，要求管理员角色
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/units", c.admin.CreateUnit)
		admin.PUT("/units/:unit_id", c.admin.UpdateUnit)
		admin.DELETE("/units/:unit_id", c.admin.DeleteUnit)
		admin.POST("/units/:unit_id/steps", c.admin.CreateStep)
		admin.PUT("/steps/:step_id", c.admin.UpdateStep)

		admin.POST("/questions", c.admin.CreateQuestion)
		admin.PUT("/questions/:question_id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:question_id", c.admin.DeleteQuestion)
		admin.POST("/questions/import", c.admin.ImportQuestions)
		admin.POST("/questions/:question_id/hints", c.admin.CreateHint)
		admin.PUT("/hints/:hint_id", c.admin.UpdateHint)

		admin.POST("/review-sets", c.admin.CreateReviewSet)
		admin.PUT("/review-sets/:set_id", c.admin.UpdateReviewSet)

		admin.POST("/badges", c.admin.CreateBadge)
		admin.PUT("/badges/:badge_id", c.admin.UpdateBadge)

		admin.POST("/content/images", c.admin.UploadContentImage)
	}
}
