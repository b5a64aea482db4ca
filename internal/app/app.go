package app

import (
	"context"
	"log"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/controller"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/service"
	"math_edu_backend/pkg/configwatcher"
	"math_edu_backend/pkg/database"
	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"
	"math_edu_backend/pkg/security"
	"math_edu_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	unit           *repository.UnitRepository
	question       *repository.QuestionRepository
	reviewSet      *repository.ReviewSetRepository
	progress       *repository.ProgressRepository
	learningLog    *repository.LearningLogRepository
	recommendation *repository.RecommendationRepository
	badge          *repository.BadgeRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	catalog        *service.CatalogService
	progress       *service.ProgressService
	recommendation *service.RecommendationService
	badge          *service.BadgeService
	admin          *service.AdminService
}

type controllers struct {
	auth     *controller.AuthController
	catalog  *controller.CatalogController
	progress *controller.ProgressController
	home     *controller.HomeController
	badge    *controller.BadgeController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		unit:           repository.NewUnitRepository(db),
		question:       repository.NewQuestionRepository(db),
		reviewSet:      repository.NewReviewSetRepository(db),
		progress:       repository.NewProgressRepository(db),
		learningLog:    repository.NewLearningLogRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		badge:          repository.NewBadgeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.unit, repos.question, repos.reviewSet, repos.learningLog, rdb)
	s.progress = service.NewProgressService(repos.unit, repos.question, repos.reviewSet, repos.progress, repos.learningLog)
	s.recommendation = service.NewRecommendationService(repos.question, repos.unit, repos.recommendation, repos.progress, repos.badge, repos.learningLog)
	s.badge = service.NewBadgeService(repos.badge, repos.progress)
	s.admin = service.NewAdminService(repos.unit, repos.question, repos.reviewSet, repos.badge, s.catalog, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		catalog:  controller.NewCatalogController(s.catalog),
		progress: controller.NewProgressController(s.progress),
		home:     controller.NewHomeController(s.recommendation),
		badge:    controller.NewBadgeController(s.badge),
		admin:    controller.NewAdminController(s.admin),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 目录缓存是可选能力，Redis 不可用时降级为直查数据库
		logger.Log.Warn("Redis unavailable, unit cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("math-curriculum", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：监听配置文件变化并通知注册的回调
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		app.Config = newCfg
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
		logger.Log.Info("Config reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
