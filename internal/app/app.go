package app

import (
	"context"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/controller"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/pkg/configwatcher"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/security"
	"exam_prep_backend/pkg/tracing"
	"log"
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
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user           *repository.UserRepository
	subject        *repository.SubjectRepository
	question       *repository.QuestionRepository
	quiz           *repository.QuizRepository
	mockTest       *repository.MockTestRepository
	progress       *repository.ProgressRepository
	review         *repository.ReviewRepository
	studyPlan      *repository.StudyPlanRepository
	recommendation *repository.RecommendationRepository
	resource       *repository.ResourceRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	content        *service.ContentService
	review         *service.ReviewService
	assessment     *service.AssessmentService
	leaderboard    *service.LeaderboardService
	mockTest       *service.MockTestService
	adaptive       *service.AdaptiveService
	analytics      *service.AnalyticsService
	studyPlan      *service.StudyPlanService
	ai             *service.AIService
	recommendation *service.RecommendationService
	dashboard      *service.DashboardService
}

type controllers struct {
	auth           *controller.AuthController
	content        *controller.ContentController
	assessment     *controller.AssessmentController
	mockTest       *controller.MockTestController
	adaptive       *controller.AdaptiveController
	analytics      *controller.AnalyticsController
	review         *controller.ReviewController
	studyPlan      *controller.StudyPlanController
	recommendation *controller.RecommendationController
	dashboard      *controller.DashboardController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		subject:        repository.NewSubjectRepository(db),
		question:       repository.NewQuestionRepository(db),
		quiz:           repository.NewQuizRepository(db),
		mockTest:       repository.NewMockTestRepository(db),
		progress:       repository.NewProgressRepository(db),
		review:         repository.NewReviewRepository(db),
		studyPlan:      repository.NewStudyPlanRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		resource:       repository.NewResourceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.subject, repos.question, repos.resource, s.storage)
	s.review = service.NewReviewService(repos.review, repos.subject)
	s.assessment = service.NewAssessmentService(repos.quiz, repos.question, repos.progress, s.review)
	s.leaderboard = service.NewLeaderboardService(rdb, repos.user)
	s.mockTest = service.NewMockTestService(repos.mockTest, repos.question, s.assessment, s.leaderboard)
	s.adaptive = service.NewAdaptiveService(rdb, repos.question)
	s.analytics = service.NewAnalyticsService(repos.progress, repos.subject, repos.quiz, repos.mockTest, repos.user)
	s.studyPlan = service.NewStudyPlanService(repos.studyPlan, repos.user, s.review, s.analytics, cfg.Plan)
	s.ai = service.NewAIService(cfg.AI)
	s.recommendation = service.NewRecommendationService(repos.recommendation, s.analytics, s.review, s.ai)
	s.dashboard = service.NewDashboardService(s.studyPlan, s.review, s.analytics)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		content:        controller.NewContentController(s.content),
		assessment:     controller.NewAssessmentController(s.assessment),
		mockTest:       controller.NewMockTestController(s.mockTest, s.leaderboard),
		adaptive:       controller.NewAdaptiveController(s.adaptive),
		analytics:      controller.NewAnalyticsController(s.analytics),
		review:         controller.NewReviewController(s.review),
		studyPlan:      controller.NewStudyPlanController(s.studyPlan),
		recommendation: controller.NewRecommendationController(s.recommendation),
		dashboard:      controller.NewDashboardController(s.dashboard),
		health:         controller.NewHealthController(db, rdb),
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
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-prep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Hot-reload the AI settings so the key can be rotated without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(reloaded interface{}) {
		updated, ok := reloaded.(*config.Config)
		if !ok {
			return
		}
		app.Config.AI = updated.AI
		services.ai.UpdateConfig(updated.AI)
		logger.Log.Info("configuration reloaded")
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
