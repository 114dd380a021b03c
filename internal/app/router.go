package app

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Syllabus browsing is open; a valid token still attaches the
		// caller so browsing counts as activity.
		browse := public.Group("", middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
		browse.GET("/subjects", c.content.ListSubjects)
		browse.GET("/subjects/:id", c.content.GetSubject)
		browse.GET("/subjects/:id/topics", c.content.ListTopics)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)
	rg.PUT("/profile", c.auth.UpdateProfile)
	rg.GET("/dashboard", c.dashboard.Get)

	rg.GET("/topics/:id/resources", c.content.ListResources)
	rg.GET("/topics/:id/quizzes", c.assessment.ListQuizzes)

	rg.POST("/quizzes/:id/start", c.assessment.StartQuiz)
	rg.GET("/attempts/:id", c.assessment.GetAttempt)
	rg.POST("/attempts/:id/submit", c.assessment.SubmitQuiz)

	rg.GET("/mock-tests", c.mockTest.List)
	rg.POST("/mock-tests/:id/start", c.mockTest.Start)
	rg.POST("/mock-attempts/:id/submit", c.mockTest.Submit)
	rg.GET("/leaderboard", c.mockTest.Leaderboard)

	adaptive := rg.Group("/adaptive")
	{
		adaptive.POST("/start", c.adaptive.Start)
		adaptive.POST("/:id/answer", c.adaptive.Answer)
		adaptive.GET("/:id/results", c.adaptive.Results)
	}

	progress := rg.Group("/progress")
	{
		progress.GET("/analytics", c.analytics.Overview)
		progress.GET("/trend", c.analytics.Trend)
		progress.GET("/subjects", c.analytics.BySubject)
		progress.GET("/weak-areas", c.analytics.WeakAreas)
		progress.GET("/readiness", c.analytics.Readiness)
	}

	reviews := rg.Group("/reviews")
	{
		reviews.GET("/due", c.review.Due)
		reviews.GET("/session", c.review.PlanSession)
		reviews.POST("/topics/:id", c.review.Record)
	}

	plan := rg.Group("/study-plan")
	{
		plan.GET("", c.studyPlan.GetActive)
		plan.POST("/generate", c.studyPlan.Generate)
		plan.POST("/sessions/:id/complete", c.studyPlan.CompleteSession)
	}

	ai := rg.Group("/ai")
	{
		ai.GET("/recommendations", c.recommendation.List)
		ai.POST("/recommendations/refresh", c.recommendation.Refresh)
		ai.POST("/recommendations/:id/ack", c.recommendation.Acknowledge)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(a.Config),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Admin),
	)
	{
		admin.POST("/subjects", c.content.CreateSubject)
		admin.PUT("/subjects/:id", c.content.UpdateSubject)
		admin.DELETE("/subjects/:id", c.content.DeleteSubject)

		admin.POST("/topics", c.content.CreateTopic)
		admin.PUT("/topics/:id", c.content.UpdateTopic)
		admin.DELETE("/topics/:id", c.content.DeleteTopic)
		admin.GET("/topics/:id/questions", c.content.ListQuestions)
		admin.POST("/topics/:id/calibrate", c.content.CalibrateQuestions)
		admin.POST("/topics/:id/resources", c.content.UploadLecture)

		admin.POST("/questions", c.content.CreateQuestion)
		admin.PUT("/questions/:id", c.content.UpdateQuestion)
		admin.DELETE("/questions/:id", c.content.DeleteQuestion)

		admin.DELETE("/resources/:id", c.content.DeleteResource)

		admin.POST("/quizzes", c.assessment.CreateQuiz)
		admin.POST("/mock-tests", c.mockTest.Create)
	}
}
