package app

import (
	"mentora_backend/docs"
	"mentora_backend/internal/config"
	"mentora_backend/internal/middleware"
	"mentora_backend/internal/model"
	"mentora_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/refresh", c.auth.Refresh)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	// 评估
	rg.GET("/assessment/questions", c.assessment.ListQuestions)
	rg.POST("/assessment/attempts", c.assessment.SubmitAttempt)
	rg.GET("/assessment/attempts/latest", c.assessment.GetLatestAttempt)
	rg.GET("/assessment/attempts/:id", c.assessment.GetAttempt)

	// 规划
	rg.POST("/plans/study/generate", c.plan.GenerateStudyPlan)
	rg.POST("/plans/career/generate", c.plan.GenerateCareerPlan)
	rg.GET("/plans", c.plan.ListPlans)
	rg.GET("/plans/:id", c.plan.GetPlan)
	rg.PATCH("/plans/:id/checkpoints/:checkpointId", c.plan.UpdateCheckpoint)
	rg.PATCH("/plans/:id/skills/:skillId", c.plan.UpdateSkill)
	rg.POST("/plans/:id/resources/:resourceId/open", c.plan.OpenResource)
	rg.POST("/plans/:id/steps/:stepId/skip", c.plan.SkipStep)
	rg.POST("/plans/:id/archive", c.plan.ArchivePlan)

	// 任务
	rg.POST("/tasks", c.task.CreateTask)
	rg.GET("/tasks", c.task.ListTasks)
	rg.GET("/tasks/today", c.task.GetTodayTasks)
	rg.PUT("/tasks/:id", c.task.UpdateTask)
	rg.POST("/tasks/:id/start", c.task.StartTask)
	rg.POST("/tasks/:id/complete", c.task.CompleteTask)
	rg.POST("/tasks/:id/fail", c.task.FailTask)
	rg.DELETE("/tasks/:id", c.task.DeleteTask)

	// 日程
	rg.POST("/events", c.event.CreateEvent)
	rg.GET("/events", c.event.ListEvents)
	rg.PUT("/events/:id", c.event.UpdateEvent)
	rg.POST("/events/:id/attendance", c.event.MarkAttendance)
	rg.DELETE("/events/:id", c.event.DeleteEvent)

	// 便签
	rg.POST("/notes", c.note.CreateNote)
	rg.GET("/notes", c.note.ListNotes)
	rg.GET("/notes/:id", c.note.GetNote)
	rg.PUT("/notes/:id", c.note.UpdateNote)
	rg.DELETE("/notes/:id", c.note.DeleteNote)

	// 学习时段
	rg.POST("/sessions/start", c.session.StartSession)
	rg.POST("/sessions/stop", c.session.StopSession)
	rg.GET("/sessions", c.session.ListSessions)

	// 通知
	rg.GET("/notifications", c.notification.ListNotifications)
	rg.POST("/notifications/:id/read", c.notification.MarkRead)
	rg.POST("/notifications/read-all", c.notification.MarkAllRead)

	// 仪表盘
	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.GET("/dashboard/attendance", c.dashboard.GetAttendanceSummary)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/assessment/questions", c.assessment.CreateQuestion)
		admin.PUT("/assessment/questions/:id", c.assessment.UpdateQuestion)
		admin.DELETE("/assessment/questions/:id", c.assessment.DeleteQuestion)
	}
}
