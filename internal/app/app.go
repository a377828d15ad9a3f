package app

import (
	"context"
	"log"
	"mentora_backend/internal/config"
	"mentora_backend/internal/controller"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/service"
	"mentora_backend/pkg/configwatcher"
	"mentora_backend/pkg/database"
	"mentora_backend/pkg/logger"
	"mentora_backend/pkg/monitoring"
	"mentora_backend/pkg/security"
	"mentora_backend/pkg/tracing"
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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	refreshToken *repository.RefreshTokenRepository
	assessment   *repository.AssessmentRepository
	plan         *repository.PlanRepository
	task         *repository.TaskRepository
	event        *repository.EventRepository
	note         *repository.NoteRepository
	session      *repository.StudySessionRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	assessment   *service.AssessmentService
	plan         *service.PlanService
	task         *service.TaskService
	event        *service.EventService
	note         *service.NoteService
	session      *service.StudySessionService
	notification *service.NotificationService
	dashboard    *service.DashboardService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	assessment   *controller.AssessmentController
	plan         *controller.PlanController
	task         *controller.TaskController
	event        *controller.EventController
	note         *controller.NoteController
	session      *controller.StudySessionController
	notification *controller.NotificationController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		refreshToken: repository.NewRefreshTokenRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		plan:         repository.NewPlanRepository(db),
		task:         repository.NewTaskRepository(db),
		event:        repository.NewEventRepository(db),
		note:         repository.NewNoteRepository(db),
		session:      repository.NewStudySessionRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	ai := service.NewAIService(cfg.AI)

	s.auth = service.NewAuthService(repos.user, repos.refreshToken, cfg)
	s.user = service.NewUserService(repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user)
	s.notification = service.NewNotificationService(repos.notification)
	s.plan = service.NewPlanService(repos.plan, repos.assessment, ai, s.notification)
	s.task = service.NewTaskService(repos.task)
	s.event = service.NewEventService(repos.event)
	s.note = service.NewNoteService(repos.note)
	s.session = service.NewStudySessionService(repos.session)
	s.dashboard = service.NewDashboardService(repos.task, repos.event, repos.session, repos.plan, rdb, cfg.Progress)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user, s.storage),
		assessment:   controller.NewAssessmentController(s.assessment),
		plan:         controller.NewPlanController(s.plan),
		task:         controller.NewTaskController(s.task),
		event:        controller.NewEventController(s.event),
		note:         controller.NewNoteController(s.note),
		session:      controller.NewStudySessionController(s.session),
		notification: controller.NewNotificationController(s.notification),
		dashboard:    controller.NewDashboardController(s.dashboard),
		health:       controller.NewHealthController(db),
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

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 过期刷新令牌每天清扫一次
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			s.auth.CleanupExpiredTokens()
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("mentora", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 配置热更新：文件变更后通知已注册的回调
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("configuration reloaded")
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
