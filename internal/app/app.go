package app

import (
	"context"
	"log"
	"net/http"
	"okr_backend/internal/config"
	"okr_backend/internal/controller"
	"okr_backend/internal/repository"
	"okr_backend/internal/service"
	"okr_backend/pkg/configwatcher"
	"okr_backend/pkg/database"
	"okr_backend/pkg/logger"
	"okr_backend/pkg/monitoring"
	"okr_backend/pkg/security"
	"okr_backend/pkg/tracing"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	cycle     *repository.CycleRepository
	objective *repository.ObjectiveRepository
	keyResult *repository.KeyResultRepository
	checkIn   *repository.CheckInRepository
}

type services struct {
	progress  *service.ProgressService
	cycle     *service.CycleService
	objective *service.ObjectiveService
	keyResult *service.KeyResultService
	checkIn   *service.CheckInService
}

type controllers struct {
	cycle     *controller.CycleController
	objective *controller.ObjectiveController
	keyResult *controller.KeyResultController
	checkIn   *controller.CheckInController
	progress  *controller.ProgressController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		cycle:     repository.NewCycleRepository(db),
		objective: repository.NewObjectiveRepository(db),
		keyResult: repository.NewKeyResultRepository(db),
		checkIn:   repository.NewCheckInRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	var cache service.ResultCache
	if rdb != nil {
		cache = service.NewRedisResultCache(rdb)
	} else {
		cache = service.NewLocalResultCache(cfg.Progress.LocalCacheSize)
	}

	s.progress = service.NewProgressService(cfg.Progress.Policy(), time.Now)
	s.cycle = service.NewCycleService(repos.cycle)
	s.objective = service.NewObjectiveService(
		repos.objective,
		repos.keyResult,
		repos.cycle,
		s.progress,
		cache,
		cfg.Progress.CacheTTL(),
	)
	s.keyResult = service.NewKeyResultService(repos.keyResult, s.objective, s.progress)
	s.checkIn = service.NewCheckInService(repos.checkIn, s.keyResult)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		cycle:     controller.NewCycleController(s.cycle),
		objective: controller.NewObjectiveController(s.objective),
		keyResult: controller.NewKeyResultController(s.keyResult),
		checkIn:   controller.NewCheckInController(s.checkIn),
		progress:  controller.NewProgressController(s.progress),
		health:    controller.NewHealthController(db, rdb, s.progress),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig 热更新只处理可以安全替换的部分（节奏阈值）
func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// Redis 不可用时退化为进程内缓存
			logger.Log.Warn("Redis unavailable, falling back to local summary cache", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
		Redis:     rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		if err := services.progress.SetPolicy(newCfg.Progress.Policy()); err != nil {
			logger.Log.Error("Rejected progress policy from config", zap.Error(err))
		}
	})

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		file := filepath.Join(a.ConfigDir, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, file, a.applyConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
