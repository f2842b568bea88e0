package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canvas_calendar_backend/internal/canvas"
	"canvas_calendar_backend/internal/config"
	"canvas_calendar_backend/internal/controller"
	"canvas_calendar_backend/internal/repository"
	"canvas_calendar_backend/internal/service"
	"canvas_calendar_backend/pkg/database"
	"canvas_calendar_backend/pkg/logger"
	"canvas_calendar_backend/pkg/monitoring"
	"canvas_calendar_backend/pkg/security"
	"canvas_calendar_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB

	client   *canvas.Client
	services *services
	tracer   *sdktrace.TracerProvider
}

type services struct {
	aggregator *service.GradeAggregator
	calendar   *service.CalendarService
	progress   *service.ProgressAggregator
	events     *service.EventService
	snapshots  *service.SnapshotService
}

type controllers struct {
	canvas   *controller.CanvasController
	progress *controller.ProgressController
	health   *controller.HealthController
}

func (a *App) initServices(client *canvas.Client, db *gorm.DB, cfg *config.Config) *services {
	s := &services{}

	if db != nil {
		s.snapshots = service.NewSnapshotService(repository.NewRecordRepository(db))
	}

	loc := time.Local
	if cfg.Server.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Server.Timezone)
		if err != nil {
			logger.Log.Warn("invalid timezone, falling back to local",
				zap.String("timezone", cfg.Server.Timezone), zap.Error(err))
		} else {
			loc = parsed
		}
	}

	var store service.SnapshotStore
	if s.snapshots != nil {
		store = s.snapshots
	}

	s.aggregator = service.NewGradeAggregator(client, cfg.Canvas.MaxConcurrent)
	s.calendar = service.NewCalendarService(s.aggregator, store, loc)
	s.progress = service.NewProgressAggregator(s.calendar)
	s.events = service.NewEventService(client)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		canvas:   controller.NewCanvasController(s.aggregator, s.calendar, s.events),
		progress: controller.NewProgressController(s.progress),
		health:   controller.NewHealthController(db, a.client),
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

	// 未配置数据库时跳过快照持久化，服务仍可正常刷新
	var db *gorm.DB
	if cfg.Database.Host != "" {
		var err error
		db, err = database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
	} else {
		logger.Log.Info("database not configured, snapshot persistence disabled")
	}

	client := canvas.NewClient(cfg.Canvas)

	app := &App{
		Config: cfg,
		DB:     db,
		client: client,
	}

	services := app.initServices(client, db, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("canvas-calendar", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers)

	// 首个刷新完成前用上一次的快照垫底
	services.calendar.Warm()

	return app
}

// ApplyConfig 配置热更新回调，目前只替换上游地址和凭证
func (a *App) ApplyConfig(cfg *config.Config) {
	a.client.UpdateCredentials(cfg.Canvas)
	logger.Log.Info("config reloaded, upstream credentials applied")
}

// RefreshNow 启动时或命令行触发的一次性刷新
func (a *App) RefreshNow() (string, error) {
	return a.services.calendar.Refresh(context.Background())
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

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
