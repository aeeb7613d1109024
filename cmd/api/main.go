package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campusflow/disruption-service/internal/api/http"
	"github.com/campusflow/disruption-service/internal/api/http/handlers"
	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/config"
	"github.com/campusflow/disruption-service/internal/events"
	"github.com/campusflow/disruption-service/internal/observability"
	"github.com/campusflow/disruption-service/internal/persistence"
	"github.com/campusflow/disruption-service/internal/repository"
	"github.com/campusflow/disruption-service/internal/service"
	"github.com/campusflow/disruption-service/internal/tone"
	"github.com/campusflow/disruption-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	disruptionRepo := repository.NewDisruptionRepository(pool)
	resolutionRepo := repository.NewResolutionRepository(pool)
	imageRepo := repository.NewDisruptionImageRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	adminCodeRepo := repository.NewAdminCodeRepository(pool)

	directory := service.NewDirectoryService(userRepo)

	var annotator tone.Annotator
	if cfg.Tone.Provider == "openai" && cfg.Tone.OpenAIAPIKey != "" {
		annotator = tone.NewOpenAIAnnotator(cfg.Tone.OpenAIAPIKey)
	} else {
		annotator = tone.NewLexiconAnnotator()
	}
	if client := redis.ClientHandle(); client != nil {
		annotator = tone.NewCachedAnnotator(annotator, client, cfg.Tone.CacheTTL())
	}
	toneService := service.NewToneService(annotator, cfg.Tone.Timeout(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	disruptionService := service.NewDisruptionService(service.DisruptionDependencies{
		DisruptionRepo: disruptionRepo,
		ResolutionRepo: resolutionRepo,
		ImageRepo:      imageRepo,
		DepartmentRepo: departmentRepo,
		AuditRepo:      auditRepo,
		Directory:      directory,
		Tone:           toneService,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:       userRepo,
		AdminCodeRepo:  adminCodeRepo,
		DepartmentRepo: departmentRepo,
		AuditRepo:      auditRepo,
		Logger:         logger,
	})
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	verifier := auth.NewJWTVerifier(cfg.Identity.JWTSecret, cfg.Identity.Issuer)
	authMiddleware := auth.NewMiddleware(verifier, directory)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Disruptions:    handlers.NewDisruptionsHandler(disruptionService),
		Tone:           handlers.NewToneHandler(toneService),
		Admin:          handlers.NewAdminHandler(adminService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Uploads:        handlers.NewUploadsHandler(""),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
