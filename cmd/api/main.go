package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lifecycle-service/internal/api/http"
	"github.com/spec-kit/lifecycle-service/internal/api/http/handlers"
	"github.com/spec-kit/lifecycle-service/internal/auth"
	"github.com/spec-kit/lifecycle-service/internal/config"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/observability"
	"github.com/spec-kit/lifecycle-service/internal/persistence"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	"github.com/spec-kit/lifecycle-service/internal/service"
	"github.com/spec-kit/lifecycle-service/internal/worker"
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
	clientRepo := repository.NewClientRepository(pool)
	providerRepo := repository.NewProviderRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	stateChangeRepo := repository.NewStateChangeRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	registerTransitionMetrics(dispatcher, metrics)

	authService := service.NewAuthService(*cfg, userRepo)
	directoryService := service.NewDirectoryService(clientRepo, providerRepo)
	campaignService := service.NewCampaignService(service.CampaignDependencies{
		CampaignRepo:     campaignRepo,
		ClientRepo:       clientRepo,
		StateChangeRepo:  stateChangeRepo,
		NotificationRepo: notificationRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:        orderRepo,
		CampaignRepo:     campaignRepo,
		ProviderRepo:     providerRepo,
		StateChangeRepo:  stateChangeRepo,
		NotificationRepo: notificationRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	notificationService := service.NewNotificationService(dispatcher, redis, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Campaigns:      handlers.NewCampaignsHandler(campaignService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Notifications:  handlers.NewNotificationsHandler(notificationRepo, notificationService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
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

func registerTransitionMetrics(dispatcher events.Dispatcher, metrics *observability.Metrics) {
	handler := func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.StateChangedPayload); ok {
			metrics.RecordTransition(string(event.EntityType), payload.OldState, payload.NewState)
		}
		return nil
	}
	dispatcher.Subscribe(events.EventCampaignStateChanged, handler)
	dispatcher.Subscribe(events.EventOrderStateChanged, handler)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
