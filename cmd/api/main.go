package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resolution-service/internal/api/http"
	"github.com/spec-kit/resolution-service/internal/api/http/handlers"
	"github.com/spec-kit/resolution-service/internal/auth"
	"github.com/spec-kit/resolution-service/internal/config"
	"github.com/spec-kit/resolution-service/internal/events"
	"github.com/spec-kit/resolution-service/internal/llm"
	"github.com/spec-kit/resolution-service/internal/observability"
	"github.com/spec-kit/resolution-service/internal/orchestrator"
	"github.com/spec-kit/resolution-service/internal/persistence"
	"github.com/spec-kit/resolution-service/internal/repository"
	"github.com/spec-kit/resolution-service/internal/service"
	"github.com/spec-kit/resolution-service/internal/worker"
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

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logger.Fatal("failed to init llm client", zap.Error(err))
	}
	logger.Info("llm client ready", zap.String("provider", llmClient.Name()))

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	directoryRepo := repository.NewDirectoryRepository(pool)

	style := orchestrator.ParseResponseStyle(cfg.Orchestrator.ResponseStyle)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	resolutionService := service.NewResolutionService(service.ResolutionDependencies{
		TicketRepo:     ticketRepo,
		MessageRepo:    messageRepo,
		AgentRepo:      agentRepo,
		AssignmentRepo: assignmentRepo,
		DirectoryRepo:  directoryRepo,
		Triage:         orchestrator.NewTriageClassifier(llmClient, logger),
		Intents:        orchestrator.NewIntentDetector(llmClient, logger),
		Solutions:      orchestrator.NewSolutionGenerator(llmClient, style, logger),
		Collab:         orchestrator.NewCollaborator(llmClient, logger),
		Grounding:      orchestrator.NewContextBuilder(directoryRepo, ticketRepo, cfg.Orchestrator.ContextMaxTickets, logger),
		Style:          style,
		HistoryWindow:  cfg.Orchestrator.HistoryWindow,
		TurnLock:       persistence.NewTurnLock(redis, cfg.Orchestrator.TurnLockTTL()),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		MessageRepo:   messageRepo,
		DirectoryRepo: directoryRepo,
	})

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AgentRepo: agentRepo,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), agentRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Resolve:        handlers.NewResolveHandler(resolutionService, metrics),
		Tickets:        handlers.NewTicketHandler(ticketService),
		Auth:           handlers.NewAuthHandler(authService),
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
