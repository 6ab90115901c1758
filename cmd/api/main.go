package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/voidrp/community-backend/internal/api/http"
	"github.com/voidrp/community-backend/internal/api/http/handlers"
	"github.com/voidrp/community-backend/internal/auth"
	"github.com/voidrp/community-backend/internal/config"
	"github.com/voidrp/community-backend/internal/events"
	"github.com/voidrp/community-backend/internal/mail"
	"github.com/voidrp/community-backend/internal/observability"
	"github.com/voidrp/community-backend/internal/persistence"
	"github.com/voidrp/community-backend/internal/relay"
	"github.com/voidrp/community-backend/internal/repository"
	"github.com/voidrp/community-backend/internal/service"
	"github.com/voidrp/community-backend/internal/worker"
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
	playerRepo := repository.NewPlayerRepository(pool)
	rankRepo := repository.NewRankRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	categoryRepo := repository.NewTicketCategoryRepository(pool, redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	identityService := service.NewIdentityService(playerRepo, rankRepo, cfg.Auth.AdminPermLevel)
	authService := service.NewAuthService(identityService, playerRepo, tokens)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		MessageRepo:  messageRepo,
		CategoryRepo: categoryRepo,
		Identity:     identityService,
		Dispatcher:   dispatcher,
	})

	// The relay towards the chat bot is optional; ticket and auth endpoints
	// stay up when the broker is unreachable.
	var publisher relay.Publisher
	if amqpPublisher, err := relay.NewAMQPPublisher(cfg.Relay, logger); err != nil {
		logger.Warn("chat relay unavailable", zap.Error(err))
	} else {
		publisher = amqpPublisher
		defer amqpPublisher.Close()
	}
	verificationService := service.NewVerificationService(playerRepo, publisher, dispatcher, logger)

	mailer := mail.NewSMTPMailer(cfg.Mail)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Discord:        handlers.NewDiscordHandler(verificationService),
		Home:           handlers.NewHomeHandler(playerRepo, mailer, cfg.Mail, logger),
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
