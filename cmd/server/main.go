package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/adapter/cache"
	"github.com/scoot-me/scootme/internal/adapter/external/routing"
	"github.com/scoot-me/scootme/internal/adapter/http/fiber/handlers"
	"github.com/scoot-me/scootme/internal/adapter/http/fiber/middleware"
	"github.com/scoot-me/scootme/internal/adapter/queue"
	"github.com/scoot-me/scootme/internal/adapter/storage/postgres"
	"github.com/scoot-me/scootme/internal/adapter/vault"
	wsAdapter "github.com/scoot-me/scootme/internal/adapter/websocket"
	"github.com/scoot-me/scootme/internal/observability/telemetry"
	"github.com/scoot-me/scootme/internal/service/auth"
	"github.com/scoot-me/scootme/internal/service/email"
	"github.com/scoot-me/scootme/internal/service/health"
	"github.com/scoot-me/scootme/internal/service/payment"
	"github.com/scoot-me/scootme/internal/service/review"
	"github.com/scoot-me/scootme/internal/service/scooter"
	"github.com/scoot-me/scootme/internal/service/trip"
	"github.com/scoot-me/scootme/internal/service/user"
	"github.com/scoot-me/scootme/pkg/config"
)

const serviceName = "scootme-api"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting ScootMe API",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// Vault overrides the file/env secrets when enabled.
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dbURL, err := sm.GetDatabaseURL(); err == nil {
			cfg.Database.URL = dbURL
		} else {
			logger.Warn("Vault database secret unavailable", zap.Error(err))
		}
		if secret, err := sm.GetJWTSecret(); err == nil {
			cfg.JWT.Secret = secret
		} else {
			logger.Warn("Vault JWT secret unavailable", zap.Error(err))
		}
		if key, err := sm.GetFawrySecurityKey(); err == nil {
			cfg.Payment.Fawry.SecurityKey = key
		} else {
			logger.Warn("Vault Fawry secret unavailable", zap.Error(err))
		}
	}

	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	messageQueue, err := queue.New(cfg.Queue.Provider, cfg.Queue.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	userRepo := postgres.NewUserRepository(db, logger)
	scooterRepo := postgres.NewScooterRepository(db, logger)
	tripRepo := postgres.NewTripRepository(db, logger)
	paymentRepo := postgres.NewPaymentRepository(db, logger)
	reviewRepo := postgres.NewReviewRepository(db, logger)

	emailService, err := email.NewService(cfg.Notification.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	routeClient := routing.NewOSRMClient(cfg.Routing.OSRMBaseURL, cfg.Routing.Timeout, logger)

	var gateway payment.Provider
	switch cfg.Payment.Provider {
	case "stripe":
		gateway = payment.NewStripeProvider(cfg.Payment.Stripe, logger)
	default:
		gateway = payment.NewFawryProvider(cfg.Payment.Fawry, logger)
	}

	wsHub := wsAdapter.NewHub(logger)
	go wsHub.Run()

	fare := trip.NewFareCalculator(cfg.Pricing.BaseFare, cfg.Pricing.RatePerMinute, cfg.Pricing.Currency)

	authService := auth.NewService(userRepo, appCache, emailService, cfg.JWT.Secret, cfg.JWT.TokenDuration, logger)
	scooterService := scooter.NewService(scooterRepo, appCache, logger)
	tripService := trip.NewService(tripRepo, userRepo, scooterService, routeClient, messageQueue, wsHub, emailService, fare, logger)
	paymentService := payment.NewService(paymentRepo, tripRepo, userRepo, gateway, messageQueue, emailService, logger)
	userService := user.NewService(userRepo, logger)
	reviewService := review.NewService(reviewRepo, tripRepo, logger)

	healthService := health.NewService(&health.Config{
		Version:  cfg.App.Version,
		DB:       sqlDB,
		Cache:    appCache,
		QueueURL: cfg.Queue.URL,
	}, logger)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	app.Use(middleware.CircuitBreaker(logger))

	health.NewFiberHandler(healthService).RegisterRoutes(app)

	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	api := app.Group("/api")

	authHandler := handlers.NewAuthHandler(authService, logger)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/forgot-password", authHandler.ForgotPassword)

	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	api.Post("/payment/callback", paymentHandler.Callback)

	protected := api.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/profile", authHandler.Profile)

	scooterHandler := handlers.NewScooterHandler(scooterService, tripService, logger)
	protected.Get("/scooter", scooterHandler.List)
	protected.Get("/scooter/:id/verify", scooterHandler.Verify)
	protected.Patch("/scooter/:id/book", scooterHandler.Book)

	tripHandler := handlers.NewTripHandler(tripService, logger)
	protected.Post("/trips/:tripId/destination", tripHandler.ConfirmDestination)
	protected.Post("/trips/:tripId/start", tripHandler.Start)
	protected.Post("/trips/:tripId/location", tripHandler.UpdateLocation)
	protected.Post("/trips/:tripId/end", tripHandler.End)
	protected.Get("/trips/:tripId", tripHandler.Get)

	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	protected.Post("/trips/:tripId/review", reviewHandler.Create)
	protected.Get("/trips/:tripId/reviews", reviewHandler.ListByTrip)

	historyHandler := handlers.NewHistoryHandler(tripService, logger)
	protected.Get("/history", historyHandler.List)
	protected.Get("/history/:tripId/details", historyHandler.Details)
	protected.Get("/rides/:id", historyHandler.RideDetails)

	userHandler := handlers.NewUserHandler(userService, logger)
	protected.Put("/user/settings", userHandler.UpdateSettings)

	protected.Post("/payment", paymentHandler.Create)
	protected.Get("/payment/:merchantRefNum/verify", paymentHandler.Verify)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/trips/:tripId", websocket.New(func(c *websocket.Conn) {
		wsHub.AddClient(c, c.Params("tripId"), c.Query("userId"))
	}))

	go startBackgroundWorkers(messageQueue, logger)

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers subscribes the in-process consumers of domain
// events. Real downstream consumers (analytics, fleet ops) live outside this
// binary and subscribe to the same subjects.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	subjects := []string{
		queue.SubjectTripBooked,
		queue.SubjectTripStarted,
		queue.SubjectTripEnded,
		queue.SubjectPaymentCompleted,
		queue.SubjectPaymentFailed,
	}
	for _, subject := range subjects {
		subject := subject
		if err := mq.Subscribe(subject, func(msg []byte) error {
			logger.Debug("Domain event",
				zap.String("subject", subject),
				zap.ByteString("payload", msg),
			)
			return nil
		}); err != nil {
			logger.Warn("Failed to subscribe", zap.String("subject", subject), zap.Error(err))
		}
	}
}
