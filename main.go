package main

import (
	"log"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/config"
	"github.com/gourmetgo/gourmetgo-backend/internal/consumer"
	"github.com/gourmetgo/gourmetgo-backend/internal/handler"
	"github.com/gourmetgo/gourmetgo-backend/internal/middleware"
	"github.com/gourmetgo/gourmetgo-backend/internal/notifier"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/gourmetgo/gourmetgo-backend/pkg/database"
	"github.com/gourmetgo/gourmetgo-backend/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: publisher for outbound notifications, consumer for delivery
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewNotificationConsumer(notifier.LogMailer{}).Start(msgs)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	// Repositories
	expRepo := repository.NewExperienceRepository(db)
	resRepo := repository.NewReservationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	ledger := repository.NewCapacityLedger()

	// Services
	queueNotifier := notifier.NewQueueNotifier(publisher)
	reservationSvc := service.NewReservationService(resRepo, expRepo, ledger, queueNotifier)
	experienceSvc := service.NewExperienceService(expRepo, ledger)
	ratingSvc := service.NewRatingService(ratingRepo, resRepo, expRepo)
	deletionSvc := service.NewDeletionService(expRepo, challengeRepo, reservationSvc, queueNotifier)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "gourmetgo-backend"})
	})

	api := e.Group("/api/v1")
	public := api.Group("", middleware.CacheGET(rdb, 30*time.Second))
	user := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	chef := api.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("chef"))

	handler.NewExperienceHandler(experienceSvc, reservationSvc).RegisterRoutes(public, chef)
	handler.NewReservationHandler(reservationSvc).RegisterRoutes(user)
	handler.NewRatingHandler(ratingSvc).RegisterRoutes(public, user)
	handler.NewDeletionHandler(deletionSvc).RegisterRoutes(chef)

	log.Printf("GourmetGo backend starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
