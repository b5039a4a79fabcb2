package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/config"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/db"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/handler"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/router"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "campus-bus-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	sms := service.NewSMSSender(cfg.SMSWebhookURL)

	// Repositories
	requestRepo := repository.NewRequestRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	ticketRepo := repository.NewTicketRepo(pool)
	notificationRepo := repository.NewNotificationRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)

	// Services
	notifySvc := service.NewNotifyService(notificationRepo, profileRepo, sms)
	aggSvc := service.NewAggregateService(voteRepo)
	solicitSvc := service.NewSolicitService(ticketRepo, requestRepo, profileRepo, voteRepo, notifySvc, cache,
		time.Duration(cfg.SolicitWindowMinutes)*time.Minute)
	lifecycleSvc := service.NewLifecycleService(requestRepo, voteRepo, aggSvc, solicitSvc, notifySvc, cache,
		cfg.VoteThreshold, time.Duration(cfg.VoteWindowMinutes)*time.Minute)
	decisionSvc := service.NewDecisionService(requestRepo, voteRepo, lifecycleSvc, notifySvc, cache)

	// Background workers
	evaluateWorker := service.NewEvaluateWorker(pool, lifecycleSvc)
	go evaluateWorker.Start(ctx)

	ticketWorker := service.NewTicketWorker(ticketRepo, solicitSvc, time.Minute)
	go ticketWorker.Start(ctx)

	// HTTP layer
	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "Campus Bus Assistant API",
		ServerHeader: "CampusBus",
	})

	router.Setup(app, &router.Handlers{
		Request:      handler.NewRequestHandler(lifecycleSvc),
		Vote:         handler.NewVoteHandler(lifecycleSvc),
		Driver:       handler.NewDriverHandler(solicitSvc),
		Coordinator:  handler.NewCoordinatorHandler(decisionSvc),
		Notification: handler.NewNotificationHandler(notificationRepo),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("campus bus backend starting on :%s (env=%s threshold=%.0f window=%dm)",
		cfg.Port, cfg.Environment, cfg.VoteThreshold, cfg.SolicitWindowMinutes)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
