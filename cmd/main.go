package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/city_safety_map/internal/alerting"
	"github.com/shenikar/city_safety_map/internal/broadcast"
	"github.com/shenikar/city_safety_map/internal/config"
	v1 "github.com/shenikar/city_safety_map/internal/handler/http/v1"
	"github.com/shenikar/city_safety_map/internal/random"
	"github.com/shenikar/city_safety_map/internal/repository"
	"github.com/shenikar/city_safety_map/internal/scheduler"
	"github.com/shenikar/city_safety_map/internal/scoring"
	"github.com/shenikar/city_safety_map/internal/service"
	"github.com/shenikar/city_safety_map/internal/webhook"
	"github.com/shenikar/city_safety_map/pkg/logger"
	redisclient "github.com/shenikar/city_safety_map/pkg/redis"
	"github.com/shenikar/city_safety_map/pkg/telemetry"

	_ "github.com/shenikar/city_safety_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title City Safety Map API
// @version 1.0
// @description Regional safety scoring, live alerts and route safety aggregation for Mumbai.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.ServiceName)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Метрики и трейсы
	tel := telemetry.Init(ctx, telemetry.Config{
		ServiceName:     cfg.ServiceName,
		MetricsEndpoint: cfg.OTLPMetricsEndpoint,
		TracesEndpoint:  cfg.OTLPTracesEndpoint,
	}, log)
	log.WithFields(logrus.Fields{
		"metrics": tel.MetricsEnabled(),
		"tracing": tel.TracingEnabled(),
	}).Info("Telemetry configured")

	// Вебхуки через очередь Redis
	var publisher webhook.WebhookPublisher = webhook.NoopPublisher{}
	var webhookWorker *webhook.WebhookWorker
	switch {
	case cfg.RedisEnabled && cfg.WebhookURL != "":
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		publisher = webhook.NewSeverityFilter(webhook.NewRedisWebhookPublisher(redisClient), cfg.WebhookMinSeverity)
		webhookWorker = webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	case cfg.RedisEnabled:
		log.Warn("REDIS_ENABLED is set but WEBHOOK_URL is empty, webhooks are disabled")
	}

	rnd := random.New(cfg.RandomSeed)
	broadcaster := broadcast.NewBroadcaster()

	// Инициализация репозиториев
	regionRepo := repository.NewRegionRepository()
	alertRepo := repository.NewAlertRepository()
	reportRepo := repository.NewReportRepository()
	routeRepo := repository.NewRouteRepository()

	// Инициализация сервисов
	regionService := service.NewRegionService(regionRepo, log, time.Now)
	alertService := service.NewAlertService(alertRepo, log, broadcaster, publisher, time.Now)
	reportService := service.NewReportService(reportRepo, alertService, log, time.Now)
	routeService := service.NewRouteService(regionRepo, routeRepo, rnd, log, time.Now)

	// Периодический пересчет оценок
	refresher := scheduler.NewRefresher(
		regionService,
		alertService,
		scoring.NewGenerator(rnd, time.Now),
		alerting.NewGenerator(rnd),
		rnd,
		log,
		tel.Meter(),
		scheduler.Options{Interval: cfg.RefreshInterval, Retention: cfg.AlertRetention},
	)
	if err := refresher.Start(ctx); err != nil {
		log.Fatalf("Failed to start refresh scheduler: %v", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(regionService, alertService, reportService, routeService, broadcaster, log)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api/v1")
	api.Use(v1.RateLimitMiddleware(cfg.RateLimitRPS))
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := refresher.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("Refresh scheduler did not stop in time")
	}

	// SSE-потоки завершаются после закрытия рассылки
	log.WithField("subscribers", broadcaster.SubscriberCount()).Info("Closing alert streams")
	broadcaster.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	cancel()
	if webhookWorker != nil {
		webhookWorker.Wait()
	}

	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Failed to flush telemetry")
	}

	log.Info("Server gracefully stopped")
}
