package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innsikt/internal/analytics"
	"innsikt/internal/cache"
	"innsikt/internal/config"
	"innsikt/internal/logger"
	"innsikt/internal/query"
	"innsikt/internal/repository"
	"innsikt/internal/service"
	"innsikt/internal/transport/rest"
	"innsikt/internal/transport/ws"
)

// @title Innsikt Feedback Analytics API
// @version 1.0
// @description Survey feedback ingestion and dashboard reports
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Logger

	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.StatsTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.StatsTimezone).Msg("failed to load timezone")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)
	repository.EnsureIndexes(ctx, db)

	// Redis connection. Reports are still served if redis is down.
	rdb := redis.NewClient(&redis.Options{
		Addr:     strings.TrimPrefix(cfg.RedisAddr, "redis://"),
		Password: cfg.RedisPass,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, reports will not be cached")
	} else {
		log.Info().Msg("connected to Redis")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Stop()

	// Initialize repositories
	feedbackRepo := repository.NewFeedbackRepo(db)
	themeRepo := repository.NewThemeRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)

	// Initialize caches
	statsCache := cache.NewStatsCache(rdb, cfg.CacheTTL)

	// Initialize services
	engine := analytics.NewEngine(loc)
	authSvc := service.NewAuthService(cfg.DashboardUsername, cfg.DashboardPassword, cfg.JWTSecret, cfg.DashboardTeams, cfg.JWTTTL)
	statsSvc := service.NewStatsService(feedbackRepo, themeRepo, statsCache, engine, cfg.Partitions)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, statsCache)
	themeSvc := service.NewThemeService(themeRepo, statsCache)
	surveySvc := service.NewSurveyService(surveyRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	feedbackSvc.SetBroadcaster(wsHub)
	themeSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		StatsService:    statsSvc,
		FeedbackService: feedbackSvc,
		ThemeService:    themeSvc,
		SurveyService:   surveySvc,
		Normalizer:      query.NewNormalizer(loc),
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.HTTPPort).
			Str("timezone", cfg.StatsTimezone).
			Strs("teams", cfg.DashboardTeams).
			Int("partitions", cfg.Partitions).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
