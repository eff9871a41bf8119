package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/qent/car-rental-system/internal/api"
	"github.com/qent/car-rental-system/internal/core/service"
	"github.com/qent/car-rental-system/internal/core/session"
	mongodb "github.com/qent/car-rental-system/internal/infrastructure/db/mongo"
	redisdb "github.com/qent/car-rental-system/internal/infrastructure/db/redis"
	"github.com/qent/car-rental-system/internal/pkg/config"
	"github.com/qent/car-rental-system/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	carRepo := mongodb.NewCarRepository(db)
	rentalRepo := mongodb.NewRentalRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	brandRepo := mongodb.NewBrandRepository(db)

	indexed := []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, carRepo, rentalRepo, reviewRepo, brandRepo}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	ratingCache := redisdb.NewRatingCache(rdb)
	onboardingStore := redisdb.NewOnboardingStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL, log)
	reviewService := service.NewReviewService(reviewRepo, carRepo, ratingCache, log)
	carService := service.NewCarService(carRepo, reviewService, log)
	brandService := service.NewBrandService(brandRepo, log)
	rentalService := service.NewRentalService(rentalRepo, carRepo, log)
	userService := service.NewUserService(userRepo, log)

	if err := authService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	// --- Session resolution ---
	notifier := session.NewNotifier()
	manager := session.NewManager(userRepo, log)
	go manager.Run(ctx, notifier.Events())

	e := api.NewRouter(api.Dependencies{
		Auth:       authService,
		Cars:       carService,
		Rentals:    rentalService,
		Reviews:    reviewService,
		Brands:     brandService,
		Users:      userService,
		Sessions:   manager,
		Notifier:   notifier,
		Onboarding: onboardingStore,
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
