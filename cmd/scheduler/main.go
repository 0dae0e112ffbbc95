package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/docuiulia/partner-scoring/internal/config"
	"github.com/docuiulia/partner-scoring/internal/logger"
	"github.com/docuiulia/partner-scoring/internal/repository"
	"github.com/docuiulia/partner-scoring/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Logging)
	log.Info().Msg("starting score refresh scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	scoringService := service.NewScoringService(
		repository.NewPartnerRepository(db),
		repository.NewInvoiceRepository(db),
		redisClient,
		cfg,
	)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("invalid scheduler timezone")
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Nightly job keeping the cached partner scores warm so dashboards load
	// stale-free in the morning
	_, err = c.AddFunc(cfg.Scheduler.RefreshSpec, func() {
		refreshScores(scoringService)
	})
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Scheduler.RefreshSpec).Msg("failed to schedule score refresh")
	}

	c.Start()
	log.Info().Str("spec", cfg.Scheduler.RefreshSpec).Msg("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	c.Stop()
	log.Info().Msg("scheduler stopped")
}

func refreshScores(scoringService *service.ScoringService) {
	log.Info().Msg("running score refresh")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	refreshed, skipped, err := scoringService.RefreshScores(ctx)
	if err != nil {
		log.Error().Err(err).Msg("score refresh failed")
		return
	}

	log.Info().Int("refreshed", refreshed).Int("skipped", skipped).Msg("score refresh finished")
}
