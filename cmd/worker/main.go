package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recipebox/internal/app"
	"github.com/briangreenhill/recipebox/internal/config"
	"github.com/briangreenhill/recipebox/internal/jobs"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := app.Logger(cfg, os.Stdout).With().Str("process", "worker").Logger()

	if !cfg.HasRedis() {
		logger.Fatal().Msg("worker needs REDIS_ADDR or REDIS_URL")
	}
	opt, err := app.RedisConnOpt(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup failed")
	}
	defer a.Close() //nolint:errcheck

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency:    2,
		StrictPriority: false,
		Queues: map[string]int{
			jobs.QueueWarm: 5,
			"default":      1,
		},
		Logger:   asynqLogger{logger},
		LogLevel: asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	mux.Handle(jobs.TaskWarmCategories, jobs.NewWarmHandler(a.Browse, logger))

	logger.Info().Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}
