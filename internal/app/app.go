// Package app builds the pieces shared by the API server, the worker and the CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recipebox/cache"
	"github.com/briangreenhill/recipebox/internal/browse"
	"github.com/briangreenhill/recipebox/internal/config"
	"github.com/briangreenhill/recipebox/mealdb"
)

// App is a browse controller plus whatever has to be closed with it.
type App struct {
	Browse *browse.Controller
	Store  cache.Store
	closer io.Closer
}

// Logger builds the root logger at the configured level.
func Logger(cfg *config.Config, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

// New wires the MealDB client and the session cache. The cache lives in
// Redis when one is configured so every process shares it, and in memory
// otherwise.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	client := mealdb.New(
		mealdb.WithBaseURL(cfg.MealDBBaseURL),
		mealdb.WithHTTPClient(mealdb.NewHTTPClient(cfg.HTTPTimeout, cfg.HTTPCache)),
	)

	a := &App{}
	if cfg.HasRedis() {
		rs, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			URL:      cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("session cache: %w", err)
		}
		a.Store, a.closer = rs, rs
		logger.Info().Str("prefix", cfg.Redis.Prefix).Msg("session cache in redis")
	} else {
		a.Store = cache.NewMemoryStore()
		logger.Info().Msg("session cache in memory")
	}

	a.Browse = browse.New(client, browse.NewState(a.Store), logger)
	return a, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// RedisConnOpt is the asynq connection for the configured Redis.
func RedisConnOpt(cfg *config.Config) (asynq.RedisConnOpt, error) {
	if cfg.Redis.URL != "" {
		opt, err := asynq.ParseRedisURI(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return opt, nil
	}
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, nil
}
