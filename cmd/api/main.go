// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recipebox/internal/app"
	"github.com/briangreenhill/recipebox/internal/config"
	"github.com/briangreenhill/recipebox/internal/http/routes"
	"github.com/briangreenhill/recipebox/internal/jobs"
	"github.com/briangreenhill/recipebox/web"
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

	// Logger
	logger := app.Logger(cfg, os.Stdout)
	logger.Info().Str("addr", cfg.Addr()).Str("mealdb", cfg.MealDBBaseURL).Msg("starting app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup failed")
	}
	defer a.Close() //nolint:errcheck

	// Sessions
	sess := scs.New()
	sess.Lifetime = cfg.SessionLifetime
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal().Err(err).Msg("parse templates")
	}

	// Router / server
	s := routes.New(routes.ServerOptions{
		Sess:   sess,
		Tmpl:   tmpl,
		Browse: a.Browse,
		Cfg:    *cfg,
		Logger: logger,
	})

	scheduleWarm(ctx, cfg, a, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("server stopped")
}

// scheduleWarm hands the warm-up to the worker when Redis is configured and
// otherwise runs it in-process once the grid delay has passed.
func scheduleWarm(ctx context.Context, cfg *config.Config, a *app.App, logger zerolog.Logger) {
	if !cfg.Warm.OnStart {
		return
	}

	if cfg.HasRedis() {
		opt, err := app.RedisConnOpt(cfg)
		if err != nil {
			logger.Error().Err(err).Msg("warm-up not queued")
			return
		}
		client := asynq.NewClient(opt)
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("close asynq client")
			}
		}()

		task, p, err := jobs.NewWarmTask(cfg.Warm.Concurrency)
		if err != nil {
			logger.Error().Err(err).Msg("warm-up not queued")
			return
		}
		info, err := client.EnqueueContext(ctx, task)
		if err != nil {
			logger.Error().Err(err).Msg("failed to enqueue warm-up")
			return
		}
		logger.Info().Str("task_id", info.ID).Str("batch_id", p.BatchID.String()).Msg("warm-up queued")
		return
	}

	time.AfterFunc(cfg.GridDelay, func() {
		if _, err := a.Browse.Warm(ctx, cfg.Warm.Concurrency); err != nil {
			logger.Warn().Err(err).Msg("warm-up incomplete")
		}
	})
}
