package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recipebox/internal/browse"
)

const (
	TaskWarmCategories = "warm:categories"
	QueueWarm          = "warm"
)

type WarmPayload struct {
	BatchID     uuid.UUID `json:"batch_id"`
	Concurrency int       `json:"concurrency,omitempty"`
}

// Warmer is the part of the browse controller the warm-up task drives.
type Warmer interface {
	Warm(ctx context.Context, limit int) (browse.WarmStats, error)
}

// NewWarmTask builds a warm-up task with a fresh batch id. It is never
// retried; the next start enqueues another.
func NewWarmTask(concurrency int) (*asynq.Task, WarmPayload, error) {
	p := WarmPayload{BatchID: uuid.New(), Concurrency: concurrency}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, p, err
	}
	t := asynq.NewTask(TaskWarmCategories, b,
		asynq.Queue(QueueWarm),
		asynq.MaxRetry(0),
		asynq.Timeout(5*time.Minute),
	)
	return t, p, nil
}

// NewWarmHandler returns the asynq handler for TaskWarmCategories.
func NewWarmHandler(w Warmer, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p WarmPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("bad warm payload")
			return fmt.Errorf("decode warm payload: %v: %w", err, asynq.SkipRetry)
		}
		l := log.With().Str("batch_id", p.BatchID.String()).Logger()
		l.Info().Int("concurrency", p.Concurrency).Msg("warm start")

		start := time.Now()
		stats, err := w.Warm(ctx, p.Concurrency)
		dur := time.Since(start)
		if err != nil {
			l.Error().Err(err).Dur("duration", dur).Msg("warm failed")
			return fmt.Errorf("warm categories: %v: %w", err, asynq.SkipRetry)
		}
		l.Info().
			Int("categories", stats.Categories).
			Int("meal_lists", stats.MealLists).
			Int("meals", stats.Meals).
			Dur("duration", dur).
			Msg("warm done")
		return nil
	}
}
