package level

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/vocabgrid/internal/dependencies/random"
)

// RandomFactory returns the Random a pre-generation task should use.
// Each task gets its own so tasks share no mutable state.
type RandomFactory func(task int) random.Random

// CryptoRandomFactory gives every task a crypto-backed Random
func CryptoRandomFactory(int) random.Random {
	return random.New()
}

// SeededRandomFactory gives task i a PCG source seeded with seed+i,
// so a batch is reproducible regardless of scheduling
func SeededRandomFactory(seed uint64) RandomFactory {
	return func(task int) random.Random {
		return random.NewSeeded(seed + uint64(task))
	}
}

// PregenerateLevels builds many levels in parallel. Results are in request
// order. The first failure cancels tasks that have not started yet and is returned.
func (c *Controller) PregenerateLevels(ctx context.Context, requests []LevelRequest) ([]*LevelResult, error) {
	results := make([]*LevelResult, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if c.cfg.Concurrency > 0 {
		g.SetLimit(c.cfg.Concurrency)
	}

	for i, req := range requests {
		task := c.withRandom(c.randomFactory(i))
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("pre-generation panic recovered",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)
					err = fmt.Errorf("level %d: panic: %v", req.Level, r)
				}
			}()

			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := task.GenerateLevel(req)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("levels pre-generated", slog.Int("count", len(results)))
	return results, nil
}
