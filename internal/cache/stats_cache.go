package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"innsikt/internal/logger"
)

// StatsCache stores computed reports per team. Invalidate orphans every
// report of a team by bumping its generation counter.
type StatsCache interface {
	// Get decodes a cached report into dst and reports whether it was found
	Get(ctx context.Context, team, report, predKey string, dst any) (bool, error)
	Set(ctx context.Context, team, report, predKey string, v any) error
	Invalidate(ctx context.Context, team string) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker
}

// NewStatsCache creates a report cache. Redis calls run through a circuit
// breaker so a failing redis is skipped quickly instead of on every request.
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	settings := gobreaker.Settings{
		Name:        "stats-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	return &statsCache{
		client: client,
		ttl:    ttl,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

// Key helpers
func (c *statsCache) generationKey(team string) string {
	return fmt.Sprintf("stats:%s:gen", team)
}

func (c *statsCache) reportKey(team string, gen int64, report, predKey string) string {
	sum := sha256.Sum256([]byte(predKey))
	return fmt.Sprintf("stats:%s:g%d:%s:%s", team, gen, report, hex.EncodeToString(sum[:8]))
}

func (c *statsCache) generation(ctx context.Context, team string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(team)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *statsCache) Get(ctx context.Context, team, report, predKey string, dst any) (bool, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		gen, err := c.generation(ctx, team)
		if err != nil {
			return nil, err
		}
		data, err := c.client.Get(ctx, c.reportKey(team, gen, report, predKey)).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return false, err
	}
	data, _ := res.([]byte)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", report, err)
	}
	return true, nil
}

func (c *statsCache) Set(ctx context.Context, team, report, predKey string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.cb.Execute(func() (interface{}, error) {
		gen, err := c.generation(ctx, team)
		if err != nil {
			return nil, err
		}
		return nil, c.client.Set(ctx, c.reportKey(team, gen, report, predKey), data, c.ttl).Err()
	})
	return err
}

func (c *statsCache) Invalidate(ctx context.Context, team string) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Incr(ctx, c.generationKey(team)).Err()
	})
	return err
}

// IsUnavailable reports whether err came from an open breaker
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
