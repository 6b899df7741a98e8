// Package cache provides a redis-backed cache for per-show seat maps. The
// cache is read-through in the show service and invalidated by the booking
// coordinator after every commit or cancellation.
package cache

import (
	"context"
	"fmt"
	"time"

	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to redis, or returns nil when no address is
// configured so the cache stays disabled.
func NewRedisClient(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", config.Addr, err)
	}

	return client, nil
}

// SeatCache stores rendered seat-map payloads keyed by show id. A nil
// *SeatCache is valid and disables every operation.
type SeatCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewSeatCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SeatCache {
	if client == nil {
		return nil
	}
	return &SeatCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "seat_cache")),
	}
}

func seatsKey(showID uuid.UUID) string {
	return fmt.Sprintf("seats:%s", showID.String())
}

// Get returns the cached seat-map payload for a show, or ok=false on miss
// or any redis error. Cache errors never fail a request.
func (c *SeatCache) Get(ctx context.Context, showID uuid.UUID) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, seatsKey(showID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Seat cache read failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, false
	}

	return payload, true
}

func (c *SeatCache) Set(ctx context.Context, showID uuid.UUID, payload []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, seatsKey(showID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Seat cache write failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
	}
}

// Invalidate drops the cached seat map after a booking commit or
// cancellation changed seat state.
func (c *SeatCache) Invalidate(ctx context.Context, showID uuid.UUID) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, seatsKey(showID)).Err(); err != nil {
		c.log.Warn("Seat cache invalidation failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
	}
}
