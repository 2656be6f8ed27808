package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/config"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
)

const recentKey = "carebook:view:admin:recent"

func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

// Cache holds the rendered admin dashboard view. Mutating writes invalidate
// it; the next list call repopulates it. Cache trouble is never fatal — the
// store remains the source of truth.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) GetRecent(ctx context.Context) (*appointment.RecentAppointments, bool) {
	raw, err := c.rdb.Get(ctx, recentKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("admin view cache read failed", zap.Error(err))
		return nil, false
	}

	var view appointment.RecentAppointments
	if err := json.Unmarshal(raw, &view); err != nil {
		c.log.Warn("admin view cache entry corrupt, dropping", zap.Error(err))
		_ = c.rdb.Del(ctx, recentKey).Err()
		return nil, false
	}
	return &view, true
}

func (c *Cache) SetRecent(ctx context.Context, view *appointment.RecentAppointments) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.log.Warn("admin view cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, recentKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("admin view cache write failed", zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, recentKey).Err(); err != nil {
		c.log.Warn("admin view cache invalidation failed", zap.Error(err))
	}
}

// Noop satisfies the service's view port when redis is not configured.
type Noop struct{}

func (Noop) GetRecent(context.Context) (*appointment.RecentAppointments, bool) { return nil, false }
func (Noop) SetRecent(context.Context, *appointment.RecentAppointments)       {}
func (Noop) Invalidate(context.Context)                                       {}
