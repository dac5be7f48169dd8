// Package redis builds the optional Redis client used for caching.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options configures the client.
type Options struct {
	Addr     string
	Password string
}

const pingTimeout = 3 * time.Second

// NewRedisClient connects and pings. The caller runs without cache when an error is returned.
func NewRedisClient(ctx context.Context, opts Options, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       0,
	})

	// Connectivity check
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Redis connection failed", zap.String("address", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", zap.String("address", opts.Addr))
	return rdb, nil
}
