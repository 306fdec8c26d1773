package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"memokeeper/config"
)

var client *redis.Client

// Connect opens a Redis connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	client = c
	return c, nil
}

// Disconnect closes the connection opened by Connect.
func Disconnect() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
