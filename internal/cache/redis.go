// Package cache хранит сессии пользователей и кэш балансов в Redis.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	balancePrefix = "balance:"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient создает клиент и проверяет соединение.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %s", opts.Addr, err.Error())
	}
	return client, nil
}
