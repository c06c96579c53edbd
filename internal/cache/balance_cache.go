package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BalanceCache кэш баланса для отображения. Значение не используется при проверках оплаты.
type BalanceCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewBalanceCache(client redis.Cmdable, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

// Get второе значение false, если баланса нет в кэше.
func (b *BalanceCache) Get(ctx context.Context, userID uuid.UUID) (decimal.Decimal, bool, error) {
	raw, err := b.client.Get(ctx, balanceKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get cached balance: %w", err)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse cached balance: %w", err)
	}
	return amount, true, nil
}

func (b *BalanceCache) Set(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if err := b.client.Set(ctx, balanceKey(userID), amount.StringFixed(2), b.ttl).Err(); err != nil {
		return fmt.Errorf("set cached balance: %w", err)
	}
	return nil
}

func (b *BalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := b.client.Del(ctx, balanceKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached balance: %w", err)
	}
	return nil
}

func balanceKey(id uuid.UUID) string {
	return balancePrefix + id.String()
}
