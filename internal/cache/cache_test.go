package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
}

func (s *CacheTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *CacheTestSuite) TestSessionLifecycle() {
	ctx := context.Background()
	store := NewSessionStore(s.client, time.Hour)
	user := domain.SessionUser{ID: uuid.New(), Email: "john@example.com", Username: "john"}

	id, expiresAt, err := store.Create(ctx, user)
	s.Require().NoError(err)
	s.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := store.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal("john", got.Username)

	s.Require().NoError(store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}

func (s *CacheTestSuite) TestSessionExpires() {
	ctx := context.Background()
	store := NewSessionStore(s.client, time.Minute)

	id, _, err := store.Create(ctx, domain.SessionUser{ID: uuid.New()})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, id)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}

func (s *CacheTestSuite) TestBalanceCache() {
	ctx := context.Background()
	cache := NewBalanceCache(s.client, time.Hour)
	userID := uuid.New()

	_, found, err := cache.Get(ctx, userID)
	s.Require().NoError(err)
	s.False(found)

	s.Require().NoError(cache.Set(ctx, userID, decimal.RequireFromString("975.02")))
	amount, found, err := cache.Get(ctx, userID)
	s.Require().NoError(err)
	s.True(found)
	s.Equal("975.02", amount.StringFixed(2))

	s.Require().NoError(cache.Invalidate(ctx, userID))
	_, found, err = cache.Get(ctx, userID)
	s.Require().NoError(err)
	s.False(found)
}

func (s *CacheTestSuite) TestRedisDown() {
	down, runErr := miniredis.Run()
	s.Require().NoError(runErr)
	addr := down.Addr()
	down.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	defer client.Close()
	cache := NewBalanceCache(client, time.Hour)

	_, found, err := cache.Get(context.Background(), uuid.New())
	s.Require().Error(err)
	s.False(found)
}
