package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore сессии с фиксированным временем жизни. Значение сессии содержит снимок пользователя.
type SessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSessionStore(client redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create сохраняет новую сессию и возвращает ее идентификатор и момент истечения.
func (s *SessionStore) Create(ctx context.Context, user domain.SessionUser) (uuid.UUID, time.Time, error) {
	sessionID := uuid.New()
	data, err := json.Marshal(user)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("marshal session user: %w", err)
	}
	expiresAt := time.Now().Add(s.ttl)
	if err = s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("create session: %w", err)
	}
	return sessionID, expiresAt, nil
}

// Get возвращает пользователя сессии или domain.ErrSessionNotFound если сессия истекла или удалена.
func (s *SessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var user domain.SessionUser
	if err = json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal session user: %w", err)
	}
	return &user, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return sessionPrefix + id.String()
}
