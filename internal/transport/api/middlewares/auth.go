package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/service/tokens"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/gin-gonic/gin"
)

const (
	sessionContextKey = "session"
	resolveTimeout    = 2 * time.Second

	MsgNotAuthenticated = "User not authenticated."
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*service.Session, error)
}

// AuthRequired пропускает запрос только с валидным bearer токеном и живой сессией.
// Недоступность хранилища сессий отдается как 500, а не 401.
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			envelope.Abort(c, http.StatusUnauthorized, envelope.CodeUnauthenticated, MsgNotAuthenticated, nil)
			return
		}

		ctx, cancel := context.WithTimeout(c, resolveTimeout)
		defer cancel()

		session, err := resolver.ResolveSession(ctx, token)
		if err != nil {
			if !isUnauthenticated(err) {
				_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
				return
			}
			_ = c.Error(err)
			envelope.Abort(c, http.StatusUnauthorized, envelope.CodeUnauthenticated, MsgNotAuthenticated, nil)
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, tokens.ErrInvalidToken) ||
		errors.Is(err, tokens.ErrTokenExpired)
}

// CurrentSession возвращает сессию, установленную AuthRequired, или nil.
func CurrentSession(c *gin.Context) *service.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*service.Session)
	return session
}

// BearerToken извлекает токен из заголовка Authorization вида "Bearer <token>".
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
