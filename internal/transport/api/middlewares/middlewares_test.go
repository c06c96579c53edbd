package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/service/tokens"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubResolver struct {
	session *service.Session
	token   string
}

func (r stubResolver) ResolveSession(_ context.Context, token string) (*service.Session, error) {
	switch token {
	case "expired":
		return nil, fmt.Errorf("resolve session: %w", tokens.ErrTokenExpired)
	case "forged":
		return nil, fmt.Errorf("resolve session: %w", tokens.ErrInvalidToken)
	case "redis-down":
		return nil, fmt.Errorf("resolve session: %w", errors.New("get session: dial tcp: connection refused"))
	}
	if token != r.token {
		return nil, domain.ErrSessionNotFound
	}
	return r.session, nil
}

type MiddlewaresTestSuite struct {
	suite.Suite
}

func TestMiddlewaresSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(MiddlewaresTestSuite))
}

func (s *MiddlewaresTestSuite) serve(r *gin.Engine, header string) (int, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.Len() == 0 {
		return w.Code, nil
	}
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func (s *MiddlewaresTestSuite) TestBearerToken() {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := BearerToken(tc.header)
		s.Equal(tc.ok, ok, tc.header)
		s.Equal(tc.token, token, tc.header)
	}
}

func (s *MiddlewaresTestSuite) TestAuthRequired() {
	session := &service.Session{ID: uuid.New(), User: domain.SessionUser{ID: uuid.New()}}
	r := gin.New()
	r.GET("/", AuthRequired(stubResolver{session: session, token: "good"}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentSession(c).User.ID})
	})

	status, body := s.serve(r, "Bearer good")
	s.Equal(http.StatusOK, status)
	s.Equal(session.User.ID.String(), body["user"])

	for _, header := range []string{"", "Bearer bad", "good", "Bearer expired", "Bearer forged"} {
		status, body = s.serve(r, header)
		s.Equal(http.StatusUnauthorized, status, header)
		s.Equal("UNAUTHENTICATED", body["code"])
		s.Equal(MsgNotAuthenticated, body["message"])
	}
}

func (s *MiddlewaresTestSuite) TestAuthRequired_StoreFailure() {
	r := gin.New()
	r.Use(Errors())
	r.GET("/", AuthRequired(stubResolver{token: "good"}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	status, body := s.serve(r, "Bearer redis-down")
	s.Equal(http.StatusInternalServerError, status)
	s.Equal("FAILED", body["code"])
	s.Equal("Internal server error.", body["message"])
}

func (s *MiddlewaresTestSuite) TestErrors() {
	cases := []struct {
		name     string
		handler  gin.HandlerFunc
		status   int
		wantCode string
		wantMsg  string
	}{
		{
			name: "private error hidden",
			handler: func(c *gin.Context) {
				_ = c.AbortWithError(http.StatusInternalServerError, errors.New("secret")).SetType(gin.ErrorTypePrivate)
			},
			status:   http.StatusInternalServerError,
			wantCode: "FAILED",
			wantMsg:  "Internal server error.",
		}, {
			name: "database error",
			handler: func(c *gin.Context) {
				_ = c.AbortWithError(http.StatusInternalServerError,
					&domain.DatabaseError{Op: "x", Kind: domain.ErrUnknown}).SetType(gin.ErrorTypePrivate)
			},
			status:   http.StatusInternalServerError,
			wantCode: "DATABASE_ERROR",
			wantMsg:  "Internal server error.",
		}, {
			name: "public error",
			handler: func(c *gin.Context) {
				_ = c.AbortWithError(http.StatusBadRequest, errors.New("bad input")).SetType(gin.ErrorTypePublic)
			},
			status:   http.StatusBadRequest,
			wantCode: "FAILED",
			wantMsg:  "bad input",
		}, {
			name: "body already written",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("logged only"))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"code": "INPUT_ERROR", "message": "kept"})
			},
			status:   http.StatusBadRequest,
			wantCode: "INPUT_ERROR",
			wantMsg:  "kept",
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			r := gin.New()
			r.Use(Errors())
			r.GET("/", tc.handler)

			status, body := s.serve(r, "")
			s.Equal(tc.status, status)
			s.Equal(tc.wantCode, body["code"])
			s.Equal(tc.wantMsg, body["message"])
		})
	}
}
