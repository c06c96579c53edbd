package api

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/logger"
	"github.com/fsdevblog/food-delivery/internal/metrics"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/transport/api/mocks"
	"github.com/fsdevblog/food-delivery/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	validToken = "valid-token"
	testPrefix = "/api/v1"
)

// handlerSuite общая часть тестов обработчиков: роутер с моками сервисов и авторизованная сессия.
type handlerSuite struct {
	suite.Suite
	router             *gin.Engine
	mockUserService    *mocks.MockUserServicer
	mockOrderService   *mocks.MockOrderServicer
	mockCatalogService *mocks.MockCatalogServicer
	session            *service.Session
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.mockCatalogService = mocks.NewMockCatalogServicer(mockCtrl)

	s.session = &service.Session{
		ID: uuid.New(),
		User: domain.SessionUser{
			ID:        uuid.New(),
			Email:     "john@example.com",
			Username:  "john",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	s.mockUserService.EXPECT().ResolveSession(gomock.Any(), validToken).Return(s.session, nil).AnyTimes()
	s.mockUserService.EXPECT().ResolveSession(gomock.Any(), gomock.Not(validToken)).
		Return(nil, domain.ErrSessionNotFound).AnyTimes()

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		UserService:    s.mockUserService,
		OrderService:   s.mockOrderService,
		CatalogService: s.mockCatalogService,
		Metrics:        metrics.New(),
		APIPrefix:      testPrefix,
	})
}

func (s *handlerSuite) userID() uuid.UUID {
	return s.session.User.ID
}

// request выполняет запрос и возвращает статус и разобранное JSON тело (nil, если тело пустое).
func (s *handlerSuite) request(method, url, body, token string) (int, map[string]any) {
	s.T().Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    testPrefix + url,
		Body:   reader,
	}, testutils.WithJSON(), testutils.WithBearer(token))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	if len(raw) == 0 {
		return res.StatusCode, nil
	}
	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded), string(raw))
	return res.StatusCode, decoded
}

func (s *handlerSuite) assertEnvelope(body map[string]any, code, message string) {
	s.T().Helper()
	s.Require().NotNil(body)
	s.Equal(code, body["code"])
	s.Equal(message, body["message"])
}

func jsonBody(s string) io.Reader {
	return bytes.NewBufferString(s)
}
