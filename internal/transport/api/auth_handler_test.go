package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) authResult() *service.AuthResult {
	return &service.AuthResult{
		User:      s.session.User,
		Balance:   decimal.NewFromInt(1000),
		SessionID: s.session.ID,
		Token:     "issued-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (s *AuthHandlerTestSuite) TestRegister() {
	args := repoargs.CreateUser{Username: "john", Email: "john@example.com", Password: "secret"}
	s.mockUserService.EXPECT().Register(gomock.Any(), args).Return(s.authResult(), nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    testPrefix + "/user/register",
		Body:   jsonBody(`{"username":"john","email":"john@example.com","password":"secret"}`),
	}, testutils.WithJSON())
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Equal(http.StatusCreated, res.StatusCode)
	s.Equal("Bearer issued-token", res.Header.Get("Authorization"))
}

func (s *AuthHandlerTestSuite) TestRegisterFailures() {
	s.mockUserService.EXPECT().
		Register(gomock.Any(), repoargs.CreateUser{Username: "jo", Email: "jo@example.com", Password: "secret"}).
		Return(nil, domain.NewValidationError(domain.FieldError{
			Field:   "Username",
			Message: "Username must be between 3 to 25 characters long.",
		}))
	s.mockUserService.EXPECT().
		Register(gomock.Any(), repoargs.CreateUser{Username: "taken", Email: "taken@example.com", Password: "secret"}).
		Return(nil, domain.ErrUserExists)

	status, body := s.request(http.MethodPost, "/user/register",
		`{"username":"jo","email":"jo@example.com","password":"secret"}`, "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", "Username - Username must be between 3 to 25 characters long.")

	status, body = s.request(http.MethodPost, "/user/register",
		`{"username":"taken","email":"taken@example.com","password":"secret"}`, "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "FORBIDDEN", MsgUserExists)

	status, body = s.request(http.MethodPost, "/user/register", `{"username":1}`, "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", MsgInvalidBody)
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.mockUserService.EXPECT().Login(gomock.Any(), "john", "secret").Return(s.authResult(), nil)
	s.mockUserService.EXPECT().Login(gomock.Any(), "ghost", "secret").
		Return(nil, &domain.DatabaseError{Op: "find user", Kind: domain.ErrRecordNotFound})
	s.mockUserService.EXPECT().Login(gomock.Any(), "john", "wrong").Return(nil, domain.ErrPasswordMissMatch)

	status, body := s.request(http.MethodPost, "/user/login", `{"identity":"john","password":"secret"}`, "")
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", MsgUserLoggedIn)
	user := body["user"].(map[string]any)
	s.Equal("1000.00", user["balance"])
	s.Equal("john", user["username"])

	status, body = s.request(http.MethodPost, "/user/login", `{"identity":"ghost","password":"secret"}`, "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", MsgUnknownIdentity)

	status, body = s.request(http.MethodPost, "/user/login", `{"identity":"john","password":"wrong"}`, "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", MsgIncorrectPassword)
}

func (s *AuthHandlerTestSuite) TestAuthenticate() {
	s.mockUserService.EXPECT().Balance(gomock.Any(), s.userID()).Return(decimal.RequireFromString("975.02"), nil)

	status, body := s.request(http.MethodGet, "/user/authenticate", "", validToken)
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", MsgUserAuthenticated)
	user := body["user"].(map[string]any)
	s.Equal(s.userID().String(), user["id"])
	s.Equal("975.02", user["balance"])

	status, body = s.request(http.MethodGet, "/user/authenticate", "", "")
	s.Equal(http.StatusUnauthorized, status)
	s.assertEnvelope(body, "UNAUTHENTICATED", "User not authenticated.")
}

func (s *AuthHandlerTestSuite) TestAuthenticateBalanceError() {
	s.mockUserService.EXPECT().Balance(gomock.Any(), s.userID()).Return(decimal.Zero, errors.New("db down"))

	status, body := s.request(http.MethodGet, "/user/authenticate", "", validToken)
	s.Equal(http.StatusInternalServerError, status)
	s.assertEnvelope(body, "FAILED", "Internal server error.")
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.mockUserService.EXPECT().Logout(gomock.Any(), s.session.ID).Return(nil)

	status, body := s.request(http.MethodPost, "/user/logout", "", validToken)
	s.Equal(http.StatusNoContent, status)
	s.Nil(body)

	// без сессии выход тоже успешен
	status, _ = s.request(http.MethodPost, "/user/logout", "", "")
	s.Equal(http.StatusNoContent, status)
	status, _ = s.request(http.MethodPost, "/user/logout", "", "unknown-"+uuid.NewString())
	s.Equal(http.StatusNoContent, status)
}
