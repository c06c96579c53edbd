package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/fsdevblog/food-delivery/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	MsgUserCreated       = "User created successfully."
	MsgUserExists        = "Username or Email already exist."
	MsgUserLoggedIn      = "User login successfully."
	MsgUnknownIdentity   = "Username or Email doesn't exist."
	MsgIncorrectPassword = "Incorrect password."
	MsgUserAuthenticated = "User authenticated."
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type UserRegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /user/register. Регистрирует пользователя и открывает сессию.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, MsgInvalidBody, nil)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.userService.Register(ctx, repoargs.CreateUser{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		switch {
		case respondInputError(c, err):
		case errors.Is(err, domain.ErrUserExists):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeForbidden, MsgUserExists, nil)
		case isDatabaseError(err):
			respondDatabaseError(c, err, "Failed to create user.")
		default:
			internalError(c, err)
		}
		return
	}

	c.Header("Authorization", "Bearer "+result.Token)
	envelope.JSON(c, http.StatusCreated, envelope.CodeSuccess, MsgUserCreated, gin.H{"user": authUser(result)})
}

type UserLoginParams struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// Login POST /user/login. identity может быть email или username.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, MsgInvalidBody, nil)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.userService.Login(ctx, params.Identity, params.Password)
	if err != nil {
		switch {
		case respondInputError(c, err):
		case errors.Is(err, domain.ErrRecordNotFound):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, MsgUnknownIdentity, nil)
		case errors.Is(err, domain.ErrPasswordMissMatch):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, MsgIncorrectPassword, nil)
		default:
			internalError(c, err)
		}
		return
	}

	c.Header("Authorization", "Bearer "+result.Token)
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, MsgUserLoggedIn, gin.H{"user": authUser(result)})
}

// Logout POST /user/logout. Закрывает сессию, если токен валиден. Ответ всегда 204.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middlewares.BearerToken(c.GetHeader("Authorization"))
	if ok {
		ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
		defer cancel()

		if session, err := h.userService.ResolveSession(ctx, token); err == nil {
			if logoutErr := h.userService.Logout(ctx, session.ID); logoutErr != nil {
				_ = c.Error(logoutErr)
			}
		}
	}
	c.AbortWithStatus(http.StatusNoContent)
}

// Authenticate GET /user/authenticate. Пользователь текущей сессии вместе с балансом.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	session := currentSession(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.userService.Balance(ctx, session.User.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	user := newUserResponse(session.User)
	user.Balance = money(balance)
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, MsgUserAuthenticated, gin.H{"user": user})
}

func authUser(result *service.AuthResult) UserResponse {
	user := newUserResponse(result.User)
	user.Balance = money(result.Balance)
	return user
}
