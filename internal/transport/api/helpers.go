package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/fsdevblog/food-delivery/internal/transport/api/middlewares"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const MsgInvalidBody = "Body - Request body is invalid."

// currentSession сессия, установленная middlewares.AuthRequired. Для маршрутов за этим middleware
// всегда не nil.
func currentSession(c *gin.Context) *service.Session {
	return middlewares.CurrentSession(c)
}

func currentUserID(c *gin.Context) uuid.UUID {
	if session := currentSession(c); session != nil {
		return session.User.ID
	}
	return uuid.Nil
}

type pageParams struct {
	Limit  json.RawMessage `json:"limit"`
	Offset json.RawMessage `json:"offset"`
}

// bindPage читает limit/offset из тела. Принимаются неотрицательные целые числа и строки из цифр,
// остальное заменяется значениями по умолчанию. Пустое или невалидное тело не считается ошибкой.
func bindPage(c *gin.Context) repoargs.Page {
	var params pageParams
	_ = c.ShouldBindJSON(&params)

	var limit, offset uint
	if n, ok := domain.ParseWhole(params.Limit, 0); ok {
		limit = uint(n) //nolint:gosec
	}
	if n, ok := domain.ParseWhole(params.Offset, 0); ok {
		offset = uint(n) //nolint:gosec
	}
	return repoargs.NewPage(limit, offset)
}

func pageFields(page repoargs.Page, count int) gin.H {
	return gin.H{"count": count, "limit": page.Limit, "offset": page.Offset}
}

// pathID разбирает идентификатор из параметра маршрута. При ошибке ответ уже отправлен.
func pathID(c *gin.Context, param, field string) (uuid.UUID, bool) {
	id, err := validate.Identifier(field, c.Param(param))
	if err != nil {
		respondInputError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// respondInputError отвечает 400 INPUT_ERROR с первой ошибкой поля. Возвращает false, если err
// не является ошибкой валидации.
func respondInputError(c *gin.Context, err error) bool {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, vErr.First().Error(), nil)
	return true
}

// respondDatabaseError отвечает 500 DATABASE_ERROR с пояснением драйвера, если оно есть.
func respondDatabaseError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	msg := fallback
	var dbErr *domain.DatabaseError
	if errors.As(err, &dbErr) && dbErr.Detail != "" {
		msg = dbErr.Detail
	}
	envelope.Abort(c, http.StatusInternalServerError, envelope.CodeDatabaseError, msg, nil)
}

func internalError(c *gin.Context, err error) {
	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}

func isDatabaseError(err error) bool {
	var dbErr *domain.DatabaseError
	return errors.As(err, &dbErr)
}
