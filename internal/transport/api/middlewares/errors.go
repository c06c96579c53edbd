package middlewares

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request."
	case http.StatusUnauthorized:
		return "User not authenticated."
	case http.StatusForbidden:
		return "Forbidden."
	case http.StatusNotFound:
		return "Not found."
	default:
		return "Internal server error."
	}
}

func statusCode(status int, err error) envelope.Code {
	switch status {
	case http.StatusUnauthorized:
		return envelope.CodeUnauthenticated
	case http.StatusForbidden:
		return envelope.CodeForbidden
	}
	var dbErr *domain.DatabaseError
	if status >= http.StatusInternalServerError && errors.As(err, &dbErr) {
		return envelope.CodeDatabaseError
	}
	return envelope.CodeFailed
}

// Errors отдает конверт ответа для ошибок, прикрепленных через c.AbortWithError, если обработчик
// сам ничего не записал. Текст приватных ошибок клиенту не отдается.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// AbortWithError пишет только заголовок, тело остается пустым
		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}

		msg := statusErrorText(status)
		if firstErr.IsType(gin.ErrorTypePublic) {
			msg = firstErr.Error()
		}
		envelope.Abort(c, status, statusCode(status, firstErr.Err), msg, nil)
	}
}
