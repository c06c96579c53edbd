// Package envelope формат ответов API: {"code": ..., "message": ..., ...}.
package envelope

import (
	"github.com/gin-gonic/gin"
)

type Code string

const (
	CodeSuccess         Code = "SUCCESS"
	CodeFailed          Code = "FAILED"
	CodeValidationError Code = "VALIDATION_ERROR"
	CodeInputError      Code = "INPUT_ERROR"
	CodeForbidden       Code = "FORBIDDEN"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeDatabaseError   Code = "DATABASE_ERROR"
)

func body(code Code, message string, fields gin.H) gin.H {
	h := gin.H{"code": code, "message": message}
	for k, v := range fields {
		h[k] = v
	}
	return h
}

// JSON пишет ответ. fields добавляются на верхний уровень рядом с code и message.
func JSON(c *gin.Context, status int, code Code, message string, fields gin.H) {
	c.JSON(status, body(code, message, fields))
}

// Abort то же что JSON, но прерывает цепочку обработчиков.
func Abort(c *gin.Context, status int, code Code, message string, fields gin.H) {
	c.AbortWithStatusJSON(status, body(code, message, fields))
}
