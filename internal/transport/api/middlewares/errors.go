package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal server error"
	}
}

// Errors отдает клиенту первую ошибку запроса в виде {"error": msg, "request_id": id}. Текст приватных
// ошибок заменяется описанием http статуса.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		var msg string
		if firstErr.IsType(gin.ErrorTypePublic) {
			msg = firstErr.Error()
		} else {
			msg = statusErrorText(c.Writer.Status())
		}

		body := gin.H{"error": msg}
		if requestID := c.GetString(RequestIDKey); requestID != "" {
			body["request_id"] = requestID
		}
		c.JSON(c.Writer.Status(), body)
		c.Abort()
	}
}

// Abort прерывает обработку запроса со статусом status и ошибкой err, не записывая заголовки.
// Ответ формирует Errors.
func Abort(c *gin.Context, status int, err error, errType gin.ErrorType) {
	c.Status(status)
	c.Abort()
	_ = c.Error(err).SetType(errType)
}
