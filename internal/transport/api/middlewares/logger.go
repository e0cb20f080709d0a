package middlewares

import (
	"net/http"
	"time"

	"github.com/fsdevblog/botshop/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет access log запроса. Приватные ошибки попадают в лог, но не клиенту.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := logger.Component(l, "api", "http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"clientIP":  c.ClientIP(),
			"requestID": c.GetString(RequestIDKey),
		}
		if privateErrs := c.Errors.ByType(gin.ErrorTypePrivate); len(privateErrs) > 0 {
			fields["errors"] = privateErrs.String()
		}

		le := entry.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			le.Error("request")
		case status >= http.StatusBadRequest:
			le.Warn("request")
		default:
			le.Info("request")
		}
	}
}
