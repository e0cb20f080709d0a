package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "currentUser"

	authTimeout = 3 * time.Second
)

type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*domain.User, error)
}

// AuthRequired проверяет init data из заголовка Authorization. Записывает в контекст (поле CurrentUserKey)
// *domain.User. Причина отказа пишется только в лог.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, authTimeout)
		defer cancel()

		user, err := auth.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			var authErr *domain.AuthError
			status := http.StatusInternalServerError
			if errors.As(err, &authErr) {
				status = http.StatusUnauthorized
			}
			Abort(c, status, err, gin.ErrorTypePrivate)
			return
		}
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser возвращает пользователя, записанного AuthRequired, или nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, exist := c.Get(CurrentUserKey)
	if !exist {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
