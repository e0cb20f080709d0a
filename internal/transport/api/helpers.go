package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

var (
	errProductsNotFound    = errors.New("Some products not found")         //nolint:stylecheck
	errProductsUnavailable = errors.New("Some products are not available") //nolint:stylecheck
)

type idURI struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// bindID читает положительный :id из пути. При ошибке прерывает запрос с 422.
func bindID(c *gin.Context) (int64, bool) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		abortValidation(c, err)
		return 0, false
	}
	return uri.ID, true
}

func abortValidation(c *gin.Context, err error) {
	middlewares.Abort(c, http.StatusUnprocessableEntity, fmt.Errorf("validation error: %w", err), gin.ErrorTypePublic)
}

// abortWithServiceError переводит ошибку сервисного слоя в http статус.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case domain.IsOrderReason(err, domain.OrderProductNotFound):
		middlewares.Abort(c, http.StatusNotFound, errProductsNotFound, gin.ErrorTypePublic)
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
	case domain.IsOrderReason(err, domain.OrderProductUnavailable):
		middlewares.Abort(c, http.StatusBadRequest, errProductsUnavailable, gin.ErrorTypePublic)
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrInvalidOrderItems):
		abortValidation(c, err)
	case errors.Is(err, domain.ErrRecordNotFound):
		middlewares.Abort(c, http.StatusNotFound, err, gin.ErrorTypePrivate)
	default:
		middlewares.Abort(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
	}
}

// currentUser возвращает пользователя, записанного middlewares.AuthRequired. Если его нет,
// прерывает запрос с 401.
func currentUser(c *gin.Context) (*domain.User, bool) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		middlewares.Abort(c, http.StatusUnauthorized, errors.New("no current user in context"), gin.ErrorTypePrivate)
		return nil, false
	}
	return user, true
}
