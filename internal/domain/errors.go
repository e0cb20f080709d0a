package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrInvalidOrderItems = errors.New("invalid order items")
)

type AuthReason string

const (
	AuthBadScheme        AuthReason = "bad scheme"
	AuthMalformedPayload AuthReason = "malformed payload"
	AuthMissingSignature AuthReason = "missing signature"
	AuthInvalidSignature AuthReason = "invalid signature"
	AuthInvalidTimestamp AuthReason = "invalid timestamp"
	AuthExpired          AuthReason = "expired"
	AuthMissingUserID    AuthReason = "missing user id"
)

// AuthError ошибка аутентификации по init data. Клиенту отдается только факт отказа,
// причина пишется в лог.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func NewAuthError(reason AuthReason, err error) error {
	return &AuthError{Reason: reason, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthReason проверяет, что err является *AuthError с указанной причиной.
func IsAuthReason(err error, reason AuthReason) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Reason == reason
}

type OrderReason string

const (
	OrderProductNotFound    OrderReason = "product not found"
	OrderProductUnavailable OrderReason = "product unavailable"
)

// OrderError ошибка валидации заказа, которую клиент может исправить.
type OrderError struct {
	Reason     OrderReason
	ProductIDs []int64
}

func NewOrderError(reason OrderReason, productIDs []int64) error {
	return &OrderError{Reason: reason, ProductIDs: productIDs}
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reason, e.ProductIDs)
}

// IsOrderReason проверяет, что err является *OrderError с указанной причиной.
func IsOrderReason(err error, reason OrderReason) bool {
	var orderErr *OrderError
	return errors.As(err, &orderErr) && orderErr.Reason == reason
}
