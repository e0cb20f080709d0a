package pgrepo

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// коды ошибок postgres, которые имеют смысл для бизнес-слоя.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

var pgCodeErrors = map[string]error{
	uniqueViolationCode: domain.ErrDuplicateKey,
	// ссылка на отсутствующую запись, например заказ пользователя, которого нет.
	foreignKeyViolationCode: domain.ErrRecordNotFound,
	checkViolationCode:      domain.ErrInvalidOrderItems,
}

var domainErrors = []error{
	domain.ErrRecordNotFound,
	domain.ErrDuplicateKey,
	domain.ErrInvalidOrderItems,
}

// convertErr приводит ошибку к виду `[repository/<контекст>] <доменная ошибка>: <исходное сообщение>`.
//   - pgx.ErrNoRows становится domain.ErrRecordNotFound.
//   - Ошибки postgres сопоставляются по коду через pgCodeErrors.
//   - Доменные ошибки сохраняются как есть, остальное становится domain.ErrUnknown.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}
	for _, domainErr := range domainErrors {
		if errors.Is(err, domainErr) {
			return fmt.Errorf("[repository/%s] %w", msg, err)
		}
	}

	errType := domain.ErrUnknown
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			errType = mapped
		}
	}
	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
