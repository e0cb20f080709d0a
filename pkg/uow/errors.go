package uow

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotRegistered     = errors.New("repository not registered")
	ErrRepositoryAlreadyRegistered = errors.New("repository already registered")
	ErrInvalidRepositoryType       = errors.New("invalid repository type")
	ErrNilRepositoryFactory        = errors.New("nil repository factory")
)

// RepositoryError ошибка работы с репозиторием Name. Сравнивается с Err через errors.Is.
type RepositoryError struct {
	Name RepositoryName
	Err  error
}

func newRepositoryError(name RepositoryName, err error) error {
	return &RepositoryError{Name: name, Err: err}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("[uow] repository `%s`: %s", e.Name, e.Err.Error())
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
