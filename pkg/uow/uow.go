// Package uow реализует unit of work поверх pgx: репозитории регистрируются по имени и создаются
// либо поверх пула, либо поверх транзакции.
package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Conn соединение, из которого открываются транзакции. Ему удовлетворяет *pgxpool.Pool.
type Conn interface {
	DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type UnitOfWork struct {
	conn         Conn
	txOptions    pgx.TxOptions
	repositories map[RepositoryName]RepositoryFactory
}

type Option func(*UnitOfWork)

// WithTxOptions задает параметры транзакций, открываемых в Do.
func WithTxOptions(opts pgx.TxOptions) Option {
	return func(u *UnitOfWork) {
		u.txOptions = opts
	}
}

func NewUnitOfWork(conn Conn, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register регистрирует фабрику репозитория. Повторная регистрация имени возвращает ErrRepositoryAlreadyRegistered.
// Регистрация выполняется до начала работы, конкурентный вызов с Do не поддерживается.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if factory == nil {
		return newRepositoryError(name, ErrNilRepositoryFactory)
	}
	if _, ok := u.repositories[name]; ok {
		return newRepositoryError(name, ErrRepositoryAlreadyRegistered)
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет fn в транзакции. Если fn вернула ошибку или запаниковала, транзакция откатывается,
// иначе коммитится.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, txErr := u.conn.BeginTx(ctx, u.txOptions)
	if txErr != nil {
		return fmt.Errorf("[uow] begin transaction: %w", txErr)
	}
	defer func() {
		// откат после коммита вернет pgx.ErrTxClosed, это нормально
		rollbackErr := tx.Rollback(ctx)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rollbackErr)
		}
	}()

	if fnErr := fn(ctx, NewTransaction(tx, u.repositories)); fnErr != nil {
		return fnErr
	}
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return fmt.Errorf("[uow] commit: %w", commitErr)
	}
	return nil
}

// GetRepository возвращает репозиторий поверх пула или ошибку ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, newRepositoryError(name, ErrRepositoryNotRegistered)
}

// GetRepositoryAs возвращает репозиторий по имени name, приведенный к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var res T
	repo, err := u.GetRepository(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	r, ok := repo.(T)
	if !ok {
		return res, newRepositoryError(name, ErrInvalidRepositoryType)
	}
	return r, nil
}
