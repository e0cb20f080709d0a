package pgrepo

import (
	"context"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, created_at, updated_at, telegram_id, username, first_name, last_name`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser создает пользователя. Если пользователь с таким telegram id уже есть, возвращает
// domain.ErrDuplicateKey, во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.TelegramID, user.Username, user.FirstName, user.LastName,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user with telegram id %d", user.TelegramID)
	}
	return dbUser, nil
}

// FindByTelegramID ищет пользователя по telegram id. Возвращает domain.ErrRecordNotFound, если записи нет.
func (u *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by telegram id %d", telegramID)
	}
	return dbUser, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
