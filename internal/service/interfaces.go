package service

import (
	"context"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/internal/service/initdata"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

type CategoryRepository interface {
	List(ctx context.Context, filter repoargs.CategoryFilter) ([]domain.Category, error)
	GetByParentIDs(ctx context.Context, parentIDs []int64, isActive *bool) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, args repoargs.FindOrder) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
}

// OrderNotifier ставит уведомление о новом заказе в очередь. Не блокирует, возвращает false если заказ не принят.
type OrderNotifier interface {
	Enqueue(order domain.Order) bool
}

type InitDataVerifier interface {
	Verify(raw string) (*initdata.Data, error)
}
