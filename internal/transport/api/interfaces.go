package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/service"
)

type AuthServicer interface {
	Authenticate(ctx context.Context, authorization string) (*domain.User, error)
}

type OrderServicer interface {
	Create(ctx context.Context, userID int64, args service.CreateOrderArgs) (*domain.Order, error)
	GetByID(ctx context.Context, orderID, userID int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
}

type CatalogServicer interface {
	ListCategories(ctx context.Context, filter service.CategoryFilter) ([]domain.Category, error)
	ListCategoryTree(ctx context.Context, filter service.CategoryFilter) (*domain.CategoryArena, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListProducts(ctx context.Context, filter service.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}
