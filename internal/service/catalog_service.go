package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
)

type CatalogService struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
}

func NewCatalogService(u uow.UOW) (*CatalogService, error) {
	categoryRepo, categoryRepoErr :=
		uow.GetRepositoryAs[CategoryRepository](u, uow.RepositoryName(repoargs.CategoryRepoName))
	if categoryRepoErr != nil {
		return nil, categoryRepoErr //nolint:wrapcheck
	}
	productRepo, productRepoErr := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if productRepoErr != nil {
		return nil, productRepoErr //nolint:wrapcheck
	}
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}, nil
}

type CategoryFilter struct {
	ParentID *int64
	IsActive *bool
}

// ListCategories возвращает категории одного уровня. Без ParentID - корневые.
func (c *CatalogService) ListCategories(ctx context.Context, filter CategoryFilter) ([]domain.Category, error) {
	categories, err := c.categoryRepo.List(ctx, repoargs.CategoryFilter{
		ParentID: filter.ParentID,
		IsActive: filter.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// ListCategoryTree возвращает категории уровня вместе с их прямыми потомками. Фильтр активности
// применяется к обоим уровням.
func (c *CatalogService) ListCategoryTree(ctx context.Context, filter CategoryFilter) (*domain.CategoryArena, error) {
	roots, err := c.ListCategories(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return domain.NewCategoryArena(nil, nil), nil
	}

	ids := make([]int64, len(roots))
	for i, root := range roots {
		ids[i] = root.ID
	}
	children, childrenErr := c.categoryRepo.GetByParentIDs(ctx, ids, filter.IsActive)
	if childrenErr != nil {
		return nil, fmt.Errorf("listing category children: %w", childrenErr)
	}
	return domain.NewCategoryArena(roots, children), nil
}

func (c *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return category, nil
}

type ProductFilter struct {
	CategoryID *int64
	OnlyActive bool
}

func (c *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	products, err := c.productRepo.List(ctx, repoargs.ProductFilter{
		CategoryID: filter.CategoryID,
		OnlyActive: filter.OnlyActive,
	})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetProduct возвращает активный товар. Неактивный товар не отличается от отсутствующего: domain.ErrRecordNotFound.
func (c *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %d is inactive: %w", id, domain.ErrRecordNotFound)
	}
	return product, nil
}

// GetProducts возвращает найденные товары из ids, включая неактивные.
func (c *CatalogService) GetProducts(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	products, err := c.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products: %w", err)
	}
	return products, nil
}
