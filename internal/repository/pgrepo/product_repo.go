package pgrepo

import (
	"context"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const productSelect = `SELECT p.id, p.name, p.description, p.price, p.images, p.category_id, p.is_active, p.sort_order,
		c.id, c.name, c.slug
	FROM products p
	JOIN categories c ON c.id = p.category_id`

type ProductRepository struct {
	conn uow.DBTX
}

func NewProductRepository(conn uow.DBTX) *ProductRepository {
	return &ProductRepository{conn: conn}
}

// List возвращает товары, отсортированные по sort_order и имени.
func (p *ProductRepository) List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error) {
	rows, err := p.conn.Query(ctx,
		productSelect+`
		WHERE ($1::bigint IS NULL OR p.category_id = $1)
			AND (NOT $2::boolean OR p.is_active)
		ORDER BY p.sort_order, p.name`,
		filter.CategoryID, filter.OnlyActive,
	)
	if err != nil {
		return nil, convertErr(err, "listing products")
	}
	products, collectErr := pgx.CollectRows(rows, collectProduct)
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing products")
	}
	return products, nil
}

// FindByID ищет товар по id независимо от его активности.
func (p *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := scanProduct(p.conn.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding product by id %d", id)
	}
	return &product, nil
}

// GetByIDs возвращает найденные товары из ids, включая неактивные. Отсутствующие id просто не попадают в результат.
func (p *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	rows, err := p.conn.Query(ctx, productSelect+` WHERE p.id = ANY($1) ORDER BY p.id`, ids)
	if err != nil {
		return nil, convertErr(err, "getting products by ids `%v`", ids)
	}
	products, collectErr := pgx.CollectRows(rows, collectProduct)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting products by ids `%v`", ids)
	}
	return products, nil
}

func collectProduct(row pgx.CollectableRow) (domain.Product, error) {
	return scanProduct(row)
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var pr domain.Product
	err := row.Scan(
		&pr.ID,
		&pr.Name,
		&pr.Description,
		&pr.Price,
		&pr.Images,
		&pr.CategoryID,
		&pr.IsActive,
		&pr.SortOrder,
		&pr.Category.ID,
		&pr.Category.Name,
		&pr.Category.Slug,
	)
	return pr, err //nolint:wrapcheck
}
