package pgrepo

import (
	"context"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, slug, sort_order, parent_id, is_active, is_info_only, coming_soon`

type CategoryRepository struct {
	conn uow.DBTX
}

func NewCategoryRepository(conn uow.DBTX) *CategoryRepository {
	return &CategoryRepository{conn: conn}
}

// List возвращает категории, отсортированные по sort_order и имени. Без ParentID возвращаются только корневые.
func (c *CategoryRepository) List(ctx context.Context, filter repoargs.CategoryFilter) ([]domain.Category, error) {
	rows, err := c.conn.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories
		WHERE (($1::bigint IS NULL AND parent_id IS NULL) OR parent_id = $1)
			AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY sort_order, name`,
		filter.ParentID, filter.IsActive,
	)
	if err != nil {
		return nil, convertErr(err, "listing categories")
	}
	categories, collectErr := pgx.CollectRows(rows, collectCategory)
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing categories")
	}
	return categories, nil
}

// GetByParentIDs возвращает прямых потомков категорий parentIDs.
func (c *CategoryRepository) GetByParentIDs(
	ctx context.Context,
	parentIDs []int64,
	isActive *bool,
) ([]domain.Category, error) {
	rows, err := c.conn.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories
		WHERE parent_id = ANY($1) AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY sort_order, name`,
		parentIDs, isActive,
	)
	if err != nil {
		return nil, convertErr(err, "getting categories by parent ids `%v`", parentIDs)
	}
	categories, collectErr := pgx.CollectRows(rows, collectCategory)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting categories by parent ids `%v`", parentIDs)
	}
	return categories, nil
}

func (c *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := c.conn.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "finding category by id %d", id)
	}
	return &category, nil
}

func collectCategory(row pgx.CollectableRow) (domain.Category, error) {
	return scanCategory(row)
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.ParentID, &c.IsActive, &c.IsInfoOnly, &c.ComingSoon)
	return c, err //nolint:wrapcheck
}
