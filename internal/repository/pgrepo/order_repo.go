package pgrepo

import (
	"context"
	"errors"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const (
	orderColumns = `id, created_at, updated_at, user_id, status::text, total_amount, delivery_address, phone, comment`
	itemColumns  = `id, order_id, product_id, product_name, quantity, price`
)

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// CreateOrder записывает заказ и все его строки. Строки отправляются одним батчем. Атомарность обеспечивает
// вызывающая сторона через транзакцию uow.
func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	if len(args.Items) == 0 {
		return nil, convertErr(domain.ErrInvalidOrderItems, "creating order for user %d", args.UserID)
	}

	row := o.conn.QueryRow(ctx,
		`INSERT INTO orders (user_id, status, total_amount, delivery_address, phone, comment)
		VALUES ($1, $2::order_status_type, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		args.UserID, string(args.Status), args.TotalAmount, args.DeliveryAddress, args.Phone, args.Comment,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for user %d", args.UserID)
	}

	batch := new(pgx.Batch)
	for _, item := range args.Items {
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+itemColumns,
			order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price,
		)
	}
	br := o.conn.SendBatch(ctx, batch)

	order.Items = make([]domain.OrderItem, 0, len(args.Items))
	for i := range args.Items {
		item, itemErr := scanOrderItem(br.QueryRow())
		if itemErr != nil {
			return nil, errors.Join(
				convertErr(itemErr, "creating order item #%d for order %d", i, order.ID),
				br.Close(),
			)
		}
		order.Items = append(order.Items, item)
	}
	if closeErr := br.Close(); closeErr != nil {
		return nil, convertErr(closeErr, "creating order items for order %d", order.ID)
	}
	return &order, nil
}

// FindByID ищет заказ вместе со строками. Если задан args.UserID, чужой заказ не находится
// и возвращается domain.ErrRecordNotFound.
func (o *OrderRepository) FindByID(ctx context.Context, args repoargs.FindOrder) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND ($2::bigint IS NULL OR user_id = $2)`,
		args.ID, args.UserID,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", args.ID)
	}

	items, itemsErr := o.getItems(ctx, []int64{order.ID})
	if itemsErr != nil {
		return nil, itemsErr
	}
	order.Items = items[order.ID]
	return &order, nil
}

// GetByUserID возвращает заказы пользователя со строками, отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting orders by user id %d", userID)
	}
	orders, collectErr := pgx.CollectRows(rows, collectOrder)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting orders by user id %d", userID)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}
	items, itemsErr := o.getItems(ctx, ids)
	if itemsErr != nil {
		return nil, itemsErr
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// getItems возвращает строки заказов orderIDs, сгруппированные по id заказа, в порядке добавления.
func (o *OrderRepository) getItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := o.conn.Query(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`,
		orderIDs,
	)
	if err != nil {
		return nil, convertErr(err, "getting items for orders `%v`", orderIDs)
	}
	items, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		return scanOrderItem(row)
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting items for orders `%v`", orderIDs)
	}

	grouped := make(map[int64][]domain.OrderItem, len(orderIDs))
	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped, nil
}

func collectOrder(row pgx.CollectableRow) (domain.Order, error) {
	return scanOrder(row)
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		order  domain.Order
		status string
	)
	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&status,
		&order.TotalAmount,
		&order.DeliveryAddress,
		&order.Phone,
		&order.Comment,
	); err != nil {
		return order, err //nolint:wrapcheck
	}
	order.Status = domain.OrderStatusType(status)
	return order, nil
}

func scanOrderItem(row pgx.Row) (domain.OrderItem, error) {
	var item domain.OrderItem
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price)
	return item, err //nolint:wrapcheck
}
