package service

import (
	"fmt"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

type OrderItemArgs struct {
	ProductID int64
	Quantity  int32
}

type CreateOrderArgs struct {
	Items           []OrderItemArgs
	DeliveryAddress *string
	Phone           *string
	Comment         *string
}

// distinctProductIDs возвращает id товаров корзины без повторов в порядке первого появления.
func distinctProductIDs(items []OrderItemArgs) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// validateCart проверяет корзину до обращения к базе.
func validateCart(items []OrderItemArgs) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: cart is empty", domain.ErrInvalidOrderItems)
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item #%d has quantity %d", domain.ErrInvalidOrderItems, i, item.Quantity)
		}
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: item #%d has product id %d", domain.ErrInvalidOrderItems, i, item.ProductID)
		}
	}
	return nil
}

// assembleOrder собирает заказ из корзины и найденных товаров. Строки идут в порядке корзины,
// цена и название копируются из товара, итог считается точно в decimal.
func assembleOrder(userID int64, args CreateOrderArgs, products []domain.Product) (*repoargs.CreateOrder, error) {
	ids := distinctProductIDs(args.Items)

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	if len(byID) != len(ids) {
		missing := make([]int64, 0)
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, domain.NewOrderError(domain.OrderProductNotFound, missing)
	}

	inactive := make([]int64, 0)
	for _, id := range ids {
		if !byID[id].IsActive {
			inactive = append(inactive, id)
		}
	}
	if len(inactive) > 0 {
		return nil, domain.NewOrderError(domain.OrderProductUnavailable, inactive)
	}

	total := decimal.Zero
	items := make([]repoargs.CreateOrderItem, len(args.Items))
	for i, cartItem := range args.Items {
		product := byID[cartItem.ProductID]
		items[i] = repoargs.CreateOrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    cartItem.Quantity,
			Price:       product.Price,
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt32(cartItem.Quantity)))
	}

	return &repoargs.CreateOrder{
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		TotalAmount:     total,
		DeliveryAddress: args.DeliveryAddress,
		Phone:           args.Phone,
		Comment:         args.Comment,
		Items:           items,
	}, nil
}
