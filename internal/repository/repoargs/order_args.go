package repoargs

import (
	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateOrder заказ, готовый к записи. Total и цены строк уже посчитаны.
type CreateOrder struct {
	UserID          int64
	Status          domain.OrderStatusType
	TotalAmount     decimal.Decimal
	DeliveryAddress *string
	Phone           *string
	Comment         *string
	Items           []CreateOrderItem
}

type CreateOrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
}

// FindOrder параметры поиска заказа. Если UserID задан, заказ ищется только среди заказов этого пользователя.
type FindOrder struct {
	ID     int64
	UserID *int64
}
