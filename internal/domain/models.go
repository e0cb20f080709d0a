package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

// User пользователь магазина. Идентифицируется по TelegramID, ID - внутренний ключ строки.
type User struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64
	Username   *string
	FirstName  *string
	LastName   *string
}

type Category struct {
	ID         int64
	Name       string
	Slug       string
	SortOrder  int32
	ParentID   *int64
	IsActive   bool
	IsInfoOnly bool
	ComingSoon bool
}

// ProductCategory краткое представление категории товара.
type ProductCategory struct {
	ID   int64
	Name string
	Slug string
}

type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal
	Images      []string
	CategoryID  int64
	Category    ProductCategory
	IsActive    bool
	SortOrder   int32
}

// Order заказ. UserID - это telegram id владельца, а не внутренний ID пользователя.
type Order struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          int64
	Status          OrderStatusType
	TotalAmount     decimal.Decimal
	DeliveryAddress *string
	Phone           *string
	Comment         *string
	Items           []OrderItem
}

// OrderItem строка заказа. Название и цена товара копируются на момент оформления и
// не зависят от последующих изменений каталога.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
}

// LineTotal стоимость строки заказа.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}
