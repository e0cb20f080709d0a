package api

import (
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/shopspring/decimal"
)

// moneyPlaces кол-во знаков после запятой в денежных суммах ответа.
const moneyPlaces = 2

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

type CategoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	SortOrder  int32  `json:"sort_order"`
	ParentID   *int64 `json:"parent_id"`
	IsActive   bool   `json:"is_active"`
	IsInfoOnly bool   `json:"is_info_only"`
	ComingSoon bool   `json:"coming_soon"`
}

type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

func newCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
		SortOrder:  c.SortOrder,
		ParentID:   c.ParentID,
		IsActive:   c.IsActive,
		IsInfoOnly: c.IsInfoOnly,
		ComingSoon: c.ComingSoon,
	}
}

func newCategoryTreeResponse(arena *domain.CategoryArena) []CategoryTreeResponse {
	roots := arena.Roots()
	res := make([]CategoryTreeResponse, len(roots))
	for i, root := range roots {
		children := arena.Children(root.ID)
		res[i] = CategoryTreeResponse{
			CategoryResponse: newCategoryResponse(root),
			Children:         make([]CategoryResponse, len(children)),
		}
		for j, child := range children {
			res[i].Children[j] = newCategoryResponse(child)
		}
	}
	return res
}

type ProductCategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Price       string                  `json:"price"`
	Images      []string                `json:"images"`
	CategoryID  int64                   `json:"category_id"`
	IsActive    bool                    `json:"is_active"`
	SortOrder   int32                   `json:"sort_order"`
	Category    ProductCategoryResponse `json:"category"`
}

func newProductResponse(p domain.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Images:      images,
		CategoryID:  p.CategoryID,
		IsActive:    p.IsActive,
		SortOrder:   p.SortOrder,
		Category: ProductCategoryResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
	}
}

type UserResponse struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   *string   `json:"username"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		CreatedAt:  u.CreatedAt,
	}
}

type OrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	Price       string `json:"price"`
}

type OrderResponse struct {
	ID              int64                  `json:"id"`
	UserID          int64                  `json:"user_id"`
	Status          domain.OrderStatusType `json:"status"`
	TotalAmount     string                 `json:"total_amount"`
	DeliveryAddress *string                `json:"delivery_address"`
	Phone           *string                `json:"phone"`
	Comment         *string                `json:"comment"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Items           []OrderItemResponse    `json:"items"`
}

func newOrderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       money(item.Price),
		}
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalAmount:     money(o.TotalAmount),
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Comment:         o.Comment,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}
