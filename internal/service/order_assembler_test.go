package service

import (
	"testing"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderAssemblerTestSuite struct {
	suite.Suite
}

func TestOrderAssemblerSuite(t *testing.T) {
	suite.Run(t, new(OrderAssemblerTestSuite))
}

func (s *OrderAssemblerTestSuite) TestDistinctProductIDs() {
	ids := distinctProductIDs([]OrderItemArgs{
		{ProductID: 3}, {ProductID: 1}, {ProductID: 3}, {ProductID: 2}, {ProductID: 1},
	})
	s.Equal([]int64{3, 1, 2}, ids)
}

func (s *OrderAssemblerTestSuite) TestValidateCart() {
	s.ErrorIs(validateCart(nil), domain.ErrInvalidOrderItems)
	s.ErrorIs(validateCart([]OrderItemArgs{{ProductID: 1, Quantity: 0}}), domain.ErrInvalidOrderItems)
	s.ErrorIs(validateCart([]OrderItemArgs{{ProductID: 0, Quantity: 1}}), domain.ErrInvalidOrderItems)
	s.NoError(validateCart([]OrderItemArgs{{ProductID: 1, Quantity: 1}}))
}

// Повтор товара в корзине дает отдельные строки, цены берутся из каталога, а не от клиента.
func (s *OrderAssemblerTestSuite) TestAssembleKeepsCartOrder() {
	products := []domain.Product{
		{ID: 1, Name: "Кофе", Price: decimal.RequireFromString("10.10"), IsActive: true},
		{ID: 2, Name: "Чай", Price: decimal.RequireFromString("0.30"), IsActive: true},
	}
	args := CreateOrderArgs{Items: []OrderItemArgs{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	}}

	order, err := assembleOrder(42, args, products)
	s.Require().NoError(err)
	s.Require().Len(order.Items, 3)
	s.Equal(int64(2), order.Items[0].ProductID)
	s.Equal(int64(1), order.Items[1].ProductID)
	s.Equal(int64(2), order.Items[2].ProductID)
	s.Equal("Кофе", order.Items[1].ProductName)
	// 0.30 + 30.30 + 0.60
	s.Equal("31.20", order.TotalAmount.StringFixed(2))
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Equal(int64(42), order.UserID)
}

func (s *OrderAssemblerTestSuite) TestAssembleErrors() {
	active := domain.Product{ID: 1, Price: decimal.NewFromInt(1), IsActive: true}
	inactive := domain.Product{ID: 2, Price: decimal.NewFromInt(1), IsActive: false}
	args := CreateOrderArgs{Items: []OrderItemArgs{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}}

	_, err := assembleOrder(42, args, []domain.Product{active})
	s.Require().True(domain.IsOrderReason(err, domain.OrderProductNotFound))
	var orderErr *domain.OrderError
	s.Require().ErrorAs(err, &orderErr)
	s.Equal([]int64{2}, orderErr.ProductIDs)

	_, err = assembleOrder(42, args, []domain.Product{active, inactive})
	s.True(domain.IsOrderReason(err, domain.OrderProductUnavailable))
}
