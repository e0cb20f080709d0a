package service

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/internal/service/mocks"
	"github.com/fsdevblog/botshop/pkg/uow"
	uowmocks "github.com/fsdevblog/botshop/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockOrderRepo   *mocks.MockOrderRepository
	mockProductRepo *mocks.MockProductRepository
	mockNotifier    *mocks.MockOrderNotifier
	orderService    *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(s.mockCtrl)
	s.mockNotifier = mocks.NewMockOrderNotifier(s.mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	// Транзакция просто выполняет переданную функцию.
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).Return(s.mockProductRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).Return(s.mockOrderRepo, nil).AnyTimes()

	orderService, servErr := NewOrderService(s.mockUOW, s.mockNotifier)
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// persistedOrder имитирует запись заказа в БД.
func persistedOrder(args repoargs.CreateOrder) *domain.Order {
	order := &domain.Order{
		ID:              10,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		UserID:          args.UserID,
		Status:          args.Status,
		TotalAmount:     args.TotalAmount,
		DeliveryAddress: args.DeliveryAddress,
		Phone:           args.Phone,
		Comment:         args.Comment,
	}
	for i, item := range args.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          int64(i + 1),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return order
}

func (s *OrderServiceTestSuite) TestCreate() {
	address := "Moscow, Tverskaya 1"
	products := []domain.Product{
		{ID: 7, Name: "Чай", Price: decimal.RequireFromString("50.00"), IsActive: true},
	}

	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{7}).Return(products, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			return persistedOrder(args), nil
		})
	s.mockNotifier.EXPECT().Enqueue(gomock.Any()).Return(true)

	order, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items:           []OrderItemArgs{{ProductID: 7, Quantity: 2}},
		DeliveryAddress: &address,
	})
	s.Require().NoError(err)
	s.Equal(int64(42), order.UserID)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Equal("100.00", order.TotalAmount.StringFixed(2))
	s.Require().Len(order.Items, 1)
	s.Equal("Чай", order.Items[0].ProductName)
	s.Equal(address, *order.DeliveryAddress)
}

func (s *OrderServiceTestSuite) TestCreateExactTotal() {
	price := decimal.RequireFromString("19.99")
	products := []domain.Product{
		{ID: 1, Name: "A", Price: price, IsActive: true},
		{ID: 2, Name: "B", Price: price, IsActive: true},
		{ID: 3, Name: "C", Price: price, IsActive: true},
	}

	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{1, 2, 3}).Return(products, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			s.True(args.TotalAmount.Equal(decimal.RequireFromString("119.94")))
			return persistedOrder(args), nil
		})
	s.mockNotifier.EXPECT().Enqueue(gomock.Any()).Return(true)

	order, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items: []OrderItemArgs{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
			{ProductID: 3, Quantity: 3},
		},
	})
	s.Require().NoError(err)
	s.Equal("119.94", order.TotalAmount.StringFixed(2))

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.LineTotal())
	}
	s.True(sum.Equal(order.TotalAmount))
}

func (s *OrderServiceTestSuite) TestCreateProductNotFound() {
	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{7, 8}).
		Return([]domain.Product{{ID: 7, Price: decimal.NewFromInt(1), IsActive: true}}, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
	s.mockNotifier.EXPECT().Enqueue(gomock.Any()).Times(0)

	_, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items: []OrderItemArgs{{ProductID: 7, Quantity: 1}, {ProductID: 8, Quantity: 1}},
	})
	s.True(domain.IsOrderReason(err, domain.OrderProductNotFound))
}

func (s *OrderServiceTestSuite) TestCreateProductUnavailable() {
	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{7, 8}).Return([]domain.Product{
		{ID: 7, Price: decimal.NewFromInt(1), IsActive: true},
		{ID: 8, Price: decimal.NewFromInt(1), IsActive: false},
	}, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
	s.mockNotifier.EXPECT().Enqueue(gomock.Any()).Times(0)

	_, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items: []OrderItemArgs{{ProductID: 7, Quantity: 1}, {ProductID: 8, Quantity: 1}},
	})
	s.True(domain.IsOrderReason(err, domain.OrderProductUnavailable))
}

func (s *OrderServiceTestSuite) TestCreateEmptyCart() {
	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{})
	s.ErrorIs(err, domain.ErrInvalidOrderItems)
}

func (s *OrderServiceTestSuite) TestCreatePersistenceError() {
	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{7}).
		Return([]domain.Product{{ID: 7, Price: decimal.NewFromInt(1), IsActive: true}}, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUnknown)
	s.mockNotifier.EXPECT().Enqueue(gomock.Any()).Times(0)

	_, err := s.orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items: []OrderItemArgs{{ProductID: 7, Quantity: 1}},
	})
	s.ErrorIs(err, domain.ErrUnknown)
}

func (s *OrderServiceTestSuite) TestCreateWithoutNotifier() {
	orderService, err := NewOrderService(s.mockUOW, nil)
	s.Require().NoError(err)

	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), []int64{7}).
		Return([]domain.Product{{ID: 7, Price: decimal.NewFromInt(1), IsActive: true}}, nil)
	s.mockOrderRepo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			return persistedOrder(args), nil
		})

	_, createErr := orderService.Create(context.Background(), 42, CreateOrderArgs{
		Items: []OrderItemArgs{{ProductID: 7, Quantity: 1}},
	})
	s.NoError(createErr)
}

func (s *OrderServiceTestSuite) TestGetByIDScopedToOwner() {
	owner := int64(42)
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), repoargs.FindOrder{ID: 10, UserID: &owner}).
		Return(&domain.Order{ID: 10, UserID: owner}, nil)

	order, err := s.orderService.GetByID(context.Background(), 10, owner)
	s.Require().NoError(err)
	s.Equal(owner, order.UserID)

	stranger := int64(43)
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), repoargs.FindOrder{ID: 10, UserID: &stranger}).
		Return(nil, domain.ErrRecordNotFound)

	_, err = s.orderService.GetByID(context.Background(), 10, stranger)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *OrderServiceTestSuite) TestGetByUserID() {
	orders := []domain.Order{{ID: 2, UserID: 42}, {ID: 1, UserID: 42}}
	s.mockOrderRepo.EXPECT().GetByUserID(gomock.Any(), int64(42)).Return(orders, nil)

	res, err := s.orderService.GetByUserID(context.Background(), 42)
	s.Require().NoError(err)
	s.Equal(orders, res)
}
