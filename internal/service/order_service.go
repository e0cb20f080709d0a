package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/pkg/uow"
)

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
	notifier  OrderNotifier
}

// NewOrderService создает сервис заказов. notifier может быть nil, тогда уведомления не отправляются.
func NewOrderService(u uow.UOW, notifier OrderNotifier) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		notifier:  notifier,
	}, nil
}

// Create оформляет заказ пользователя userID (telegram id).
//
// Алгоритм работы:
//  1. Одним запросом получает все различные товары корзины.
//  2. Если найдены не все товары, возвращает *domain.OrderError с причиной OrderProductNotFound,
//     если среди них есть неактивные - с причиной OrderProductUnavailable. В обоих случаях ничего не записывается.
//  3. Записывает заказ и его строки в одной транзакции.
//  4. После коммита ставит уведомление менеджеру в очередь, не дожидаясь отправки.
func (o *OrderService) Create(ctx context.Context, userID int64, args CreateOrderArgs) (*domain.Order, error) {
	if err := validateCart(args.Items); err != nil {
		return nil, err
	}

	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		products, productsErr := productRepo.GetByIDs(c, distinctProductIDs(args.Items))
		if productsErr != nil {
			return productsErr //nolint:wrapcheck
		}

		createArgs, assembleErr := assembleOrder(userID, args, products)
		if assembleErr != nil {
			return assembleErr
		}

		var createErr error
		order, createErr = orderRepo.CreateOrder(c, *createArgs)
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}

	if o.notifier != nil {
		o.notifier.Enqueue(*order)
	}
	return order, nil
}

// GetByID возвращает заказ orderID, только если он принадлежит userID. Иначе domain.ErrRecordNotFound.
func (o *OrderService) GetByID(ctx context.Context, orderID, userID int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, repoargs.FindOrder{ID: orderID, UserID: &userID})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// GetByUserID Возвращает заказы от userID отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
