package service

import (
	"fmt"

	"github.com/fsdevblog/botshop/pkg/uow"
)

type AppServices struct {
	AuthService    *AuthService
	OrderService   *OrderService
	CatalogService *CatalogService
}

// Factory создает сервисы приложения. notifier может быть nil.
func Factory(unitOfWork uow.UOW, verifier InitDataVerifier, notifier OrderNotifier) (*AppServices, error) {
	authService, authServiceErr := NewAuthService(unitOfWork, verifier)
	if authServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", authServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork, notifier)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	catalogService, catalogServiceErr := NewCatalogService(unitOfWork)
	if catalogServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogServiceErr.Error())
	}

	return &AppServices{
		AuthService:    authService,
		OrderService:   orderService,
		CatalogService: catalogService,
	}, nil
}
