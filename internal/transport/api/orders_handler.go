package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/botshop/internal/service"
	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int32 `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress *string                  `json:"delivery_address" binding:"omitempty,max=512"`
	Phone           *string                  `json:"phone" binding:"omitempty,max=50,phone_chars"`
	Comment         *string                  `json:"comment" binding:"omitempty,max=1000"`
}

// Create POST RouteGroup + OrdersRoute.
func (o *OrdersHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	args := service.CreateOrderArgs{
		Items:           make([]service.OrderItemArgs, len(req.Items)),
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Comment:         req.Comment,
	}
	for i, item := range req.Items {
		args.Items[i] = service.OrderItemArgs{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.Create(reqCtx, user.TelegramID, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

// My GET RouteGroup + MyOrdersRoute.
func (o *OrdersHandler) My(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetByUserID(reqCtx, user.TelegramID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = newOrderResponse(order)
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + OrderRoute. Чужой заказ неотличим от несуществующего.
func (o *OrdersHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, idOK := bindID(c)
	if !idOK {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.GetByID(reqCtx, id, user.TelegramID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}
