package domain

type OrderStatusType string

const (
	OrderStatusPending   OrderStatusType = "pending"
	OrderStatusConfirmed OrderStatusType = "confirmed"
	OrderStatusShipped   OrderStatusType = "shipped"
	OrderStatusDelivered OrderStatusType = "delivered"
	OrderStatusCancelled OrderStatusType = "cancelled"
)
