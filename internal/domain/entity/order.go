package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInDelivery OrderStatus = "in_delivery"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderInDelivery, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus is the payment state of an order. No gateway is integrated;
// the field exists for bookkeeping and stays pending in practice.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Order is a customer purchase. Checkout creates one order per distinct
// product line; Total always equals the sum of quantity x unitPrice over its
// items. Status may only leave pending.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	CustomerID      uuid.UUID     `json:"customerId"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	Total           float64       `json:"total"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Phone           string        `json:"phone"`
	ReceiptURL      string        `json:"receiptUrl,omitempty"`
	Items           []*OrderItem  `json:"items"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderItem is a frozen (product, quantity, unit price) snapshot belonging to
// one order. UnitPrice is the price at order time, not the live price.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
