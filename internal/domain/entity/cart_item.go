package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one (customer, product) row in a cart. Re-adding the same
// product accumulates quantity on the existing row instead of creating a
// second one.
type CartItem struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	Product    *Product  `json:"product,omitempty"` // live snapshot, not frozen at add time
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
