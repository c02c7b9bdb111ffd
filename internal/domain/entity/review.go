package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer-authored rating tied to a (product, seller, customer)
// triple. It is immutable after creation and carries no uniqueness rule: the
// same customer may review the same product repeatedly.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	SellerID   uuid.UUID `json:"sellerId"`
	CustomerID uuid.UUID `json:"customerId"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	Product    *Product  `json:"product,omitempty"`
	Customer   *User     `json:"customer,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
