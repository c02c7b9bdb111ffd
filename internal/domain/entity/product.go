package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the stock state of a listing.
type ProductStatus string

const (
	// ProductInStock marks a listing as purchasable.
	ProductInStock ProductStatus = "in_stock"
	// ProductOutOfStock marks a listing as depleted or manually disabled.
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	return s == ProductInStock || s == ProductOutOfStock
}

// Product is a seller-owned catalog listing.
//
// Status must be out_of_stock whenever Quantity is 0. Checkout drives the
// in_stock -> out_of_stock transition automatically; the reverse never
// happens automatically (restocking is an explicit update).
type Product struct {
	ID            uuid.UUID     `json:"id"`
	SellerID      uuid.UUID     `json:"sellerId"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	NutritionInfo string        `json:"nutritionInfo,omitempty"`
	Images        []string      `json:"images"`
	Price         float64       `json:"price"`
	Unit          string        `json:"unit"`
	Quantity      int           `json:"quantity"`
	Status        ProductStatus `json:"status"`
	PostedAt      time.Time     `json:"postedAt"`
	Seller        *User         `json:"seller,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
