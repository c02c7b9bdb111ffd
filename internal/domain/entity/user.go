package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity. Every account carries exactly one role;
// the matching profile pointer is set and the other stays nil.
type User struct {
	ID              uuid.UUID        `json:"id"`
	FullName        string           `json:"fullName"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Role            Role             `json:"role"`
	SellerProfile   *SellerProfile   `json:"sellerProfile,omitempty"`
	CustomerProfile *CustomerProfile `json:"customerProfile,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// SellerProfile is the shop-identity record attached 1:1 to a seller user.
type SellerProfile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ShopName  string    `json:"shopName"`
	ShopID    string    `json:"shopId"` // generated, e.g. "SHOP-MB3K2F1A"
	Division  string    `json:"division"`
	District  string    `json:"district"`
	Area      string    `json:"area"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerProfile holds data specific to the customer role.
type CustomerProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	DefaultAddress string    `json:"defaultAddress"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
