// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterCustomerInput defines the data required to register a new customer.
type RegisterCustomerInput struct {
	FullName       string
	Email          string
	Phone          string
	Password       string
	DefaultAddress string
}

// CreateSellerInput defines the data an admin submits to open a new shop.
type CreateSellerInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	ShopName string
	Division string
	District string
	Area     string
}

// LoginInput defines the data required to log in. Identifier matches either
// the email or the phone column.
type LoginInput struct {
	Identifier string
	Password   string
}

// UpdateAccountInput defines the partial update of the caller's own account.
// Nil pointers leave the previous value untouched.
type UpdateAccountInput struct {
	FullName *string
	Phone    *string
}

// --- Output DTOs ---

// LoginOutput returns the session token after a successful login together
// with a role-based redirect hint for the frontend.
type LoginOutput struct {
	Token      string
	User       *entity.User
	RedirectTo string
}

// IdentityUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type IdentityUsecase interface {
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*entity.User, error)
	CreateSeller(ctx context.Context, caller Caller, input CreateSellerInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Me(ctx context.Context, caller Caller) (*entity.User, error)
	UpdateAccount(ctx context.Context, caller Caller, input UpdateAccountInput) (*entity.User, error)
}
