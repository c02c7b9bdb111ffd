package usecase

import (
	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// Caller is the authenticated identity resolved by the session middleware.
// Use cases receive it explicitly instead of digging through the request
// context, which keeps authorization decisions visible at call sites.
type Caller struct {
	ID   uuid.UUID
	Role entity.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// IsSeller reports whether the caller holds the seller role.
func (c Caller) IsSeller() bool {
	return c.Role == entity.RoleSeller
}

// IsCustomer reports whether the caller holds the customer role.
func (c Caller) IsCustomer() bool {
	return c.Role == entity.RoleCustomer
}
