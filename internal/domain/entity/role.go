// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user holds. It is fixed at creation
// and never changes afterwards.
type Role string

const (
	// RoleCustomer indicates a buying customer.
	RoleCustomer Role = "customer"
	// RoleSeller indicates a shop owner.
	RoleSeller Role = "seller"
	// RoleAdmin indicates a marketplace administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}
