// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, profiles included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByEmailOrPhone retrieves a single user matching the identifier
	// against either the email or the phone column.
	FindByEmailOrPhone(ctx context.Context, identifier string) (*entity.User, error)

	// Create persists a new user together with its role profile.
	Create(ctx context.Context, user *entity.User, passwordHash string) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user and its dependent rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// PasswordHash returns the stored password hash for a user.
	PasswordHash(ctx context.Context, id uuid.UUID) (string, error)

	// CountByRole returns the number of users holding the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
