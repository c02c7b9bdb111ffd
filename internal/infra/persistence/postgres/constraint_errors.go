package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "foreign key") ||
		strings.Contains(errMsg, "23503") // PostgreSQL foreign_key_violation error code
}

// uniqueViolationField extracts the offending column from a unique-violation
// error message. PostgreSQL embeds the constraint name, which our schema
// derives from the column (users_email_key, seller_profiles_shop_name_key).
func uniqueViolationField(err error) string {
	errMsg := strings.ToLower(err.Error())
	for _, field := range []string{"shop_name", "shop_id", "email", "phone"} {
		if strings.Contains(errMsg, field) {
			return field
		}
	}
	return "value"
}
