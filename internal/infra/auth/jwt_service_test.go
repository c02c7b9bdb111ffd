package auth

import (
	"testing"
	"time"

	"bazar/config"
	"bazar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig(secret string, ttl time.Duration) *config.Config {
	return &config.Config{
		Session: &config.SessionConfig{
			Secret: secret,
			TTL:    ttl,
		},
	}
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", time.Hour))
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.GenerateToken(userID, entity.RoleSeller)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleSeller, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", time.Hour))
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", -time.Minute))
	assert.NoError(t, err)

	// A negative TTL falls back to the default lifetime, so force expiry by
	// building a service with a tiny positive TTL instead.
	shortLived, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", time.Nanosecond))
	assert.NoError(t, err)

	token, err := shortLived.GenerateToken(uuid.New(), entity.RoleCustomer)
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	claims, err := jwtService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testConfig("issuer_secret_key_very_long_for_testing", time.Hour))
	assert.NoError(t, err)

	verifier, err := NewJWTService(testConfig("different_secret_key_very_long_for_testing", time.Hour))
	assert.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), entity.RoleAdmin)
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "session secret must be provided")
}

func TestJWTService_SessionTTL(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", 0))
	assert.NoError(t, err)

	// Zero TTL falls back to the default session lifetime.
	assert.Equal(t, time.Hour*24*7, jwtService.SessionTTL())

	jwtService, err = NewJWTService(testConfig("test_session_secret_key_very_long_for_testing", time.Hour*2))
	assert.NoError(t, err)
	assert.Equal(t, time.Hour*2, jwtService.SessionTTL())
}
