package utils

import (
	"testing"
	"time"

	appErrors "pinpoint-accounts/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("123456"))
	assert.ErrorIs(t, ValidatePassword("12345"), appErrors.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword(""), appErrors.ErrWeakPassword)
}

func TestGenerateAndValidateToken(t *testing.T) {
	accountID := uuid.New()

	token, err := GenerateToken(accountID, "ada@example.com", "secret", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, accountID.String(), claims.Subject)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "ada@example.com", "secret", -time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestValidationMessage(t *testing.T) {
	type demo struct {
		FirstName string `validate:"required"`
		Email     string `validate:"required,email"`
	}

	err := ValidateStruct(&demo{Email: "ada@example.com"})
	require.Error(t, err)
	assert.Equal(t, "firstName field missing", ValidationMessage(err))

	err = ValidateStruct(&demo{FirstName: "Ada", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email address", ValidationMessage(err))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", SanitizeEmail("  ADA@Example.COM "))
	assert.Equal(t, "ada@example.com", SanitizeEmail("<b>ada@example.com</b>"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ada@example.com"))
	assert.False(t, IsValidEmail("ada@example"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestValidateAndSanitizeEmail(t *testing.T) {
	email, err := ValidateAndSanitizeEmail("  ADA@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	_, err = ValidateAndSanitizeEmail("not-an-email")
	assert.ErrorIs(t, err, appErrors.ErrInvalidEmail)
}
