package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

func TestIsReservedName(t *testing.T) {
	reserved := []string{
		"admin", "root", "localhost", "www", "postmaster",
		"webmaster", "hostmaster", "noreply", "security",
		".well-known", ".well-known/acme-challenge",
	}
	for _, name := range reserved {
		assert.True(t, IsReservedName(name), "expected %q to be reserved", name)
	}

	allowed := []string{"gopher", "jane.doe", "wellknown", "adminsarah"}
	for _, name := range allowed {
		assert.False(t, IsReservedName(name), "expected %q to be allowed", name)
	}
}

func TestIsDangerous(t *testing.T) {
	// Latin with a Cyrillic lookalike "а"
	assert.True(t, IsDangerous("pаypal"))
	// Latin with a Greek lookalike omicron
	assert.True(t, IsDangerous("gοogle"))

	// Single-script values are fine regardless of script
	assert.False(t, IsDangerous("paypal"))
	assert.False(t, IsDangerous("пример"))
	assert.False(t, IsDangerous("παράδειγμα"))
	assert.False(t, IsDangerous(""))
}

func TestIsDangerousEmail(t *testing.T) {
	assert.True(t, IsDangerousEmail("pаypal", "example.com"))
	assert.True(t, IsDangerousEmail("billing", "pаypal.com"))
	assert.False(t, IsDangerousEmail("jane", "example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("gopher"))
	assert.NoError(t, ValidateUsername("jane.doe-42"))
	assert.NoError(t, ValidateUsername("пример"))

	err := ValidateUsername("x")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = ValidateUsername("has spaces")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = ValidateUsername("Admin")
	assert.ErrorIs(t, err, apperrors.ErrReservedName)

	err = ValidateUsername("pаypal")
	assert.ErrorIs(t, err, apperrors.ErrConfusableName)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))

	err := ValidateEmail("not-an-email")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = ValidateEmail("root@example.com")
	assert.ErrorIs(t, err, apperrors.ErrReservedName)

	err = ValidateEmail("pаypal@example.com")
	assert.ErrorIs(t, err, apperrors.ErrConfusableName)
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, ValidatePhoneNumber(""))
	assert.NoError(t, ValidatePhoneNumber("+905551234567"))
	assert.NoError(t, ValidatePhoneNumber("555123456"))

	assert.ErrorIs(t, ValidatePhoneNumber("12345"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidatePhoneNumber("not-a-number"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidatePhoneNumber("+1234567890123456"), apperrors.ErrValidationFailed)
}

func TestValidatePasswordLength(t *testing.T) {
	policy := PasswordPolicy{MinLength: 8, MaxLength: 16}

	assert.NoError(t, policy.ValidatePasswordLength("12345678"))
	assert.ErrorIs(t, policy.ValidatePasswordLength("1234567"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, policy.ValidatePasswordLength("12345678901234567"), apperrors.ErrValidationFailed)

	unbounded := PasswordPolicy{MinLength: 8}
	assert.NoError(t, unbounded.ValidatePasswordLength("a-very-long-password-is-still-fine"))
}
