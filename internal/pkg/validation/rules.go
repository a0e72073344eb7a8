// Package validation holds the identity validation rules applied at
// registration and profile updates: reserved names, homograph
// detection, and field format checks.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

// Field patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\-\p{L}]{2,150}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// PasswordPolicy carries the configured password length bounds.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

// ValidateUsername applies format, reserved-name and homograph checks.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return apperrors.NewValidationError("username must be 2-150 characters of letters, digits, dots, hyphens or underscores")
	}
	if IsReservedName(strings.ToLower(username)) {
		return fmt.Errorf("%w: %s is reserved and cannot be registered", apperrors.ErrReservedName, username)
	}
	if IsDangerous(username) {
		return fmt.Errorf("%w: this name cannot be registered, please choose a different name", apperrors.ErrConfusableName)
	}
	return nil
}

// ValidateEmail applies format, reserved local-part and homograph
// checks. The local part and domain are judged independently for
// confusables.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email address")
	}
	localPart, domain, _ := strings.Cut(email, "@")
	if IsReservedName(strings.ToLower(localPart)) {
		return fmt.Errorf("%w: %s is reserved and cannot be registered", apperrors.ErrReservedName, localPart)
	}
	if IsDangerousEmail(localPart, domain) {
		return fmt.Errorf("%w: this email address cannot be registered, please supply a different email address", apperrors.ErrConfusableName)
	}
	return nil
}

// ValidatePhoneNumber checks an optional phone number: 9 to 15 digits
// with an optional leading plus.
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return apperrors.NewValidationError("phone number must be 9-15 digits with an optional leading +")
	}
	return nil
}

// ValidatePasswordLength checks the configured length bounds.
func (p PasswordPolicy) ValidatePasswordLength(password string) error {
	if len(password) < p.MinLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at most %d characters long", p.MaxLength))
	}
	return nil
}
