package apperrors

import "errors"

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInactiveUser       = errors.New("inactive user")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotTeacher       = errors.New("you are not a teacher")
	ErrNotStudent       = errors.New("you are not a student")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrReservedName     = errors.New("name is reserved and cannot be registered")
	ErrConfusableName   = errors.New("name cannot be registered")
	ErrPasswordBreached = errors.New("password found in a known data breach")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
)

// Catalog and classroom conflicts
var (
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrAlreadyReviewed    = errors.New("already reviewed")
	ErrAlreadyBookmarked  = errors.New("already bookmarked")
	ErrAlreadyCreated     = errors.New("already created")
	ErrEnrollmentRequired = errors.New("enrollment required")
)

// External collaborator errors
var (
	ErrExternalService = errors.New("external service unavailable")
	ErrPaymentFailed   = errors.New("payment failed")
)

// CustomError carries a sentinel plus extra context for a specific failure.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a resource-not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
