package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationErrorFormatsFieldErrors(t *testing.T) {
	validate := validator.New()
	validate.SetTagName("binding")
	err := validate.Struct(RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "a-long-safe-password",
		Become:   "Admin",
	})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Become", detail.Field)

	messages, ok := detail.Details.([]string)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "Become must be one of: Teacher Student", messages[0])
}

func TestHandleValidationErrorFallsBackForPlainErrors(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "unexpected EOF", detail.Message)
}
