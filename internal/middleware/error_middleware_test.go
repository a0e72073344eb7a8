package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/probe", nil)
	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusUnprocessableEntity},
		{"reserved name", apperrors.ErrReservedName, http.StatusUnprocessableEntity},
		{"confusable name", apperrors.ErrConfusableName, http.StatusUnprocessableEntity},
		{"breached password", apperrors.ErrPasswordBreached, http.StatusUnprocessableEntity},
		{"external service", apperrors.ErrExternalService, http.StatusUnprocessableEntity},
		{"username taken", apperrors.ErrUsernameTaken, http.StatusBadRequest},
		{"email taken", apperrors.ErrEmailTaken, http.StatusBadRequest},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusBadRequest},
		{"already reviewed", apperrors.ErrAlreadyReviewed, http.StatusBadRequest},
		{"already bookmarked", apperrors.ErrAlreadyBookmarked, http.StatusBadRequest},
		{"already created", apperrors.ErrAlreadyCreated, http.StatusBadRequest},
		{"enrollment required", apperrors.ErrEnrollmentRequired, http.StatusBadRequest},
		{"inactive user", apperrors.ErrInactiveUser, http.StatusBadRequest},
		{"not a teacher", apperrors.ErrNotTeacher, http.StatusBadRequest},
		{"not a student", apperrors.ErrNotStudent, http.StatusBadRequest},
		{"payment failed", apperrors.ErrPaymentFailed, http.StatusBadRequest},
		{"conflict", apperrors.NewConflictError("incorrect password"), http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusUnauthorized},
		{"not found", apperrors.ErrResourceNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := handleError(tc.err)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestHandleAPIErrorUsesSpecificMessage(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "You already enrolled to Learn Go")
	recorder := handleError(err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "You already enrolled to Learn Go")
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrPasswordBreached,
		"This password has appeared 1274 times in data breaches, pick another one")
	recorder := handleError(wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "1274")
}
