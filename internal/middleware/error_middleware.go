package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/logger"
)

// message prefers the specific message attached to the error over the
// generic fallback.
func message(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// HandleAPIError maps service errors onto HTTP responses. Validation
// and external-service failures report 422, conflicts 400,
// authentication and ownership failures 401, missing resources 404,
// anything unrecognized 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed, message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrReservedName):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeReservedName, err.Error())
	case errors.Is(err, apperrors.ErrConfusableName):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeConfusableName, err.Error())
	case errors.Is(err, apperrors.ErrPasswordBreached):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodePasswordBreached, message(err, "Password found in a known data breach"))
	case errors.Is(err, apperrors.ErrExternalService):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeExternalServiceError, message(err, "External service unavailable, please try again"))

	case errors.Is(err, apperrors.ErrUsernameTaken):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Username already exists")
	case errors.Is(err, apperrors.ErrEmailTaken):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrAlreadyReviewed),
		errors.Is(err, apperrors.ErrAlreadyBookmarked),
		errors.Is(err, apperrors.ErrAlreadyCreated),
		errors.Is(err, apperrors.ErrEnrollmentRequired):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceConflict, message(err, "Conflict"))
	case errors.Is(err, apperrors.ErrInactiveUser):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceConflict, "Inactive user")
	case errors.Is(err, apperrors.ErrNotTeacher):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceConflict, "You are not a teacher")
	case errors.Is(err, apperrors.ErrNotStudent):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceConflict, "You are not a student")
	case errors.Is(err, apperrors.ErrPaymentFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodePaymentError, message(err, "Payment could not be processed"))
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceConflict, message(err, "Conflict"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Incorrect username or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "You don't have permission to access.")

	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message(err, "Resource not found"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, msg string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, msg)))
}
