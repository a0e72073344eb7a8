package services

import (
	"context"

	"github.com/rs/zerolog"
)

// PaymentGateway authorizes and captures course purchase charges.
// Enrollment only touches it when the course carries a price.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount float64, reference string) (string, error)
	Capture(ctx context.Context, authorizationID string) error
}

// LoggingPaymentGateway approves every charge and only records it.
// Stands in until a real processor is integrated.
type LoggingPaymentGateway struct {
	logger zerolog.Logger
}

// NewLoggingPaymentGateway creates the no-op gateway
func NewLoggingPaymentGateway(logger zerolog.Logger) *LoggingPaymentGateway {
	return &LoggingPaymentGateway{logger: logger}
}

// Authorize approves the charge and returns the reference as the
// authorization id.
func (g *LoggingPaymentGateway) Authorize(ctx context.Context, amount float64, reference string) (string, error) {
	g.logger.Info().Float64("amount", amount).Str("reference", reference).Msg("Payment authorized")
	return reference, nil
}

// Capture records the capture
func (g *LoggingPaymentGateway) Capture(ctx context.Context, authorizationID string) error {
	g.logger.Info().Str("authorizationId", authorizationID).Msg("Payment captured")
	return nil
}
