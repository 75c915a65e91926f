package usecase

import (
	"context"

	"github.com/decomly/lead-broker/internal/infra/integration/payment"
)

// PaymentGateway is what the checkout usecase needs from the processor
// client.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input payment.CreateCheckoutInput) (*payment.CheckoutSession, error)
}
