package gateway

import "context"

// Intent is the gateway-neutral view of a card payment attempt.
type Intent struct {
	ID           string
	ClientSecret string
	CustomerID   string
	AmountCents  int64
	Currency     string
	// Succeeded is true only for the gateway's terminal success status. Every
	// other status is treated as not-yet-complete by the caller.
	Succeeded bool
}

// PaymentGateway defines contract for the card payment provider (Stripe implementation).
type PaymentGateway interface {
	// CreateIntent registers a payment attempt with the gateway and returns the
	// intent the client completes. customerEmail/customerName identify or create
	// the gateway-side customer record.
	CreateIntent(ctx context.Context, amountCents int64, currency, customerEmail, customerName, description string) (*Intent, error)
	// RetrieveIntent fetches the current state of a previously created intent.
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}
