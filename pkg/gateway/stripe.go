package gateway

import (
	"context"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type stripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a Stripe-backed implementation of PaymentGateway.
// It expects STRIPE_SECRET_KEY to be configured in environment variables.
func NewStripeGateway() (PaymentGateway, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}

	api := &client.API{}
	api.Init(key, nil)

	return &stripeGateway{api: api}, nil
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency, customerEmail, customerName, description string) (*Intent, error) {
	if g == nil || g.api == nil {
		return nil, fmt.Errorf("stripe gateway is not initialized")
	}

	cust, err := g.findOrCreateCustomer(ctx, customerEmail, customerName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stripe customer: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(currency),
		Customer:    stripe.String(cust.ID),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intentFromStripe(pi), nil
}

func (g *stripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	if g == nil || g.api == nil {
		return nil, fmt.Errorf("stripe gateway is not initialized")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent %s: %w", intentID, err)
	}

	return intentFromStripe(pi), nil
}

func (g *stripeGateway) findOrCreateCustomer(ctx context.Context, email, name string) (*stripe.Customer, error) {
	searchParams := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query: fmt.Sprintf("email:%q", email),
		},
	}
	searchParams.Context = ctx

	iter := g.api.Customers.Search(searchParams)
	for iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	createParams.Context = ctx

	return g.api.Customers.New(createParams)
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Succeeded:    pi.Status == stripe.PaymentIntentStatusSucceeded,
	}
	if pi.Customer != nil {
		intent.CustomerID = pi.Customer.ID
	}
	return intent
}
