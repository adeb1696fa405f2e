package utils

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentIntentCurrency is the only currency the marketplace charges in.
const PaymentIntentCurrency = string(stripe.CurrencyUSD)

// StripePayments creates card-only payment intents.
type StripePayments struct {
	api *client.API
}

func NewStripePayments(secretKey string) *StripePayments {
	return &StripePayments{api: client.New(secretKey, nil)}
}

// CreateCardIntent creates a payment intent for amount (in cents) and returns its client secret.
func (s *StripePayments) CreateCardIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	return pi.ClientSecret, nil
}
