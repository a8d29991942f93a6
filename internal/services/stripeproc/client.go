// Package stripeproc wraps the Stripe SDK behind the small surface the
// payout batch needs: one charge plus an optional transfer to the worker's
// connected account.
package stripeproc

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"github.com/stripe/stripe-go/v72/transfer"
)

// ChargeRequest describes a charge in minor units plus its routing and
// audit metadata.
type ChargeRequest struct {
	AmountCents        int64 // total charged to the client
	TransferCents      int64 // portion transferred to the worker
	Currency           string
	Description        string
	DestinationAccount string
	Metadata           map[string]string
}

// ChargeResult carries the processor references to link on the transaction.
type ChargeResult struct {
	PaymentIntentID string
	TransferID      string
}

type Client struct{}

// New configures the global Stripe key and returns a client.
func New(apiKey string) *Client {
	stripe.Key = apiKey
	return &Client{}
}

// Charge creates a confirmed payment intent and, when a destination account
// is given, a transfer of the base amount to it.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge amount must be positive, got %d", req.AmountCents)
	}
	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(currency),
		Description: stripe.String(req.Description),
		Confirm:     stripe.Bool(true),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	result := &ChargeResult{PaymentIntentID: pi.ID}

	if req.DestinationAccount != "" && req.TransferCents > 0 {
		transferParams := &stripe.TransferParams{
			Amount:      stripe.Int64(req.TransferCents),
			Currency:    stripe.String(currency),
			Destination: stripe.String(req.DestinationAccount),
			Description: stripe.String(req.Description),
		}
		transferParams.Context = ctx
		for k, v := range req.Metadata {
			transferParams.AddMetadata(k, v)
		}

		tr, err := transfer.New(transferParams)
		if err != nil {
			return nil, fmt.Errorf("stripe transfer failed: %w", err)
		}
		result.TransferID = tr.ID
	}

	return result, nil
}
