package models

// FeeBreakdown is the ephemeral result of pricing a base amount. It is
// attached to transactions as metadata, never persisted on its own.
type FeeBreakdown struct {
	BaseAmount         float64 `json:"base_amount"`
	PlatformFee        float64 `json:"platform_fee"`
	TrustAndSupportFee float64 `json:"trust_and_support_fee"`
	StripeFee          float64 `json:"stripe_fee"`
	TotalAmount        float64 `json:"total_amount"`
}

// Metadata renders the breakdown as transaction metadata.
func (b FeeBreakdown) Metadata() JSON {
	return JSON{
		"base_amount":           b.BaseAmount,
		"platform_fee":          b.PlatformFee,
		"trust_and_support_fee": b.TrustAndSupportFee,
		"stripe_fee":            b.StripeFee,
		"total_amount":          b.TotalAmount,
	}
}
