// Package fees prices charges. The calculator is pure: given a base amount
// and the resolved fee configuration it returns a full breakdown, with no
// persistence and no retries.
package fees

import (
	"math"

	"taskhive/internal/config"
	"taskhive/internal/errors"
	"taskhive/internal/models"

	"github.com/shopspring/decimal"
)

type Calculator struct {
	cfg config.FeeConfig
}

func NewCalculator(cfg config.FeeConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate prices baseAmount under the given platform fee rate.
//
// The platform and trust-and-support fees are straight percentages of the
// base. The Stripe fee is not: Stripe takes its percentage of the total the
// card is charged, which includes the Stripe fee itself. Solving
// T = C + fixed + pct*T for the total gives T = (C + fixed) / (1 - pct),
// where C is base plus both platform-side fees. The charged total then
// fully covers Stripe's cut.
func (c *Calculator) Calculate(baseAmount, platformFeeRate float64) (models.FeeBreakdown, error) {
	if math.IsNaN(baseAmount) || math.IsInf(baseAmount, 0) || baseAmount < 0 {
		return models.FeeBreakdown{}, errors.NewInvalidArgument("base amount must be a non-negative finite number, got %v", baseAmount)
	}
	if math.IsNaN(platformFeeRate) || platformFeeRate < 0 || platformFeeRate > 1 {
		return models.FeeBreakdown{}, errors.NewInvalidArgument("platform fee rate must be in [0,1], got %v", platformFeeRate)
	}

	platformFee := round2(baseAmount * platformFeeRate)
	trustAndSupportFee := round2(baseAmount * c.cfg.TrustAndSupportFeeRate)

	charged := baseAmount + platformFee + trustAndSupportFee
	total := (charged + c.cfg.StripeFeeFixed) / (1 - c.cfg.StripeFeePercent)
	stripeFee := round2(total - charged)

	return models.FeeBreakdown{
		BaseAmount:         baseAmount,
		PlatformFee:        platformFee,
		TrustAndSupportFee: trustAndSupportFee,
		StripeFee:          stripeFee,
		TotalAmount:        round2(baseAmount + platformFee + trustAndSupportFee + stripeFee),
	}, nil
}

// AmountInCents converts a dollar amount to integer cents, rounding half up.
func AmountInCents(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
