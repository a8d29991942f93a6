package fees

import (
	"math"
	"testing"

	"taskhive/internal/config"
	"taskhive/internal/errors"

	"github.com/stretchr/testify/assert"
)

func defaultConfig() config.FeeConfig {
	return config.FeeConfig{
		PlatformFeeRate:        config.DefaultPlatformFeeRate,
		TrustAndSupportFeeRate: config.DefaultTrustAndSupportFeeRate,
		StripeFeePercent:       config.DefaultStripeFeePercent,
		StripeFeeFixed:         config.DefaultStripeFeeFixed,
	}
}

func TestCalculateStandardRate(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	breakdown, err := calc.Calculate(100, 0.15)
	assert.NoError(t, err)

	assert.Equal(t, 100.0, breakdown.BaseAmount)
	assert.Equal(t, 15.0, breakdown.PlatformFee)
	assert.Equal(t, 3.0, breakdown.TrustAndSupportFee)
	assert.Equal(t, 3.83, breakdown.StripeFee)
	assert.Equal(t, 121.83, breakdown.TotalAmount)
}

func TestCalculateZeroPlatformRate(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	breakdown, err := calc.Calculate(100, 0)
	assert.NoError(t, err)

	assert.Equal(t, 0.0, breakdown.PlatformFee)
	assert.Equal(t, 3.0, breakdown.TrustAndSupportFee)
	assert.Equal(t, 3.39, breakdown.StripeFee)
	assert.Equal(t, 106.39, breakdown.TotalAmount)
	// Stripe and trust-and-support fees still apply
	assert.Greater(t, breakdown.TotalAmount, breakdown.BaseAmount)
}

func TestCalculateZeroBase(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	breakdown, err := calc.Calculate(0, 0.15)
	assert.NoError(t, err)

	assert.Equal(t, 0.0, breakdown.PlatformFee)
	assert.Equal(t, 0.0, breakdown.TrustAndSupportFee)
	// The fixed portion of the processor fee still has to be covered.
	assert.Equal(t, 0.31, breakdown.StripeFee)
	assert.Equal(t, 0.31, breakdown.TotalAmount)
}

func TestCalculateTotalCoversBreakdown(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	for _, base := range []float64{0.01, 1, 12.34, 100, 999.99, 50000} {
		breakdown, err := calc.Calculate(base, 0.15)
		assert.NoError(t, err)

		sum := breakdown.BaseAmount + breakdown.PlatformFee +
			breakdown.TrustAndSupportFee + breakdown.StripeFee
		assert.InDelta(t, sum, breakdown.TotalAmount, 0.005, "base=%v", base)
		assert.GreaterOrEqual(t, breakdown.TotalAmount, base)
	}
}

func TestCalculateMonotonicInBase(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	prev := -1.0
	for _, base := range []float64{10, 20, 50, 100, 250, 1000} {
		breakdown, err := calc.Calculate(base, 0.15)
		assert.NoError(t, err)
		assert.Greater(t, breakdown.TotalAmount, prev)
		prev = breakdown.TotalAmount
	}
}

func TestCalculateMonotonicInRate(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	prevPlatform := -1.0
	prevTotal := -1.0
	for _, rate := range []float64{0, 0.05, 0.1, 0.15, 0.25, 0.5, 1} {
		breakdown, err := calc.Calculate(100, rate)
		assert.NoError(t, err)
		assert.Greater(t, breakdown.PlatformFee, prevPlatform, "rate=%v", rate)
		assert.Greater(t, breakdown.TotalAmount, prevTotal, "rate=%v", rate)
		prevPlatform = breakdown.PlatformFee
		prevTotal = breakdown.TotalAmount
	}
}

func TestCalculateInvalidArguments(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	tests := []struct {
		name string
		base float64
		rate float64
	}{
		{"negative base", -1, 0.15},
		{"NaN base", math.NaN(), 0.15},
		{"infinite base", math.Inf(1), 0.15},
		{"negative rate", 100, -0.01},
		{"rate above one", 100, 1.01},
		{"NaN rate", 100, math.NaN()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Calculate(tc.base, tc.rate)
			assert.Error(t, err)

			domainErr, ok := errors.As(err)
			assert.True(t, ok)
			assert.Equal(t, errors.KindInvalidArgument, domainErr.Kind)
		})
	}
}

func TestAmountInCents(t *testing.T) {
	tests := []struct {
		dollars float64
		cents   int64
	}{
		{10.50, 1050},
		{10.999, 1100},
		{0, 0},
		{0.004, 0},
		{0.005, 1},
		{121.83, 12183},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.cents, AmountInCents(tc.dollars), "dollars=%v", tc.dollars)
	}
}
