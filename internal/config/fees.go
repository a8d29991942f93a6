package config

import "strconv"

// Default fee rates. These apply when neither the settings table nor the
// environment provides a value.
const (
	DefaultPlatformFeeRate        = 0.15
	DefaultTrustAndSupportFeeRate = 0.03
	DefaultStripeFeePercent       = 0.029
	DefaultStripeFeeFixed         = 0.30
)

// Settings keys recognized by ResolveFeeConfig.
const (
	SettingPlatformFeeRate        = "platform_fee_rate"
	SettingTrustAndSupportFeeRate = "trust_and_support_fee_rate"
)

// FeeConfig holds every rate used to price a charge. All call sites resolve
// their rates through ResolveFeeConfig so the fallback chain lives in one
// place: settings row, then environment, then compiled default.
type FeeConfig struct {
	PlatformFeeRate        float64
	TrustAndSupportFeeRate float64
	StripeFeePercent       float64
	StripeFeeFixed         float64
}

// SettingsLookup reports the value stored for a settings key, if any.
type SettingsLookup func(key string) (string, bool)

// ResolveFeeConfig builds the effective fee configuration. A nil lookup
// skips the settings layer entirely.
func ResolveFeeConfig(lookup SettingsLookup) FeeConfig {
	cfg := FeeConfig{
		PlatformFeeRate:        GetFloatEnv("PLATFORM_FEE_RATE", DefaultPlatformFeeRate),
		TrustAndSupportFeeRate: GetFloatEnv("TRUST_AND_SUPPORT_FEE_RATE", DefaultTrustAndSupportFeeRate),
		StripeFeePercent:       GetFloatEnv("STRIPE_FEE_PERCENT", DefaultStripeFeePercent),
		StripeFeeFixed:         GetFloatEnv("STRIPE_FEE_FIXED", DefaultStripeFeeFixed),
	}

	if lookup == nil {
		return cfg
	}
	if v, ok := lookupFloat(lookup, SettingPlatformFeeRate); ok {
		cfg.PlatformFeeRate = v
	}
	if v, ok := lookupFloat(lookup, SettingTrustAndSupportFeeRate); ok {
		cfg.TrustAndSupportFeeRate = v
	}
	return cfg
}

func lookupFloat(lookup SettingsLookup, key string) (float64, bool) {
	raw, ok := lookup(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
