package domain

import "time"

// FeeConfig is the platform fee configuration fetched from the settings
// endpoint. Invariant: 0 <= PlatformFeePercent <= 100.
type FeeConfig struct {
	PlatformFeePercent float64   `json:"platform_fee_percent"`
	MinBet             float64   `json:"min_bet"`
	MaxBet             float64   `json:"max_bet"`
	FetchedAt          time.Time `json:"-"`
}

// Valid reports whether the fee percentage is within bounds
func (c FeeConfig) Valid() bool {
	return c.PlatformFeePercent >= 0 && c.PlatformFeePercent <= 100
}
