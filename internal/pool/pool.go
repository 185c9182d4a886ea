// Package pool implements the pool calculation engine: pure, deterministic
// derivation of a prize pool breakdown from a stake total and a platform fee
// percentage. No I/O, no clock, no randomness - identical inputs always
// produce bit-identical output so every view of a challenge agrees to the
// cent.
package pool

import (
	"math"

	"github.com/fitstake/fitstake-go/internal/domain"
)

// Round2 rounds a monetary amount to 2 decimal places, half-up.
// Rounding happens only at presentation and invariant-check boundaries,
// never mid-computation.
func Round2(v float64) float64 {
	if v < 0 {
		return -math.Floor(-v*100+0.5) / 100
	}
	return math.Floor(v*100+0.5) / 100
}

// Calculate derives the pool breakdown for a stake total under the given
// platform fee percentage. Negative stake totals clamp to 0. Fee percentages
// outside [0,100] clamp to the nearest bound rather than producing a
// breakdown that violates the invariant feeAmount+availablePool == total.
func Calculate(totalStakes, feePercent float64) domain.PoolCalculation {
	if totalStakes < 0 {
		totalStakes = 0
	}
	if feePercent < 0 {
		feePercent = 0
	} else if feePercent > 100 {
		feePercent = 100
	}

	feeAmount := Round2(totalStakes * feePercent / 100)
	availablePool := Round2(totalStakes - feeAmount)

	return domain.PoolCalculation{
		TotalStakes:   totalStakes,
		FeePercentage: feePercent,
		FeeAmount:     feeAmount,
		AvailablePool: availablePool,
	}
}
