package challenge

import (
	"github.com/fitstake/fitstake-go/internal/domain"
	"github.com/fitstake/fitstake-go/internal/pool"
)

// enrichChallenge attaches the pool breakdown to a raw challenge.
// The fee value is supplied by the caller so every entry of one refresh
// batch observes the same fee snapshot.
func enrichChallenge(raw domain.Challenge, feePercent float64) domain.EnrichedChallenge {
	calc := pool.Calculate(raw.TotalPool, feePercent)
	return domain.EnrichedChallenge{
		Challenge:          raw,
		PoolCalculations:   calc,
		AvailablePool:      calc.AvailablePool,
		PlatformFeeAmount:  calc.FeeAmount,
		CurrentPlatformFee: feePercent,
	}
}

func enrichChallenges(raw []domain.Challenge, feePercent float64) []domain.EnrichedChallenge {
	enriched := make([]domain.EnrichedChallenge, len(raw))
	for i, c := range raw {
		enriched[i] = enrichChallenge(c, feePercent)
	}
	return enriched
}

// enrichParticipation derives pool values from the parent challenge's total
// pool, not the individual stake.
func enrichParticipation(raw domain.Participation, feePercent float64) domain.EnrichedParticipation {
	calc := pool.Calculate(raw.ChallengeTotalPool, feePercent)
	return domain.EnrichedParticipation{
		Participation:      raw,
		PoolCalculations:   calc,
		AvailablePool:      calc.AvailablePool,
		PlatformFeeAmount:  calc.FeeAmount,
		CurrentPlatformFee: feePercent,
	}
}

func enrichParticipations(raw []domain.Participation, feePercent float64) []domain.EnrichedParticipation {
	enriched := make([]domain.EnrichedParticipation, len(raw))
	for i, p := range raw {
		enriched[i] = enrichParticipation(p, feePercent)
	}
	return enriched
}
