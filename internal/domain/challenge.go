package domain

import "time"

// ChallengeStatus represents the lifecycle state of a challenge
type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
)

// Challenge is the raw challenge record as owned by the backend.
// Monetary fields are decimal amounts in the platform's base currency unit.
type Challenge struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	TargetMetric     string          `json:"target_metric"`
	TargetValue      float64         `json:"target_value"`
	MinStake         float64         `json:"min_stake"`
	MaxStake         float64         `json:"max_stake"`
	TotalPool        float64         `json:"total_pool"`
	Status           ChallengeStatus `json:"status"`
	ParticipantCount int             `json:"participant_count"`
	CreatedAt        time.Time       `json:"created_at"`
	EndsAt           time.Time       `json:"ends_at"`
}

// PoolCalculation is the derived pool breakdown for one challenge.
// Invariant: FeeAmount + AvailablePool == TotalStakes, rounded to 2 decimals.
type PoolCalculation struct {
	TotalStakes   float64 `json:"totalStakes"`
	FeePercentage float64 `json:"feePercentage"`
	FeeAmount     float64 `json:"feeAmount"`
	AvailablePool float64 `json:"availablePool"`
}

// EnrichedChallenge is a Challenge with its pool breakdown attached.
// Enriched records are rebuilt wholesale on every cache refresh and are
// never mutated in place.
type EnrichedChallenge struct {
	Challenge
	PoolCalculations    PoolCalculation `json:"pool_calculations"`
	AvailablePool       float64         `json:"available_pool"`
	PlatformFeeAmount   float64         `json:"platform_fee_amount"`
	CurrentPlatformFee  float64         `json:"current_platform_fee"`
	DisplayParticipants string          `json:"display_participants,omitempty"`
}

// ChallengeSearchQuery carries the filters for a challenge search
type ChallengeSearchQuery struct {
	Text     string `json:"q"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Sort     string `json:"sort"`
}

// ActivityEntry is one row of the global activity feed
type ActivityEntry struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ChallengeID   string    `json:"challenge_id"`
	UserEmail     string    `json:"user_email,omitempty"`
	Amount        float64   `json:"amount"`
	Message       string    `json:"message,omitempty"`
	DisplayAmount string    `json:"display_amount,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
