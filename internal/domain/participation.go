package domain

import "time"

// ParticipationStatus represents the state of a user's stake in a challenge
type ParticipationStatus string

const (
	ParticipationStatusActive    ParticipationStatus = "active"
	ParticipationStatusCompleted ParticipationStatus = "completed"
)

// Participation is one user's stake-and-status record against one challenge.
// ChallengeTotalPool is carried from the parent challenge so enrichment can
// derive pool values from the challenge pool rather than the individual stake.
type Participation struct {
	ID                 string              `json:"id"`
	ChallengeID        string              `json:"challenge_id"`
	UserEmail          string              `json:"user_email"`
	StakeAmount        float64             `json:"stake_amount"`
	Status             ParticipationStatus `json:"status"`
	ChallengeTotalPool float64             `json:"challenge_total_pool"`
	JoinedAt           time.Time           `json:"joined_at"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
}

// EnrichedParticipation is a Participation with the parent challenge's pool
// breakdown attached.
type EnrichedParticipation struct {
	Participation
	PoolCalculations   PoolCalculation `json:"pool_calculations"`
	AvailablePool      float64         `json:"available_pool"`
	PlatformFeeAmount  float64         `json:"platform_fee_amount"`
	CurrentPlatformFee float64         `json:"current_platform_fee"`
}

// ParticipationList is the well-formed result shape for participation reads.
// "Not logged in" callers receive Success=false with an empty slice rather
// than an error.
type ParticipationList struct {
	Success        bool                    `json:"success"`
	Participations []EnrichedParticipation `json:"participations"`
	Total          int                     `json:"total"`
}

// JoinResult is the backend's response to a join request
type JoinResult struct {
	Success       bool          `json:"success"`
	Participation Participation `json:"participation"`
	Message       string        `json:"message,omitempty"`
}

// CompleteResult is the backend's response to a completion request
type CompleteResult struct {
	Success       bool    `json:"success"`
	IsWinner      bool    `json:"is_winner"`
	PrizeAmount   float64 `json:"prize_amount"`
	AutoValidated bool    `json:"auto_validated"`
	Message       string  `json:"message,omitempty"`
}

// ChallengeResult is the caller-supplied payload for completing a challenge
type ChallengeResult struct {
	MetricValue float64 `json:"metric_value"`
	Source      string  `json:"source,omitempty"`
	RecordedAt  string  `json:"recorded_at,omitempty"`
}
