// Package event is the notification bus that decouples the sync controller
// from its UI-facing subscribers. Publishing is synchronous and ordered;
// each subscriber runs inside its own failure boundary so one misbehaving
// callback can never starve the rest or reach the publisher.
package event

import (
	"context"
	"time"

	"github.com/fitstake/fitstake-go/internal/domain"
)

// Type represents the type of an event
type Type string

// Named events published by the sync core
const (
	ChallengesUpdated       Type = "challenges_updated"
	ParticipationsUpdated   Type = "participations_updated"
	ChallengeJoined         Type = "challenge_joined"
	ChallengeCompleted      Type = "challenge_completed"
	BalanceUpdated          Type = "balance_updated"
	FitnessConnected        Type = "fitness_connected"
	FitnessDisconnected     Type = "fitness_disconnected"
	ChallengesAutoValidated Type = "challenges_auto_validated"
)

// Event is a single notification fanned out to subscribers
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// CollectionUpdatedPayload announces that a cached collection was rebuilt
type CollectionUpdatedPayload struct {
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	RefreshAt time.Time `json:"refresh_at"`
}

// ChallengeJoinedPayload carries the optimistic pool snapshot computed at
// join time alongside the server-confirmed participation
type ChallengeJoinedPayload struct {
	ChallengeID   string                 `json:"challenge_id"`
	UserEmail     string                 `json:"user_email"`
	StakeAmount   float64                `json:"stake_amount"`
	PoolSnapshot  domain.PoolCalculation `json:"pool_snapshot"`
	Participation domain.Participation   `json:"participation"`
}

// ChallengeCompletedPayload surfaces the settlement outcome reported by the
// backend
type ChallengeCompletedPayload struct {
	ChallengeID string  `json:"challenge_id"`
	UserEmail   string  `json:"user_email"`
	IsWinner    bool    `json:"is_winner"`
	PrizeAmount float64 `json:"prize_amount"`
}

// BalanceUpdatedPayload announces a change to the user's balance
type BalanceUpdatedPayload struct {
	UserEmail string  `json:"user_email"`
	Delta     float64 `json:"delta"`
	Reason    string  `json:"reason,omitempty"`
}

// FitnessConnectionPayload reports fitness device connectivity changes
type FitnessConnectionPayload struct {
	UserEmail string `json:"user_email"`
	Provider  string `json:"provider"`
}

// AutoValidatedPayload reports challenges the server validated automatically
type AutoValidatedPayload struct {
	ChallengeIDs []string `json:"challenge_ids"`
}

// Type-safe event constructors

// NewCollectionUpdatedEvent announces a rebuilt cache collection
func NewCollectionUpdatedEvent(eventType Type, key string, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: CollectionUpdatedPayload{
			Key:       key,
			Count:     count,
			RefreshAt: time.Now(),
		},
	}
}

// NewChallengeJoinedEvent creates a challenge_joined event
func NewChallengeJoinedEvent(challengeID, email string, stake float64, snapshot domain.PoolCalculation, participation domain.Participation) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeJoined,
		Payload: ChallengeJoinedPayload{
			ChallengeID:   challengeID,
			UserEmail:     email,
			StakeAmount:   stake,
			PoolSnapshot:  snapshot,
			Participation: participation,
		},
	}
}

// NewChallengeCompletedEvent creates a challenge_completed event
func NewChallengeCompletedEvent(challengeID, email string, result domain.CompleteResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: ChallengeCompletedPayload{
			ChallengeID: challengeID,
			UserEmail:   email,
			IsWinner:    result.IsWinner,
			PrizeAmount: result.PrizeAmount,
		},
	}
}

// NewAutoValidatedEvent creates a challenges_auto_validated event
func NewAutoValidatedEvent(challengeIDs ...string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengesAutoValidated,
		Payload: AutoValidatedPayload{ChallengeIDs: challengeIDs},
	}
}

// Handler is a function that handles an event. A returned error is logged
// and counted, never propagated to the publisher.
type Handler func(ctx context.Context, event Event) error

// UnsubscribeFunc removes the subscription it was returned for. Safe to
// call more than once.
type UnsubscribeFunc func()

// Bus defines the interface for the event bus
type Bus interface {
	Publish(ctx context.Context, event Event)
	Subscribe(eventType Type, handler Handler) UnsubscribeFunc
	SubscribeAll(handler Handler) UnsubscribeFunc
	Reset()
}
