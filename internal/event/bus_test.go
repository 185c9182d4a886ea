package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitstake/fitstake-go/internal/domain"
)

func TestPublishRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewMemoryBus()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(ChallengesUpdated, func(ctx context.Context, e Event) error {
			order = append(order, i)
			return nil
		})
	}

	bus.Publish(context.Background(), Event{Type: ChallengesUpdated})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPublishIsolatesFailingHandlers(t *testing.T) {
	bus := NewMemoryBus()

	var reached []string
	bus.Subscribe(ChallengeJoined, func(ctx context.Context, e Event) error {
		reached = append(reached, "first")
		return errors.New("subscriber blew up")
	})
	bus.Subscribe(ChallengeJoined, func(ctx context.Context, e Event) error {
		reached = append(reached, "second")
		panic("subscriber panicked")
	})
	bus.Subscribe(ChallengeJoined, func(ctx context.Context, e Event) error {
		reached = append(reached, "third")
		return nil
	})

	// Must not panic or surface any handler failure
	bus.Publish(context.Background(), Event{Type: ChallengeJoined})
	assert.Equal(t, []string{"first", "second", "third"}, reached)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	unsubscribe := bus.Subscribe(BalanceUpdated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), Event{Type: BalanceUpdated})
	unsubscribe()
	bus.Publish(context.Background(), Event{Type: BalanceUpdated})

	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless
	unsubscribe()
}

func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewMemoryBus()

	var got []Type
	bus.Subscribe(FitnessConnected, func(ctx context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	bus.Publish(context.Background(), Event{Type: FitnessDisconnected})
	bus.Publish(context.Background(), Event{Type: FitnessConnected})

	assert.Equal(t, []Type{FitnessConnected}, got)
}

func TestSubscribeAllSeesEveryEvent(t *testing.T) {
	bus := NewMemoryBus()

	var got []Type
	bus.SubscribeAll(func(ctx context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	bus.Publish(context.Background(), Event{Type: ChallengesUpdated})
	bus.Publish(context.Background(), Event{Type: ChallengeCompleted})

	assert.Equal(t, []Type{ChallengesUpdated, ChallengeCompleted}, got)
}

func TestResetDropsSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(ChallengesUpdated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})
	bus.SubscribeAll(func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Reset()
	bus.Publish(context.Background(), Event{Type: ChallengesUpdated})

	assert.Equal(t, 0, calls)
}

func TestEventConstructors(t *testing.T) {
	snapshot := domain.PoolCalculation{TotalStakes: 250, FeePercentage: 10, FeeAmount: 25, AvailablePool: 225}
	participation := domain.Participation{ID: "p-1", ChallengeID: "ch-1", UserEmail: "a@x.com", StakeAmount: 25}

	e := NewChallengeJoinedEvent("ch-1", "a@x.com", 25, snapshot, participation)
	assert.Equal(t, ChallengeJoined, e.Type)
	assert.Equal(t, EventSchemaVersion, e.Version)

	payload, ok := e.Payload.(ChallengeJoinedPayload)
	assert.True(t, ok)
	assert.Equal(t, "ch-1", payload.ChallengeID)
	assert.Equal(t, 25.0, payload.StakeAmount)

	updated := NewCollectionUpdatedEvent(ChallengesUpdated, "challenges", 3)
	updatedPayload, ok := updated.Payload.(CollectionUpdatedPayload)
	assert.True(t, ok)
	assert.Equal(t, 3, updatedPayload.Count)
}
