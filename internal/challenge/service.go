// Package challenge owns the synchronized, enriched view of the remotely
// mutated challenge and participation collections. It is the one stateful
// piece of the application: a keyed cache with stale-while-revalidate
// semantics, full invalidation on every mutation, and event fan-out so UI
// subscribers learn about data changes without polling the service.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fitstake/fitstake-go/internal/domain"
	"github.com/fitstake/fitstake-go/internal/event"
	"github.com/fitstake/fitstake-go/internal/feeconfig"
	"github.com/fitstake/fitstake-go/internal/identity"
	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/metrics"
	"github.com/fitstake/fitstake-go/internal/pool"
	"github.com/fitstake/fitstake-go/internal/remote"
)

// Service defines the operations of the challenge sync controller
type Service interface {
	GetChallenges(ctx context.Context) ([]domain.EnrichedChallenge, error)
	GetChallenge(ctx context.Context, id string) (*domain.EnrichedChallenge, error)
	SearchChallenges(ctx context.Context, query domain.ChallengeSearchQuery) ([]domain.EnrichedChallenge, error)
	ActivityFeed(ctx context.Context, limit int) ([]domain.ActivityEntry, error)

	JoinChallenge(ctx context.Context, id string, stake float64, email string) (*domain.JoinResult, error)
	CompleteChallenge(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error)
	SubmitResult(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error)

	GetUserParticipation(ctx context.Context, challengeID, email string) (*domain.EnrichedParticipation, error)
	GetMyParticipations(ctx context.Context, email string) (*domain.ParticipationList, error)

	Refresh(ctx context.Context) error
	InvalidateSettings()
	StartAutoSync(interval time.Duration)
	StopAutoSync()
	Reset()
	Shutdown(ctx context.Context) error
}

// Options tunes the sync controller
type Options struct {
	FreshnessWindow time.Duration
	ItemCacheSize   int
	ItemCacheTTL    time.Duration
}

func (o Options) withDefaults() Options {
	if o.FreshnessWindow <= 0 {
		o.FreshnessWindow = DefaultFreshnessWindow
	}
	if o.ItemCacheSize <= 0 {
		o.ItemCacheSize = DefaultItemCacheSize
	}
	if o.ItemCacheTTL <= 0 {
		o.ItemCacheTTL = DefaultItemCacheTTL
	}
	return o
}

type service struct {
	gateway  remote.Gateway
	fees     *feeconfig.Loader
	bus      event.Bus
	identity identity.Provider

	challenges     *collection[domain.EnrichedChallenge]
	participations *collection[domain.EnrichedParticipation]

	// participations are cached for one resolved user at a time; a read
	// for a different email invalidates the cell first
	partMu    sync.Mutex
	partEmail string

	itemCache *expirable.LRU[string, domain.EnrichedChallenge]

	syncMu     sync.Mutex
	syncCancel context.CancelFunc
	syncDone   chan struct{}
}

// NewService creates a challenge sync controller. The instance owns all of
// its state; the application wires exactly one into its composition root
// and injects it wherever challenge data is consumed.
func NewService(gateway remote.Gateway, fees *feeconfig.Loader, bus event.Bus, provider identity.Provider, opts Options) Service {
	opts = opts.withDefaults()

	s := &service{
		gateway:   gateway,
		fees:      fees,
		bus:       bus,
		identity:  provider,
		itemCache: expirable.NewLRU[string, domain.EnrichedChallenge](opts.ItemCacheSize, nil, opts.ItemCacheTTL),
	}

	s.challenges = newCollection(CollectionKeyChallenges, opts.FreshnessWindow, s.fetchChallenges, func(count int) {
		s.publish(event.NewCollectionUpdatedEvent(event.ChallengesUpdated, CollectionKeyChallenges, count))
	})
	s.participations = newCollection(CollectionKeyParticipations, opts.FreshnessWindow, s.fetchParticipations, func(count int) {
		s.publish(event.NewCollectionUpdatedEvent(event.ParticipationsUpdated, CollectionKeyParticipations, count))
	})

	return s
}

// fetchChallenges pulls the raw collection and enriches every entry with
// one fee snapshot, resolved once per refresh. Even if the fee changes
// mid-batch, no entry of this refresh observes it.
func (s *service) fetchChallenges(ctx context.Context) ([]domain.EnrichedChallenge, error) {
	raw, err := s.gateway.ListChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListChallenges, err)
	}

	feePercent := s.fees.PlatformFeePercent(ctx)
	return enrichChallenges(raw, feePercent), nil
}

func (s *service) fetchParticipations(ctx context.Context) ([]domain.EnrichedParticipation, error) {
	s.partMu.Lock()
	email := s.partEmail
	s.partMu.Unlock()
	if email == "" {
		return nil, nil
	}

	raw, err := s.gateway.ListMyParticipations(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListParticipations, err)
	}

	feePercent := s.fees.PlatformFeePercent(ctx)
	return enrichParticipations(raw, feePercent), nil
}

// GetChallenges returns the enriched challenge collection, cached with
// stale-while-revalidate semantics
func (s *service) GetChallenges(ctx context.Context) ([]domain.EnrichedChallenge, error) {
	return s.challenges.Get(ctx)
}

// GetChallenge returns one enriched challenge. It answers from the loaded
// collection first, then the single-item LRU, then the network.
func (s *service) GetChallenge(ctx context.Context, id string) (*domain.EnrichedChallenge, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgChallengeIDRequired, domain.ErrValidation)
	}

	if cached, ok := s.challenges.Peek(); ok {
		for i := range cached {
			if cached[i].ID == id {
				return &cached[i], nil
			}
		}
	}

	if item, ok := s.itemCache.Get(id); ok {
		return &item, nil
	}

	raw, err := s.gateway.GetChallenge(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrChallengeNotFound)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetChallenge, err)
	}

	enriched := enrichChallenge(*raw, s.fees.PlatformFeePercent(ctx))
	s.itemCache.Add(id, enriched)
	return &enriched, nil
}

// SearchChallenges runs a filtered search. Results are enriched with the
// current fee snapshot but not cached: query-shaped results cannot share
// the collection key.
func (s *service) SearchChallenges(ctx context.Context, query domain.ChallengeSearchQuery) ([]domain.EnrichedChallenge, error) {
	raw, err := s.gateway.SearchChallenges(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextSearchChallenges, err)
	}
	return enrichChallenges(raw, s.fees.PlatformFeePercent(ctx)), nil
}

// ActivityFeed returns the global activity feed
func (s *service) ActivityFeed(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	feed, err := s.gateway.ActivityFeed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextActivityFeed, err)
	}
	return feed, nil
}

// JoinChallenge stakes an amount on a challenge. The local cache is only
// ever touched after the server confirms the mutation: on failure the
// cached collections are byte-for-byte unchanged.
func (s *service) JoinChallenge(ctx context.Context, id string, stake float64, email string) (*domain.JoinResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgJoinCalled, "challenge_id", id, "stake", stake)

	if id == "" {
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgChallengeIDRequired, domain.ErrValidation)
	}
	if stake <= 0 {
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgStakeMustBePositive, domain.ErrValidation)
	}

	resolved := s.resolveEmail(email)
	if resolved == "" {
		return nil, domain.ErrNotAuthenticated
	}

	feeCfg := s.fees.Config(ctx)
	if stake < feeCfg.MinBet || stake > feeCfg.MaxBet {
		return nil, fmt.Errorf("%s [%v, %v]: %w", domain.ErrMsgStakeOutsideBounds, feeCfg.MinBet, feeCfg.MaxBet, domain.ErrValidation)
	}

	// Optimistic pool snapshot for the event payload; the authoritative
	// pool arrives with the next refresh
	snapshot := s.poolSnapshot(ctx, id, stake, feeCfg.PlatformFeePercent)

	result, err := s.gateway.JoinChallenge(ctx, id, stake, resolved)
	if err != nil {
		return nil, err
	}

	s.invalidateCollections()
	metrics.ChallengesJoined.Inc()
	s.publish(event.NewChallengeJoinedEvent(id, resolved, stake, snapshot, result.Participation))
	log.Info(LogMsgJoinSucceeded, "challenge_id", id)

	return result, nil
}

// CompleteChallenge reports a challenge as completed and surfaces the
// settlement outcome in the published event
func (s *service) CompleteChallenge(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCompleteCalled, "challenge_id", id)

	if id == "" {
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgChallengeIDRequired, domain.ErrValidation)
	}

	resolved := s.resolveEmail(email)
	if resolved == "" {
		return nil, domain.ErrNotAuthenticated
	}

	res, err := s.gateway.CompleteChallenge(ctx, id, result, resolved)
	if err != nil {
		return nil, err
	}

	s.invalidateCollections()
	metrics.ChallengesCompleted.Inc()
	s.publish(event.NewChallengeCompletedEvent(id, resolved, *res))
	if res.AutoValidated {
		s.publish(event.NewAutoValidatedEvent(id))
	}
	log.Info(LogMsgCompleteSucceeded, "challenge_id", id, "is_winner", res.IsWinner)

	return res, nil
}

// SubmitResult submits an intermediate result for server-side validation
func (s *service) SubmitResult(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSubmitCalled, "challenge_id", id)

	if id == "" {
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgChallengeIDRequired, domain.ErrValidation)
	}

	resolved := s.resolveEmail(email)
	if resolved == "" {
		return nil, domain.ErrNotAuthenticated
	}

	res, err := s.gateway.SubmitResult(ctx, id, result, resolved)
	if err != nil {
		return nil, err
	}

	s.invalidateCollections()
	if res.AutoValidated {
		s.publish(event.NewAutoValidatedEvent(id))
	}

	return res, nil
}

// GetUserParticipation answers "is this user in this challenge" from the
// loaded participations collection first; only a local miss costs a network
// call. (nil, nil) means "not participating" - a valid steady state.
func (s *service) GetUserParticipation(ctx context.Context, challengeID, email string) (*domain.EnrichedParticipation, error) {
	resolved := s.resolveEmail(email)
	if resolved == "" {
		return nil, nil
	}

	s.partMu.Lock()
	sameUser := s.partEmail == resolved
	s.partMu.Unlock()

	if sameUser {
		if cached, ok := s.participations.Peek(); ok {
			for i := range cached {
				if cached[i].ChallengeID == challengeID && cached[i].UserEmail == resolved {
					return &cached[i], nil
				}
			}
		}
	}

	raw, err := s.gateway.GetParticipation(ctx, challengeID, resolved)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetParticipation, err)
	}

	enriched := enrichParticipation(*raw, s.fees.PlatformFeePercent(ctx))
	return &enriched, nil
}

// GetMyParticipations lists the resolved user's participations. An explicit
// email always wins over the ambient identity; with neither, a well-formed
// empty result is returned because "not logged in" is an expected state.
func (s *service) GetMyParticipations(ctx context.Context, email string) (*domain.ParticipationList, error) {
	resolved := s.resolveEmail(email)
	if resolved == "" {
		return &domain.ParticipationList{
			Success:        false,
			Participations: []domain.EnrichedParticipation{},
			Total:          0,
		}, nil
	}

	s.partMu.Lock()
	if s.partEmail != resolved {
		s.partEmail = resolved
		s.partMu.Unlock()
		s.participations.Invalidate()
	} else {
		s.partMu.Unlock()
	}

	participations, err := s.participations.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ParticipationList{
		Success:        true,
		Participations: participations,
		Total:          len(participations),
	}, nil
}

// Refresh forces a challenge collection refresh, plus the participations
// collection when one is loaded
func (s *service) Refresh(ctx context.Context) error {
	if err := s.challenges.Refresh(ctx); err != nil {
		return err
	}
	if _, ok := s.participations.Peek(); ok {
		return s.participations.Refresh(ctx)
	}
	return nil
}

// InvalidateSettings reacts to a platform settings mutation: the fee config
// is dropped and both collections are invalidated so the next read
// re-enriches under the new fee.
func (s *service) InvalidateSettings() {
	s.fees.Invalidate()
	s.invalidateCollections()
}

// StartAutoSync begins periodic background refreshes. Starting again
// replaces the existing timer; timers never stack.
func (s *service) StartAutoSync(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAutoSyncInterval
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if s.syncCancel != nil {
		s.syncCancel()
		<-s.syncDone
		logger.Info(LogMsgAutoSyncReplaced, "interval", interval)
	} else {
		logger.Info(LogMsgAutoSyncStarted, "interval", interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.syncCancel = cancel
	s.syncDone = done

	go s.autoSyncLoop(ctx, interval, done)
}

// StopAutoSync stops the background refresh timer, if running
func (s *service) StopAutoSync() {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if s.syncCancel == nil {
		return
	}
	s.syncCancel()
	<-s.syncDone
	s.syncCancel = nil
	s.syncDone = nil
	logger.Info(LogMsgAutoSyncStopped)
}

func (s *service) autoSyncLoop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				logger.Warn(LogMsgAutoSyncTickFailed, "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Reset clears all session-scoped state: cached collections, the fee
// config, the item LRU, the auto-sync timer and every bus subscription.
// Called on logout so nothing leaks across sessions.
func (s *service) Reset() {
	s.StopAutoSync()

	s.challenges.Invalidate()
	s.participations.Invalidate()
	s.itemCache.Purge()
	s.fees.Invalidate()

	s.partMu.Lock()
	s.partEmail = ""
	s.partMu.Unlock()

	s.bus.Reset()
	logger.Info(LogMsgServiceReset)
}

// Shutdown waits for in-flight background refreshes to finish
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	s.StopAutoSync()

	finished := make(chan struct{})
	go func() {
		s.challenges.Wait()
		s.participations.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		log.Info(LogMsgShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownForced)
		return ctx.Err()
	}
}

// resolveEmail applies the identity resolution priority: an explicit
// argument always wins over the ambient session identity
func (s *service) resolveEmail(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.identity == nil {
		return ""
	}
	if ident := s.identity.CurrentIdentity(); ident != nil {
		return ident.Email
	}
	return ""
}

// poolSnapshot computes the optimistic post-join pool breakdown from the
// best locally known total. Never touches the network beyond the fee value
// the caller already resolved.
func (s *service) poolSnapshot(ctx context.Context, challengeID string, stake, feePercent float64) domain.PoolCalculation {
	var total float64
	if cached, ok := s.challenges.Peek(); ok {
		for i := range cached {
			if cached[i].ID == challengeID {
				total = cached[i].TotalPool
				break
			}
		}
	}
	return pool.Calculate(total+stake, feePercent)
}

func (s *service) invalidateCollections() {
	s.challenges.Invalidate()
	s.participations.Invalidate()
	s.itemCache.Purge()
}

func (s *service) publish(e event.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(context.Background(), e)
}
