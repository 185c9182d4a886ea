package challenge

import "time"

// Cached collection keys
const (
	CollectionKeyChallenges     = "challenges"
	CollectionKeyParticipations = "participations"
)

// Cache tuning defaults
const (
	// DefaultFreshnessWindow is how long a cached collection is served
	// without triggering a background refresh
	DefaultFreshnessWindow = 30 * time.Second

	// DefaultAutoSyncInterval drives the background refresh timer
	DefaultAutoSyncInterval = 30 * time.Second

	// DefaultItemCacheSize bounds the single-challenge LRU
	DefaultItemCacheSize = 256

	// DefaultItemCacheTTL expires single-challenge entries
	DefaultItemCacheTTL = 30 * time.Second

	// DefaultActivityLimit caps activity feed requests without an
	// explicit limit
	DefaultActivityLimit = 20
)

// Error context strings
const (
	ErrContextListChallenges     = "failed to list challenges"
	ErrContextGetChallenge       = "failed to get challenge"
	ErrContextSearchChallenges   = "failed to search challenges"
	ErrContextActivityFeed       = "failed to fetch activity feed"
	ErrContextGetParticipation   = "failed to get participation"
	ErrContextListParticipations = "failed to list participations"
)

// Log messages
const (
	LogMsgJoinCalled              = "JoinChallenge called"
	LogMsgCompleteCalled          = "CompleteChallenge called"
	LogMsgSubmitCalled            = "SubmitResult called"
	LogMsgJoinSucceeded           = "Challenge joined, cache invalidated"
	LogMsgCompleteSucceeded       = "Challenge completed, cache invalidated"
	LogMsgBackgroundRefreshFailed = "Background refresh failed, serving stale data"
	LogMsgAutoSyncStarted         = "Auto-sync started"
	LogMsgAutoSyncReplaced        = "Auto-sync timer replaced"
	LogMsgAutoSyncStopped         = "Auto-sync stopped"
	LogMsgAutoSyncTickFailed      = "Auto-sync refresh failed"
	LogMsgServiceReset            = "Challenge service reset, all cached state cleared"
	LogMsgShuttingDown            = "Shutting down challenge service"
	LogMsgShutdownDone            = "Challenge service shutdown complete"
	LogMsgShutdownForced          = "Challenge service shutdown forced by context"
)
