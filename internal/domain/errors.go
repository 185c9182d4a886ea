package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Transport errors
	ErrMsgNetwork        = "network error"
	ErrMsgNetworkTimeout = "network timeout"

	// Caller input errors
	ErrMsgValidation           = "validation error"
	ErrMsgStakeMustBePositive  = "stake amount must be positive"
	ErrMsgStakeOutsideBounds   = "stake amount outside allowed bounds"
	ErrMsgChallengeIDRequired  = "challenge id is required"
	ErrMsgInvalidFeePercentage = "fee percentage out of range"

	// Identity errors
	ErrMsgNotAuthenticated = "not authenticated"

	// Lookup errors
	ErrMsgNotFound          = "not found"
	ErrMsgChallengeNotFound = "challenge not found"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%s: %w", context, domain.ErrXxx) for extra
// context and match with errors.Is across layers.
var (
	// ErrNetwork covers transport failures and non-2xx responses. Read
	// paths may recover by serving stale cache; write paths surface it
	// unchanged.
	ErrNetwork = errors.New(ErrMsgNetwork)

	// ErrNetworkTimeout is a client-side deadline expiry, kept distinct
	// from ErrNetwork so the cache's stale-serving fallback can treat
	// both uniformly while callers can still tell them apart.
	ErrNetworkTimeout = errors.New(ErrMsgNetworkTimeout)

	// ErrValidation means a caller-supplied argument violates a
	// precondition. Never retried.
	ErrValidation = errors.New(ErrMsgValidation)

	// ErrNotAuthenticated means no resolvable identity exists for an
	// identity-requiring write. Read paths return empty results instead.
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)

	// ErrNotFound is a valid steady state for participation lookups
	// ("not participating"), not a failure to log loudly.
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrChallengeNotFound = errors.New(ErrMsgChallengeNotFound)
)
