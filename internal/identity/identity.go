// Package identity decouples the sync core from any particular session or
// token format. The core only ever consumes an opaque identity value from a
// Provider collaborator; how that identity is established (token store,
// session cookie, config) is someone else's concern.
package identity

import "sync"

// Identity is the resolved user identity. Email is the platform-wide
// user key passed to the backend as user_email.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Provider resolves the ambient session identity.
// CurrentIdentity returns nil when no session exists - an expected steady
// state for several callers, not an error.
type Provider interface {
	CurrentIdentity() *Identity
}

// ProviderFunc adapts a plain function to the Provider interface
type ProviderFunc func() *Identity

func (f ProviderFunc) CurrentIdentity() *Identity {
	return f()
}

// Static is a Provider backed by a settable value, used as the session
// store for server-to-server deployments and as a test double.
type Static struct {
	mu      sync.RWMutex
	current *Identity
}

// NewStatic creates a Static provider. An empty email means "not logged in".
func NewStatic(email string) *Static {
	s := &Static{}
	if email != "" {
		s.current = &Identity{Email: email}
	}
	return s
}

// CurrentIdentity returns the stored identity, or nil when unset
func (s *Static) CurrentIdentity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	ident := *s.current
	return &ident
}

// Set replaces the stored identity. Passing nil clears the session.
func (s *Static) Set(ident *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ident == nil {
		s.current = nil
		return
	}
	copied := *ident
	s.current = &copied
}
