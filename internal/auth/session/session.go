// Package session owns the process-wide authentication state. Guards, the
// interceptor chain and the UI all read it synchronously; only the four
// lifecycle verbs mutate it.
package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/docustore/admin-console/internal/auth/claims"
	"github.com/docustore/admin-console/internal/auth/tokenstore"
	"github.com/docustore/admin-console/internal/core/domain"
)

// LoginPath is where teardown and forced logouts send the user.
const LoginPath = "/login"

// Manager holds the current credential and the user derived from it.
// Invariant: user is present iff credential is present and the last claim
// decode succeeded.
type Manager struct {
	store    *tokenstore.Store
	log      zerolog.Logger
	redirect func(path string)

	mu             sync.Mutex
	cred           *domain.Credential
	user           *domain.User
	authInProgress bool
}

// NewManager builds a manager over the given credential store.
func NewManager(store *tokenstore.Store, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// SetRedirect registers the router's navigation hook. Teardown and the 401
// translator use it; a nil hook makes teardown silent.
func (m *Manager) SetRedirect(fn func(path string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redirect = fn
}

// Initialize rebuilds the session from the credential store. Called once at
// process start. Any failure degrades to "logged out": a credential whose
// token no longer decodes is stale, so the slot is cleared.
func (m *Manager) Initialize() {
	cred, ok := m.store.Load()
	if !ok {
		return
	}
	user, err := deriveUser(cred)
	if err != nil {
		m.log.Warn().Err(err).Msg("stored credential no longer decodes, clearing slot")
		_ = m.store.Clear()
		return
	}
	m.mu.Lock()
	m.cred = &cred
	m.user = &user
	m.mu.Unlock()
}

// Establish persists the credential and installs the derived user. Called
// only by the auth gateway after a successful login; when logins race, the
// last establish to complete wins.
func (m *Manager) Establish(cred domain.Credential) error {
	user, err := deriveUser(cred)
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	if err := m.store.Save(cred); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	m.mu.Lock()
	m.cred = &cred
	m.user = &user
	m.mu.Unlock()
	return nil
}

// Teardown clears the credential everywhere and navigates to the login
// entry point.
func (m *Manager) Teardown() {
	m.Discard()
	m.mu.Lock()
	redirect := m.redirect
	m.mu.Unlock()
	if redirect != nil {
		redirect(LoginPath)
	}
}

// Discard clears the credential without forcing navigation. The error
// translator uses it on 401 so its own redirect does not collide with a
// guard-triggered one.
func (m *Manager) Discard() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing credential slot failed")
	}
	m.mu.Lock()
	m.cred = nil
	m.user = nil
	m.mu.Unlock()
}

// IsAuthenticated reports whether a credential is live.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred != nil
}

// HasRole reports whether the current user carries the role (after prefix
// stripping, exact match).
func (m *Manager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.HasRole(role)
}

// Token exposes the bearer value for the interceptor chain.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return "", false
	}
	return m.cred.Token, true
}

// User returns the derived session user, if any.
func (m *Manager) User() (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

// SetAuthInProgress flags an in-flight login attempt.
func (m *Manager) SetAuthInProgress(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authInProgress = v
}

// AuthInProgress reports whether a login attempt is in flight.
func (m *Manager) AuthInProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authInProgress
}

// deriveUser recomputes the session user from the credential. Username and
// roles always come from the decoded claims; identifiers, email and
// timestamps come from the embedded snapshot when the login response
// supplied one and stay placeholders otherwise.
func deriveUser(cred domain.Credential) (domain.User, error) {
	cs, err := claims.Decode(cred.Token)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{
		Username: cs.Subject,
		Roles:    cs.Roles,
	}
	if cred.User != nil {
		user.ID = cred.User.ID
		user.Email = cred.User.Email
		user.CompanyID = cred.User.CompanyID
		user.CreatedAt = cred.User.CreatedAt
		user.UpdatedAt = cred.User.UpdatedAt
	}
	return user, nil
}
