// Package session owns the signed-in identity of the client: the credential
// token, the cached user profile and the Anonymous -> Authenticating ->
// Authenticated state machine.
//
// Stores depend on a Provider (satisfied by *Manager) passed to their
// constructors. They read Current before each request and Subscribe to
// identity changes so they can discard data that belongs to another user.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/api"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/storage"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/cryptox"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// Provider is the read side of the manager used by the stores.
type Provider interface {
	Current() models.Session
	// Subscribe registers fn for every published session. Listeners run
	// synchronously in publication order and must not call back into
	// Login, Logout, Restore or Expire.
	Subscribe(fn func(models.Session)) (cancel func())
	// Expire reports that the API rejected token.
	Expire(ctx context.Context, token string)
}

type subscriber struct {
	id int
	fn func(models.Session)
}

type Manager struct {
	api      api.AuthClient
	tokens   storage.TokenStore
	verifier Verifier
	logger   logging.Logger

	mu    sync.Mutex
	state models.Session
	gen   uint64

	// pubMu keeps state changes and their notifications in one order.
	pubMu sync.Mutex
	// storeMu serializes token store writes against gen checks.
	storeMu sync.Mutex

	subsMu  sync.Mutex
	subs    []subscriber
	nextSub int
}

var _ Provider = (*Manager)(nil)

func NewManager(client api.AuthClient, tokens storage.TokenStore, verifier Verifier, logger logging.Logger) *Manager {
	if verifier == nil {
		verifier = NopVerifier{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		api:      client,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.With("module", "session"),
		state:    models.Anonymous(),
	}
}

func (m *Manager) Current() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) Subscribe(fn func(models.Session)) func() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subsMu.Lock()
			defer m.subsMu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// begin starts a new identity operation; every older one becomes stale.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

func (m *Manager) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen
}

// publish sets the state if gen is still current and notifies subscribers.
func (m *Manager) publish(gen uint64, s models.Session) bool {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return false
	}
	m.state = s
	m.mu.Unlock()

	m.subsMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
	return true
}

// persist runs fn against the token store unless gen went stale.
func (m *Manager) persist(gen uint64, fn func() error) error {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	if !m.current(gen) {
		return common.ErrSessionChanged
	}
	return fn()
}

// trimEmail drops surrounding whitespace and keeps the address as typed.
// Case folding happens only in the pre-hash salt and in the server lookup.
func trimEmail(email string) string {
	return strings.TrimSpace(email)
}

// Login exchanges the credentials for a token, stores it, verifies the stored
// copy and fetches the profile. The previous identity is dropped as soon as
// Login starts. On any failure the token is discarded, the session returns to
// Anonymous and an *common.AuthenticationError is returned. The email format
// is left to the server; only an empty password is rejected locally.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	const op = "login"

	gen := m.begin()
	m.publish(gen, models.Session{Phase: models.PhaseAuthenticating})

	fail := func(err error) error {
		if errors.Is(err, common.ErrSessionChanged) {
			return &common.AuthenticationError{Op: op, Err: err}
		}
		if cerr := m.persist(gen, func() error { return m.tokens.Clear(ctx) }); cerr != nil && !errors.Is(cerr, common.ErrSessionChanged) {
			m.logger.Warn(ctx, "failed to discard token", "error", cerr)
		}
		m.publish(gen, models.Anonymous())
		m.logger.Info(ctx, "login failed", "error", err)
		return &common.AuthenticationError{Op: op, Err: err}
	}

	email = trimEmail(email)
	if password == "" {
		return fail(common.NewValidationError("password", "password is required"))
	}

	pw := []byte(password)
	defer cryptox.Wipe(pw)
	token, err := m.api.Login(ctx, email, cryptox.PrehashPassword(email, pw))
	if err != nil {
		return fail(err)
	}

	if err := m.persist(gen, func() error { return m.tokens.Save(ctx, token, nil) }); err != nil {
		return fail(err)
	}

	stored, _, err := m.tokens.Load(ctx)
	if err != nil {
		return fail(err)
	}
	if stored != token {
		return fail(fmt.Errorf("%w: stored token does not match", common.ErrInvalidToken))
	}
	if err := m.verifier.Verify(stored); err != nil {
		return fail(err)
	}

	user, err := m.api.Profile(ctx, stored)
	if err != nil {
		return fail(err)
	}

	if err := m.persist(gen, func() error { return m.tokens.Save(ctx, stored, user) }); err != nil {
		return fail(err)
	}
	if !m.publish(gen, models.Session{Phase: models.PhaseAuthenticated, Token: stored, User: user}) {
		return fail(common.ErrSessionChanged)
	}

	m.logger.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

// Register validates the form locally and creates the account. It does not
// sign in. Failures are *common.AuthenticationError wrapping either a
// *common.ValidationError or a *common.NetworkError.
func (m *Manager) Register(ctx context.Context, reg models.Registration) error {
	const op = "register"

	reg.Email = trimEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return &common.AuthenticationError{Op: op, Err: err}
	}

	pw := []byte(reg.Password)
	hashed := cryptox.PrehashPassword(reg.Email, pw)
	cryptox.Wipe(pw)
	if err := m.api.Register(ctx, reg.Email, hashed, strings.TrimSpace(reg.Name)); err != nil {
		m.logger.Info(ctx, "registration failed", "error", err)
		return &common.AuthenticationError{Op: op, Err: err}
	}

	m.logger.Info(ctx, "registered", "email", reg.Email)
	return nil
}

// Logout clears the stored token and publishes Anonymous. The session is
// Anonymous afterwards even if clearing the store failed.
func (m *Manager) Logout(ctx context.Context) error {
	gen := m.begin()
	err := m.persist(gen, func() error { return m.tokens.Clear(ctx) })
	m.publish(gen, models.Anonymous())

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.logger.Info(ctx, "logged out")
	return nil
}

// Restore resumes the session saved by a previous run. With nothing stored it
// leaves the session Anonymous and returns nil. When the API cannot be
// reached the cached profile is used; any other failure discards the token.
func (m *Manager) Restore(ctx context.Context) error {
	const op = "restore"

	gen := m.begin()

	token, cached, err := m.tokens.Load(ctx)
	if err != nil {
		m.publish(gen, models.Anonymous())
		return &common.AuthenticationError{Op: op, Err: err}
	}
	if token == "" {
		m.publish(gen, models.Anonymous())
		return nil
	}

	m.publish(gen, models.Session{Phase: models.PhaseAuthenticating})

	fail := func(err error) error {
		if cerr := m.persist(gen, func() error { return m.tokens.Clear(ctx) }); cerr != nil && !errors.Is(cerr, common.ErrSessionChanged) {
			m.logger.Warn(ctx, "failed to discard token", "error", cerr)
		}
		m.publish(gen, models.Anonymous())
		return &common.AuthenticationError{Op: op, Err: err}
	}

	if err := m.verifier.Verify(token); err != nil {
		return fail(err)
	}

	user, err := m.api.Profile(ctx, token)
	switch {
	case err == nil:
		if err := m.persist(gen, func() error { return m.tokens.Save(ctx, token, user) }); err != nil && !errors.Is(err, common.ErrSessionChanged) {
			m.logger.Warn(ctx, "failed to refresh cached profile", "error", err)
		}
	case errors.Is(err, common.ErrUnavailable) && cached != nil:
		m.logger.Warn(ctx, "server unavailable, using cached profile", "user_id", cached.ID)
		user = cached
	default:
		return fail(err)
	}

	if !m.publish(gen, models.Session{Phase: models.PhaseAuthenticated, Token: token, User: user}) {
		return &common.AuthenticationError{Op: op, Err: common.ErrSessionChanged}
	}
	m.logger.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Expire ends the session when token is still the current credential. It is
// called by stores that got 401 from the API; reports for an older token are
// ignored.
func (m *Manager) Expire(ctx context.Context, token string) {
	if token == "" || m.Current().Token != token {
		return
	}

	gen := m.begin()
	if err := m.persist(gen, func() error { return m.tokens.Clear(ctx) }); err != nil && !errors.Is(err, common.ErrSessionChanged) {
		m.logger.Warn(ctx, "failed to discard token", "error", err)
	}
	m.publish(gen, models.Anonymous())
	m.logger.Warn(ctx, "session expired")
}
