package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
)

// Manager decides whether the current session is usable and refreshes it
// transparently. It is one of the two writers of the Store; the other is
// the request pipeline, which calls Invalidate on a 401. Both writes are
// total (present vs absent), so last-write-wins is safe.
type Manager struct {
	store  *Store
	client api.Client
	log    logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	onExpired func()
}

type Option func(*Manager)

// WithExpiryHook registers a callback fired at most once per session clear
// performed by Invalidate. The top-level coordinator uses it to own the
// "back to login" transition, keeping the pipeline free of UI coupling.
func WithExpiryHook(fn func()) Option {
	return func(m *Manager) { m.onExpired = fn }
}

// WithClock overrides the time source. Tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store *Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetClient wires the API client. The manager and the pipeline reference
// each other (the pipeline reads tokens from the manager, the manager
// refreshes through the pipeline), so one side is attached after both are
// constructed at bootstrap.
func (m *Manager) SetClient(c api.Client) {
	m.client = c
}

// IsExpired reports whether token's expiry claim is in the past. Malformed
// or claimless tokens count as expired.
func (m *Manager) IsExpired(token string) bool {
	return expiredAt(token, m.now())
}

// Token implements api.TokenSource.
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.store.Token(ctx)
}

// Invalidate implements api.TokenSource. It atomically checks for a stored
// credential and clears it, reporting whether this call performed the
// clear. Concurrent 401s may all land here, but only one caller wins, so
// the unauthenticated transition (and the expiry hook) happens exactly
// once per session.
func (m *Manager) Invalidate(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	if err := m.store.RemoveToken(ctx); err != nil {
		return false, err
	}

	if m.onExpired != nil {
		m.onExpired()
	}
	return true, nil
}

// Bootstrap runs once at application start and resolves the stored session
// into exactly one of two states before anything else renders:
// a verified profile (authenticated) or nil (unauthenticated).
//
//   - no stored token: unauthenticated, no network call;
//   - stored and unexpired: re-verify identity against the backend; any
//     verification failure clears the store;
//   - stored but expired: silent refresh; on success the new token and
//     profile replace the stored ones, on failure the store is cleared.
func (m *Manager) Bootstrap(ctx context.Context) (*models.User, error) {
	token, err := m.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	if m.IsExpired(token) {
		resp, err := m.client.RefreshToken(ctx)
		if err != nil {
			m.log.Info(ctx, "silent refresh failed, clearing session", "error", err)
			_ = m.store.RemoveToken(ctx)
			return nil, nil
		}
		if err := m.persist(ctx, resp); err != nil {
			return nil, err
		}
		return &resp.User, nil
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.log.Info(ctx, "identity verification failed, clearing session", "error", err)
		_ = m.store.RemoveToken(ctx)
		return nil, nil
	}
	if err := m.store.SetCachedProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates against the backend and persists the issued
// credential and profile.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := m.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := m.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account; the backend logs the new user straight in.
func (m *Manager) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
	resp, err := m.client.Register(ctx, models.RegisterRequest{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}
	if err := m.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout tells the backend, best effort, then clears the store
// unconditionally. A failed backend call never leaves the client
// logged in.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn(ctx, "backend logout failed", "error", err)
	}
	return m.store.RemoveToken(ctx)
}

// CachedProfile exposes the stored profile mirror for display purposes.
func (m *Manager) CachedProfile(ctx context.Context) (*models.User, error) {
	return m.store.CachedProfile(ctx)
}

// UpdateCachedProfile refreshes the mirror after a backend-confirmed
// profile mutation.
func (m *Manager) UpdateCachedProfile(ctx context.Context, u *models.User) error {
	return m.store.SetCachedProfile(ctx, u)
}

func (m *Manager) persist(ctx context.Context, resp *models.AuthResponse) error {
	if err := m.store.SetToken(ctx, resp.AccessToken); err != nil {
		return err
	}
	return m.store.SetCachedProfile(ctx, &resp.User)
}
