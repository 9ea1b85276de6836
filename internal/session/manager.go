// Package session owns the authenticated client state: the bearer token and
// user profile. There is exactly one active session per client, and this
// manager is its single writer.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kapilcyber/bank.ai-sub001/internal/apiclient"
	"github.com/kapilcyber/bank.ai-sub001/internal/authz"
	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
	"github.com/kapilcyber/bank.ai-sub001/internal/logger"
	"github.com/kapilcyber/bank.ai-sub001/internal/store"
	"github.com/kapilcyber/bank.ai-sub001/internal/validate"
)

// Manager holds the active session and keeps the persisted credentials in
// sync with it.
type Manager struct {
	api   *apiclient.Client
	store store.Store
	authz *authz.Engine

	mu      sync.RWMutex
	current *domain.Session
}

// NewManager creates a session manager.
func NewManager(api *apiclient.Client, st store.Store, az *authz.Engine) *Manager {
	return &Manager{api: api, store: st, authz: az}
}

// Current returns the active session, or nil when unauthenticated.
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Login authenticates against the backend. Form constraints are checked
// before any network call. A token issued to a role outside the admin
// allow-set is discarded again and the call fails with an access-denied
// error distinct from invalid credentials.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := validate.Login(email, password); err != nil {
		return nil, err
	}

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		logger.Warn("login.failed", "email", email)
		return nil, err
	}

	allowed, err := m.authz.IsAdminCapable(ctx, string(resp.User.Role))
	if err != nil {
		return nil, err
	}
	if !allowed {
		logger.Warn("login.denied", "email", email, "role", resp.User.Role)
		if err := m.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, domain.NewAccessDenied()
	}

	sess := &domain.Session{Token: resp.Token, Profile: resp.User}
	if err := m.store.SaveCredentials(ctx, sess.Token, sess.Profile); err != nil {
		return nil, err
	}
	m.api.SetToken(sess.Token)

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	logger.Info("login.ok", "uid", sess.Profile.ID, "role", sess.Profile.Role)
	return sess, nil
}

// Logout clears the active session and any persisted credentials. It always
// leaves the client unauthenticated; a persistence failure is logged but the
// in-memory state is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.api.ClearToken()
	if err := m.store.ClearCredentials(ctx); err != nil {
		logger.Error("logout.clear_credentials", "err", err)
		return err
	}
	return nil
}

// Restore loads persisted credentials at startup. A missing or expired token
// leaves the client unauthenticated; expired credentials are cleared.
func (m *Manager) Restore(ctx context.Context) (*domain.Session, error) {
	token, profile, err := m.store.LoadCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" || profile == nil {
		return nil, nil
	}
	if tokenExpired(token, time.Now()) {
		logger.Info("session.restore_expired")
		if err := m.store.ClearCredentials(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	sess := &domain.Session{Token: token, Profile: *profile}
	m.api.SetToken(token)

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return sess, nil
}

// Signup registers a new account after client-side validation.
func (m *Manager) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Profile, error) {
	if err := validate.Signup(req); err != nil {
		return nil, err
	}
	return m.api.Signup(ctx, req)
}

// SetPassword completes an invite or reset flow after client-side validation.
func (m *Manager) SetPassword(ctx context.Context, token, newPassword string) error {
	if err := validate.Password("new_password", newPassword); err != nil {
		return err
	}
	return m.api.SetPassword(ctx, token, newPassword)
}

// tokenExpired peeks at the JWT exp claim without verifying the signature.
// The backend remains the authority; this only avoids restoring a session
// the next request would reject anyway. Tokens that are not JWTs or carry no
// exp claim are treated as unexpired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
