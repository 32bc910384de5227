package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/metrics"
	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/core/ports"
)

const (
	defaultLoginError   = "login failed"
	defaultProfileError = "profile update failed"
)

// SessionManager owns the process-wide authentication session. All
// mutation goes through its methods; the rest of the console only ever
// sees immutable snapshots.
type SessionManager struct {
	store  ports.SessionStore
	client ports.AuthClient
	log    zerolog.Logger

	mu            sync.RWMutex
	session       domain.Session
	loginInFlight bool
}

// NewSessionManager returns a manager in the Uninitialized state. Call
// Restore once before serving guarded routes.
func NewSessionManager(store ports.SessionStore, client ports.AuthClient, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		client:  client,
		log:     log,
		session: domain.Session{Status: domain.StatusUninitialized},
	}
}

// Restore rehydrates the session from the store. Both entries must be
// present and the user record must decode; anything less is corrupt state,
// purged without ceremony. Restore never fails outward.
func (m *SessionManager) Restore(ctx context.Context) {
	m.setStatus(domain.StatusRestoring)

	token, userData, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session store unreachable, starting anonymous")
		m.resetToAnonymous("")
		return
	}

	if token == "" && len(userData) == 0 {
		metrics.RestoresTotal.WithLabelValues("empty").Inc()
		m.resetToAnonymous("")
		return
	}

	// One entry without the other, or an undecodable user record, is an
	// integrity error: purge both and start anonymous.
	var user domain.User
	if token == "" || len(userData) == 0 || json.Unmarshal(userData, &user) != nil {
		m.log.Warn().Msg("partial or corrupt persisted session, purging")
		metrics.RestoresTotal.WithLabelValues("purged").Inc()
		m.purge(ctx)
		m.resetToAnonymous("")
		return
	}

	m.client.SetAuthToken(token)

	m.mu.Lock()
	m.session = domain.Session{
		Status: domain.StatusAuthenticated,
		User:   &user,
		Token:  token,
	}
	m.mu.Unlock()

	metrics.RestoresTotal.WithLabelValues("restored").Inc()
	metrics.SessionAuthenticated.Set(1)
	m.log.Info().Str("username", user.Username).Msg("session restored")
}

// Login authenticates against the management API. Failures come back in
// the result, never as a panic or error: the login page renders the
// message inline. A second login while one is in flight fails fast.
func (m *SessionManager) Login(ctx context.Context, creds ports.Credentials) ports.SessionResult {
	m.mu.Lock()
	if m.loginInFlight {
		m.mu.Unlock()
		return ports.SessionResult{Success: false, Message: domain.ErrLoginInFlight.Error()}
	}
	m.loginInFlight = true
	m.session.Status = domain.StatusRestoring
	m.session.Error = ""
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loginInFlight = false
		m.mu.Unlock()
	}()

	res, err := m.client.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return m.failLogin(err.Error())
	}
	if !res.Success {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		msg := res.Error
		if msg == "" {
			msg = defaultLoginError
		}
		return m.failLogin(msg)
	}
	if res.Token == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return m.failLogin(defaultLoginError)
	}

	user := res.User
	if user == nil {
		// The API sometimes omits the user record on login. Synthesize a
		// placeholder from the submitted username so the console has an
		// identity to show; the mismatch is logged, not hidden.
		m.log.Warn().Str("username", creds.Username).Msg("login response missing user record, synthesizing placeholder")
		user = placeholderUser(creds.Username)
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return m.failLogin(fmt.Sprintf("encode user record: %v", err))
	}

	// Token and user record are persisted as a pair or not at all. A store
	// failure keeps the in-memory session usable; the next process start
	// simply comes up anonymous.
	if err := m.store.Save(ctx, res.Token, userData); err != nil {
		m.log.Error().Err(err).Msg("failed to persist session")
	}

	m.client.SetAuthToken(res.Token)

	m.mu.Lock()
	m.session = domain.Session{
		Status: domain.StatusAuthenticated,
		User:   user,
		Token:  res.Token,
	}
	m.mu.Unlock()

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionAuthenticated.Set(1)
	m.log.Info().Str("username", user.Username).Msg("login succeeded")
	return ports.SessionResult{Success: true}
}

// Logout resets the session to anonymous. The remote notification is best
// effort; the local cleanup in the deferred block runs no matter what.
func (m *SessionManager) Logout(ctx context.Context) {
	defer func() {
		m.purge(ctx)
		m.resetToAnonymous("")
		m.log.Info().Msg("logged out")
	}()

	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("logout notification failed")
	}
}

// UpdateProfile replaces the session's user record on success. Failures
// are local to the caller: neither the user, the token, nor the session's
// global error field change.
func (m *SessionManager) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) ports.SessionResult {
	res, err := m.client.UpdateProfile(ctx, patch)
	if err != nil {
		return ports.SessionResult{Success: false, Message: err.Error()}
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = defaultProfileError
		}
		return ports.SessionResult{Success: false, Message: msg}
	}

	m.mu.Lock()
	if res.User != nil {
		m.session.User = res.User
	}
	m.session.Status = domain.StatusAuthenticated
	m.mu.Unlock()

	return ports.SessionResult{Success: true}
}

// ClearError drops the session's error message. No other field changes.
func (m *SessionManager) ClearError() {
	m.mu.Lock()
	m.session.Error = ""
	m.mu.Unlock()
}

// Snapshot returns a copy of the current session state.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *SessionManager) failLogin(msg string) ports.SessionResult {
	m.client.SetAuthToken("")
	m.resetToAnonymous(msg)
	m.log.Warn().Str("reason", msg).Msg("login failed")
	return ports.SessionResult{Success: false, Message: msg}
}

// purge clears both store entries and the client's token.
func (m *SessionManager) purge(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	m.client.SetAuthToken("")
}

func (m *SessionManager) resetToAnonymous(errMsg string) {
	m.mu.Lock()
	m.session = domain.Session{Status: domain.StatusAnonymous, Error: errMsg}
	m.mu.Unlock()
	metrics.SessionAuthenticated.Set(0)
}

func (m *SessionManager) setStatus(status domain.SessionStatus) {
	m.mu.Lock()
	m.session.Status = status
	m.mu.Unlock()
}

// placeholderUser mirrors the identity the console shows when the API
// omits the user record: id 1, "Admin User", <username>@example.com.
func placeholderUser(username string) *domain.User {
	return &domain.User{
		ID:        1,
		Username:  username,
		FirstName: "Admin",
		LastName:  "User",
		Email:     username + "@example.com",
	}
}
