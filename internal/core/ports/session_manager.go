package ports

import (
	"context"

	"github.com/northcms/console-gateway/internal/core/domain"
)

// Credentials is the login form payload.
type Credentials struct {
	Username   string
	Password   string
	RememberMe bool
}

// SessionResult is the value returned by Login and UpdateProfile. Failures
// travel here, not as errors: the calling page renders Message inline
// without a surrounding error handler.
type SessionResult struct {
	Success bool
	Message string
}

// SessionManager owns the process-wide authentication state.
type SessionManager interface {
	// Restore rehydrates the session from the store. Invoked exactly once
	// at startup, before any guarded route renders. It never fails
	// outward: corrupt or partial persisted state resolves to an
	// anonymous session with the store purged.
	Restore(ctx context.Context)

	Login(ctx context.Context, creds Credentials) SessionResult
	// Logout resets the session to anonymous and purges the store. The
	// remote notification is best effort.
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) SessionResult
	ClearError()

	// Snapshot returns the current session state. The route guard and the
	// page templates are pure functions of this value.
	Snapshot() domain.Session
}

// SessionReader is the read-only view consumed by the route guard.
type SessionReader interface {
	Snapshot() domain.Session
}
