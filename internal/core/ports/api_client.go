package ports

import (
	"context"

	"github.com/northcms/console-gateway/internal/core/domain"
)

// LoginResult is the management API's login envelope. Success=false with a
// populated Error is an application-level rejection (bad credentials), not
// a transport failure.
type LoginResult struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ProfileResult is the envelope returned by profile mutations.
type ProfileResult struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// AuthClient is the slice of the management API the session manager needs.
// The full client (blogs, menus, settings, …) lives in infrastructure; the
// manager only ever touches these three calls plus the token setter.
type AuthClient interface {
	// SetAuthToken sets or clears the bearer token attached to all future
	// requests. Persistence of the token is the session manager's job, not
	// the client's.
	SetAuthToken(token string)

	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout notifies the API. Best effort: callers ignore the error beyond
	// logging it.
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*ProfileResult, error)
}
