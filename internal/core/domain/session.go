package domain

import "errors"

// SessionStatus represents the lifecycle state of the console session.
type SessionStatus string

const (
	// StatusUninitialized is the state before Restore has been invoked.
	StatusUninitialized SessionStatus = "uninitialized"
	// StatusRestoring covers the one-time startup restore and any login
	// call in flight.
	StatusRestoring SessionStatus = "restoring"
	// StatusAuthenticated means a token is held and requests are signed.
	StatusAuthenticated SessionStatus = "authenticated"
	// StatusAnonymous means no token is held; only public routes render.
	StatusAnonymous SessionStatus = "anonymous"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrLoginInFlight = errors.New("login already in progress")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrSessionIncomplete = errors.New("persisted session incomplete")

// User models the signed-in principal as reported by the management API.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Session is a point-in-time view of the authentication state. It is the
// value handed to the route guard and to page templates; mutation happens
// only through the session manager.
type Session struct {
	Status SessionStatus
	User   *User
	Token  string
	Error  string
}

// IsAuthenticated reports whether a token is held. It is derived, never
// stored: a session without a token can never be authenticated.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != ""
}

// IsLoading reports whether a restore or login is in flight. The route
// guard renders a waiting page instead of making a navigation decision
// while this is true.
func (s Session) IsLoading() bool {
	return s.Status == StatusUninitialized || s.Status == StatusRestoring
}
