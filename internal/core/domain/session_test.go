package domain

import "testing"

func TestSession_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"authenticated with token", Session{Status: StatusAuthenticated, Token: "abc123"}, true},
		{"authenticated without token", Session{Status: StatusAuthenticated}, false},
		{"anonymous with stale token", Session{Status: StatusAnonymous, Token: "abc123"}, false},
		{"restoring", Session{Status: StatusRestoring, Token: "abc123"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.IsAuthenticated(); got != tc.want {
				t.Fatalf("IsAuthenticated() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSession_IsLoading(t *testing.T) {
	if !(Session{Status: StatusUninitialized}).IsLoading() {
		t.Fatalf("uninitialized session must report loading")
	}
	if !(Session{Status: StatusRestoring}).IsLoading() {
		t.Fatalf("restoring session must report loading")
	}
	if (Session{Status: StatusAnonymous}).IsLoading() {
		t.Fatalf("anonymous session must not report loading")
	}
	if (Session{Status: StatusAuthenticated, Token: "abc123"}).IsLoading() {
		t.Fatalf("authenticated session must not report loading")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{"full name", &User{Username: "admin", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first name only", &User{Username: "admin", FirstName: "Ada"}, "Ada"},
		{"username fallback", &User{Username: "admin"}, "admin"},
		{"nil user", nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.DisplayName(); got != tc.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}
