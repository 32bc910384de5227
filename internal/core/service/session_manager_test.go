package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/core/ports"
)

type stubStore struct {
	token    string
	userData []byte

	loadErr  error
	saveErr  error
	clearErr error

	cleared int
}

func (s *stubStore) Load(_ context.Context) (string, []byte, error) {
	if s.loadErr != nil {
		return "", nil, s.loadErr
	}
	return s.token, s.userData, nil
}

func (s *stubStore) Save(_ context.Context, token string, userData []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	s.userData = userData
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.cleared++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	s.userData = nil
	return nil
}

type stubAuthClient struct {
	token string

	loginRes *ports.LoginResult
	loginErr error
	// loginGate, when set, blocks Login until the channel is closed.
	loginGate    chan struct{}
	loginStarted chan struct{}

	logoutErr    error
	logoutCalled int

	profileRes *ports.ProfileResult
	profileErr error
}

func (c *stubAuthClient) SetAuthToken(token string) { c.token = token }

func (c *stubAuthClient) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	if c.loginStarted != nil {
		close(c.loginStarted)
		c.loginStarted = nil
	}
	if c.loginGate != nil {
		<-c.loginGate
	}
	if c.loginErr != nil {
		return nil, c.loginErr
	}
	return c.loginRes, nil
}

func (c *stubAuthClient) Logout(_ context.Context) error {
	c.logoutCalled++
	return c.logoutErr
}

func (c *stubAuthClient) UpdateProfile(_ context.Context, _ domain.ProfilePatch) (*ports.ProfileResult, error) {
	if c.profileErr != nil {
		return nil, c.profileErr
	}
	return c.profileRes, nil
}

func newManager(store ports.SessionStore, client ports.AuthClient) *SessionManager {
	return NewSessionManager(store, client, zerolog.Nop())
}

func TestSessionManager_StartsUninitialized(t *testing.T) {
	m := newManager(&stubStore{}, &stubAuthClient{})

	snap := m.Snapshot()
	if !snap.IsLoading() {
		t.Fatalf("expected loading before restore, got %+v", snap)
	}
	if snap.IsAuthenticated() {
		t.Fatalf("expected unauthenticated before restore")
	}
}

func TestSessionManager_LoginThenRestore(t *testing.T) {
	store := &stubStore{}
	client := &stubAuthClient{
		loginRes: &ports.LoginResult{
			Success: true,
			Token:   "abc123",
			User:    &domain.User{ID: 7, Username: "admin", Email: "admin@site.test"},
		},
	}
	m := newManager(store, client)
	m.Restore(context.Background())

	res := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "secret"})
	if !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}

	snap := m.Snapshot()
	if !snap.IsAuthenticated() || snap.Token != "abc123" {
		t.Fatalf("unexpected session after login: %+v", snap)
	}
	if client.token != "abc123" {
		t.Fatalf("client token not propagated, got %q", client.token)
	}
	if store.token != "abc123" || len(store.userData) == 0 {
		t.Fatalf("session not persisted as a pair: token=%q user=%q", store.token, store.userData)
	}

	// Simulated new process: fresh manager over the same store.
	client2 := &stubAuthClient{}
	m2 := newManager(store, client2)
	m2.Restore(context.Background())

	snap2 := m2.Snapshot()
	if !snap2.IsAuthenticated() || snap2.Token != "abc123" {
		t.Fatalf("restore did not reproduce session: %+v", snap2)
	}
	if snap2.User == nil || snap2.User.ID != 7 || snap2.User.Username != "admin" {
		t.Fatalf("restore did not reproduce user: %+v", snap2.User)
	}
	if client2.token != "abc123" {
		t.Fatalf("restore did not propagate token to client, got %q", client2.token)
	}
}

func TestSessionManager_Login_SynthesizesMissingUser(t *testing.T) {
	store := &stubStore{}
	client := &stubAuthClient{
		loginRes: &ports.LoginResult{Success: true, Token: "abc123"},
	}
	m := newManager(store, client)

	res := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "secret"})
	if !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}

	want := domain.User{ID: 1, Username: "admin", FirstName: "Admin", LastName: "User", Email: "admin@example.com"}
	snap := m.Snapshot()
	if snap.User == nil || *snap.User != want {
		t.Fatalf("unexpected synthesized user: %+v", snap.User)
	}

	// The placeholder is persisted too: a fresh restore sees the same user.
	var persisted domain.User
	if err := json.Unmarshal(store.userData, &persisted); err != nil {
		t.Fatalf("persisted user does not decode: %v", err)
	}
	if persisted != want {
		t.Fatalf("persisted user mismatch: %+v", persisted)
	}
}

func TestSessionManager_Login_Rejected(t *testing.T) {
	client := &stubAuthClient{
		loginRes: &ports.LoginResult{Success: false, Error: "bad credentials"},
	}
	m := newManager(&stubStore{}, client)

	res := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "wrong"})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "bad credentials" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	snap := m.Snapshot()
	if snap.IsAuthenticated() {
		t.Fatalf("expected anonymous session after rejected login")
	}
	if snap.IsLoading() {
		t.Fatalf("loading flag must clear after login failure")
	}
	if snap.Error == "" {
		t.Fatalf("expected session error to be set")
	}
}

func TestSessionManager_Login_TransportError(t *testing.T) {
	client := &stubAuthClient{loginErr: errors.New("connection refused")}
	m := newManager(&stubStore{}, client)

	res := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "secret"})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "connection refused" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if m.Snapshot().IsAuthenticated() {
		t.Fatalf("expected anonymous session after transport failure")
	}
}

func TestSessionManager_Login_SecondCallFailsFast(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	client := &stubAuthClient{
		loginRes:     &ports.LoginResult{Success: true, Token: "abc123"},
		loginGate:    gate,
		loginStarted: started,
	}
	m := newManager(&stubStore{}, client)

	done := make(chan ports.SessionResult, 1)
	go func() {
		done <- m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "secret"})
	}()

	<-started
	res := m.Login(context.Background(), ports.Credentials{Username: "admin", Password: "secret"})
	if res.Success {
		t.Fatalf("expected in-flight guard to reject the second login")
	}
	if res.Message != domain.ErrLoginInFlight.Error() {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	close(gate)
	if first := <-done; !first.Success {
		t.Fatalf("first login should still succeed: %s", first.Message)
	}
}

func TestSessionManager_Logout_CleansUpEvenWhenNotificationFails(t *testing.T) {
	store := &stubStore{token: "abc123", userData: []byte(`{"id":1,"username":"admin"}`)}
	client := &stubAuthClient{logoutErr: errors.New("api down")}
	m := newManager(store, client)
	m.Restore(context.Background())

	if !m.Snapshot().IsAuthenticated() {
		t.Fatalf("expected authenticated session before logout")
	}

	m.Logout(context.Background())

	if client.logoutCalled != 1 {
		t.Fatalf("expected one logout notification, got %d", client.logoutCalled)
	}
	snap := m.Snapshot()
	if snap.IsAuthenticated() || snap.Token != "" || snap.User != nil {
		t.Fatalf("expected anonymous session after logout: %+v", snap)
	}
	if store.cleared == 0 || store.token != "" || store.userData != nil {
		t.Fatalf("expected persisted session purged")
	}
	if client.token != "" {
		t.Fatalf("expected client token cleared, got %q", client.token)
	}
}

func TestSessionManager_Restore_TokenOnlyPurgesBoth(t *testing.T) {
	store := &stubStore{token: "abc123"}
	m := newManager(store, &stubAuthClient{})
	m.Restore(context.Background())

	snap := m.Snapshot()
	if snap.IsAuthenticated() || snap.IsLoading() {
		t.Fatalf("expected resolved anonymous session: %+v", snap)
	}
	if store.cleared == 0 || store.token != "" {
		t.Fatalf("expected both entries purged")
	}
}

func TestSessionManager_Restore_CorruptUserPurgesBoth(t *testing.T) {
	store := &stubStore{token: "abc123", userData: []byte("undefined")}
	m := newManager(store, &stubAuthClient{})
	m.Restore(context.Background())

	if m.Snapshot().IsAuthenticated() {
		t.Fatalf("expected anonymous session for corrupt user record")
	}
	if store.cleared == 0 || store.token != "" || store.userData != nil {
		t.Fatalf("expected both entries purged")
	}
}

func TestSessionManager_Restore_StoreErrorResolvesAnonymous(t *testing.T) {
	store := &stubStore{loadErr: errors.New("store down")}
	m := newManager(store, &stubAuthClient{})
	m.Restore(context.Background())

	snap := m.Snapshot()
	if snap.IsAuthenticated() || snap.IsLoading() {
		t.Fatalf("expected resolved anonymous session: %+v", snap)
	}
}

func TestSessionManager_UpdateProfile_Success(t *testing.T) {
	store := &stubStore{token: "abc123", userData: []byte(`{"id":1,"username":"admin"}`)}
	client := &stubAuthClient{
		profileRes: &ports.ProfileResult{
			Success: true,
			User:    &domain.User{ID: 1, Username: "admin", FirstName: "Ada", Email: "ada@site.test"},
		},
	}
	m := newManager(store, client)
	m.Restore(context.Background())

	res := m.UpdateProfile(context.Background(), domain.ProfilePatch{FirstName: "Ada", Email: "ada@site.test"})
	if !res.Success {
		t.Fatalf("update failed: %s", res.Message)
	}

	snap := m.Snapshot()
	if snap.User == nil || snap.User.FirstName != "Ada" {
		t.Fatalf("user record not replaced: %+v", snap.User)
	}
	if snap.Token != "abc123" || !snap.IsAuthenticated() {
		t.Fatalf("profile update must not touch the token: %+v", snap)
	}
}

func TestSessionManager_UpdateProfile_FailureLeavesSessionAlone(t *testing.T) {
	store := &stubStore{token: "abc123", userData: []byte(`{"id":1,"username":"admin"}`)}
	client := &stubAuthClient{
		profileRes: &ports.ProfileResult{Success: false, Error: "email taken"},
	}
	m := newManager(store, client)
	m.Restore(context.Background())
	before := m.Snapshot()

	res := m.UpdateProfile(context.Background(), domain.ProfilePatch{Email: "taken@site.test"})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "email taken" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	after := m.Snapshot()
	if after.Token != before.Token || *after.User != *before.User {
		t.Fatalf("failed update must not mutate session: before=%+v after=%+v", before, after)
	}
	if after.Error != "" {
		t.Fatalf("profile failures are local to the caller, global error must stay empty: %q", after.Error)
	}
}

func TestSessionManager_ClearError(t *testing.T) {
	client := &stubAuthClient{loginRes: &ports.LoginResult{Success: false, Error: "nope"}}
	m := newManager(&stubStore{}, client)
	m.Login(context.Background(), ports.Credentials{Username: "x", Password: "y"})

	if m.Snapshot().Error == "" {
		t.Fatalf("precondition: expected an error set")
	}
	m.ClearError()
	if m.Snapshot().Error != "" {
		t.Fatalf("expected error cleared")
	}
}
