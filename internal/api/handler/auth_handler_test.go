package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/core/ports"
)

type stubSessionManager struct {
	snap domain.Session

	loginRes   ports.SessionResult
	loginCreds ports.Credentials

	logoutCalled int

	profileRes ports.SessionResult
}

func (s *stubSessionManager) Restore(_ context.Context) {}

func (s *stubSessionManager) Login(_ context.Context, creds ports.Credentials) ports.SessionResult {
	s.loginCreds = creds
	return s.loginRes
}

func (s *stubSessionManager) Logout(_ context.Context) { s.logoutCalled++ }

func (s *stubSessionManager) UpdateProfile(_ context.Context, _ domain.ProfilePatch) ports.SessionResult {
	return s.profileRes
}

func (s *stubSessionManager) ClearError() { s.snap.Error = "" }

func (s *stubSessionManager) Snapshot() domain.Session { return s.snap }

// pageRenderer records the template name and page data handed to Render.
type pageRenderer struct {
	name string
	page view.Page
}

func (r *pageRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	if p, ok := data.(view.Page); ok {
		r.page = p
	}
	return nil
}

func newEcho() (*echo.Echo, *pageRenderer) {
	e := echo.New()
	renderer := &pageRenderer{}
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e, renderer
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_LoginPage_ShowsSessionError(t *testing.T) {
	e, renderer := newEcho()
	sessions := &stubSessionManager{snap: domain.Session{Status: domain.StatusAnonymous, Error: "bad credentials"}}
	h := NewAuthHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if renderer.name != "login.html" {
		t.Fatalf("unexpected template: %q", renderer.name)
	}
	if renderer.page.Error != "bad credentials" {
		t.Fatalf("expected inline error, got %q", renderer.page.Error)
	}
}

func TestAuthHandler_Login_SuccessRedirectsHome(t *testing.T) {
	e, _ := newEcho()
	sessions := &stubSessionManager{loginRes: ports.SessionResult{Success: true}}
	h := NewAuthHandler(sessions)

	c, rec := postForm(e, "/login", url.Values{
		"username":    {"admin"},
		"password":    {"secret"},
		"remember_me": {"true"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sessions.loginCreds.Username != "admin" || sessions.loginCreds.Password != "secret" || !sessions.loginCreds.RememberMe {
		t.Fatalf("credentials not passed through: %+v", sessions.loginCreds)
	}
}

func TestAuthHandler_Login_FailureRerendersWithMessage(t *testing.T) {
	e, renderer := newEcho()
	sessions := &stubSessionManager{loginRes: ports.SessionResult{Success: false, Message: "bad credentials"}}
	h := NewAuthHandler(sessions)

	c, rec := postForm(e, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if renderer.name != "login.html" || renderer.page.Error != "bad credentials" {
		t.Fatalf("expected login form with inline error, got %q / %q", renderer.name, renderer.page.Error)
	}
}

func TestAuthHandler_Login_MissingFieldsFailValidation(t *testing.T) {
	e, renderer := newEcho()
	sessions := &stubSessionManager{loginRes: ports.SessionResult{Success: true}}
	h := NewAuthHandler(sessions)

	c, rec := postForm(e, "/login", url.Values{"username": {"admin"}})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if renderer.page.Error == "" {
		t.Fatalf("expected a validation message")
	}
}

func TestAuthHandler_Logout_RedirectsToLogin(t *testing.T) {
	e, _ := newEcho()
	sessions := &stubSessionManager{snap: domain.Session{Status: domain.StatusAuthenticated, Token: "abc123"}}
	h := NewAuthHandler(sessions)

	c, rec := postForm(e, "/logout", url.Values{})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sessions.logoutCalled != 1 {
		t.Fatalf("expected logout call, got %d", sessions.logoutCalled)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
