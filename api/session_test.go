package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/errs"
)

func TestParseSessionToken(t *testing.T) {
	tok, err := IssueSessionToken(testSecret, Session{Email: " Ada@Example.com ", Name: "Ada", GoogleID: "g1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s, err := parseSessionToken(testSecret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Email != "ada@example.com" || s.Name != "Ada" || s.GoogleID != "g1" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestParseSessionToken_Rejects(t *testing.T) {
	expired, err := IssueSessionToken(testSecret, Session{Email: "a@example.com"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := parseSessionToken(testSecret, expired); !errs.IsExpiredTokenError(err) {
		t.Fatalf("expected expired token error, got %v", err)
	}

	forged, err := IssueSessionToken("other-secret", Session{Email: "a@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := parseSessionToken(testSecret, forged); !errs.IsInvalidTokenError(err) {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	noEmail, err := IssueSessionToken(testSecret, Session{Name: "ghost"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := parseSessionToken(testSecret, noEmail); !errs.IsInvalidTokenError(err) {
		t.Fatalf("expected invalid token error for missing email, got %v", err)
	}
}

func TestSessionToken_HeaderThenCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	if got := sessionToken(req, "session"); got != "from-cookie" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer from-header")
	if got := sessionToken(req, "session"); got != "from-header" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestAuthenticate_CookieSession(t *testing.T) {
	a := newTestAPI(t)
	a.seedUser("cookie@example.com", "temp_cookie", "")

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: a.token("cookie@example.com")})
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
}

func TestAuthenticate_MissingOrBadSession(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/api/user", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusUnauthorized)
}
