package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/config"
	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/database/dbtest"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
)

const testSecret = "test-session-secret"

type fakeGithub struct {
	identity    models.GithubIdentity
	exchangeErr error
}

func (f *fakeGithub) AuthCodeURL(state string) string {
	return "https://github.test/login/oauth/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeGithub) Exchange(ctx context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return "gho_token", nil
}

func (f *fakeGithub) FetchUser(ctx context.Context, accessToken string) (models.GithubIdentity, error) {
	return f.identity, nil
}

type testAPI struct {
	t        *testing.T
	db       database.Database
	github   *fakeGithub
	settings config.Settings
	handler  http.Handler
}

func newTestAPI(t *testing.T, tweak ...func(*config.Settings)) *testAPI {
	t.Helper()

	settings := config.Settings{
		BaseURL:         "http://app.test",
		AcceptedOrigins: []string{"http://app.test"},
		AllowedEmails:   []string{"allowed@example.com"},
		SessionSecret:   testSecret,
		SessionCookie:   "session",
		MaxImageBytes:   1 << 20,
	}
	for _, fn := range tweak {
		fn(&settings)
	}

	db := dbtest.Open(t)
	github := &fakeGithub{}
	svc := NewServices(db, settings, github, nil, nil)
	return &testAPI{
		t:        t,
		db:       db,
		github:   github,
		settings: settings,
		handler:  newRouter(svc, withSettings(settings), withStartupTime(time.Now())),
	}
}

func (a *testAPI) token(email string) string {
	a.t.Helper()
	tok, err := IssueSessionToken(testSecret, Session{Email: email, Name: "Tester", GoogleID: "g-" + email}, time.Hour)
	if err != nil {
		a.t.Fatalf("issue token: %v", err)
	}
	return tok
}

// do sends a request as email; an empty email sends it anonymously.
func (a *testAPI) do(method, path, email string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(email))
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) seedUser(email, githubUsername string, role models.UserRole) *models.User {
	a.t.Helper()
	user := &models.User{Email: email, Name: strings.Split(email, "@")[0], GithubUsername: githubUsername, Role: role}
	if err := a.db.UserRepo().Add(context.Background(), user); err != nil {
		a.t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func (a *testAPI) seedProject(name string) *models.Project {
	a.t.Helper()
	project := &models.Project{Name: name}
	if err := a.db.ProjectRepo().Add(context.Background(), project); err != nil {
		a.t.Fatalf("seed project %s: %v", name, err)
	}
	return project
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

var _ services.GithubClient = (*fakeGithub)(nil)
