package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/psharishgithub/open-space-platform-pro/models"
)

func TestCheckAccess(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/check-access", "", map[string]string{})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = a.do(http.MethodPost, "/api/check-access", "", map[string]string{"email": "stranger@example.com"})
	expectStatus(t, rec, http.StatusForbidden)

	rec = a.do(http.MethodPost, "/api/check-access", "", map[string]string{"email": "ALLOWED@example.com"})
	expectStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/api/check-access", "allowed@example.com", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/api/check-access", "stranger@example.com", nil)
	expectStatus(t, rec, http.StatusForbidden)
}

func TestCreateUser_OnceThenConflict(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/create-user", "allowed@example.com", nil)
	expectStatus(t, rec, http.StatusCreated)

	body := decode[createUserResponse](t, rec)
	if body.User == nil || body.User.Email != "allowed@example.com" {
		t.Fatalf("unexpected user in response: %+v", body.User)
	}
	if body.User.GithubUsername != "temp_g-allowed@example.com" {
		t.Fatalf("expected placeholder username, got %q", body.User.GithubUsername)
	}
	if body.User.Role != models.RoleIndividual {
		t.Fatalf("expected INDIVIDUAL, got %s", body.User.Role)
	}

	rec = a.do(http.MethodPost, "/api/create-user", "allowed@example.com", nil)
	expectStatus(t, rec, http.StatusConflict)
	if got := decode[ErrorResponse](t, rec); got.Error != "User already exists" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
}

func TestCreateUser_NotAllowListed(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/create-user", "stranger@example.com", nil)
	expectStatus(t, rec, http.StatusForbidden)

	if _, err := a.db.UserRepo().FindByEmail(context.Background(), "stranger@example.com"); err == nil {
		t.Fatalf("denied email must not create a user")
	}
}

func TestCreateDevfestUser_SkipsAllowList(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/api/create-devfest-user", "guest@example.com", map[string]string{"name": "Guest"})
	expectStatus(t, rec, http.StatusCreated)

	rec = a.do(http.MethodPost, "/api/create-devfest-user", "guest@example.com", nil)
	expectStatus(t, rec, http.StatusConflict)
}

func TestUserProfile(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/api/user", "nobody@example.com", nil)
	expectStatus(t, rec, http.StatusNotFound)

	a.seedUser("ada@example.com", "ada", models.RoleIndividual)

	rec = a.do(http.MethodPatch, "/api/user", "ada@example.com", map[string]string{"name": "Ada L", "bio": "engines"})
	expectStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/api/user", "ada@example.com", nil)
	expectStatus(t, rec, http.StatusOK)
	profile := decode[map[string]any](t, rec)
	if profile["name"] != "Ada L" || profile["bio"] != "engines" {
		t.Fatalf("profile not updated: %v", profile)
	}
	if profile["hasVoted"] != false {
		t.Fatalf("expected hasVoted=false, got %v", profile["hasVoted"])
	}
}

func TestAdminEndpoints(t *testing.T) {
	a := newTestAPI(t)
	a.seedUser("admin@example.com", "admin", models.RoleAdmin)
	a.seedUser("ada@example.com", "ada", models.RoleIndividual)

	rec := a.do(http.MethodGet, "/api/auth/check-admin", "ada@example.com", nil)
	expectStatus(t, rec, http.StatusForbidden)

	rec = a.do(http.MethodGet, "/api/auth/check-admin", "admin@example.com", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodPut, "/api/admin/update-user", "ada@example.com", map[string]string{"email": "admin@example.com", "role": "INDIVIDUAL"})
	expectStatus(t, rec, http.StatusForbidden)

	rec = a.do(http.MethodPut, "/api/admin/update-user", "admin@example.com", map[string]string{"email": "ada@example.com"})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = a.do(http.MethodPut, "/api/admin/update-user", "admin@example.com", map[string]string{"email": "ghost@example.com", "role": "CURATOR"})
	expectStatus(t, rec, http.StatusNotFound)

	rec = a.do(http.MethodPut, "/api/admin/update-user", "admin@example.com", map[string]string{"email": "ada@example.com", "role": "CURATOR"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.User](t, rec); got.Role != models.RoleCurator {
		t.Fatalf("expected CURATOR, got %s", got.Role)
	}
}
