package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/psharishgithub/open-space-platform-pro/database/dbtest"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
)

func TestAllowList(t *testing.T) {
	list := NewAllowList([]string{" Alice@Example.com ", "", "bob@example.com"})

	cases := map[string]bool{
		"alice@example.com":   true,
		"ALICE@EXAMPLE.COM":   true,
		" bob@example.com ":   true,
		"mallory@example.com": false,
		"":                    false,
	}
	for email, want := range cases {
		if got := list.Allows(email); got != want {
			t.Fatalf("Allows(%q) = %v, want %v", email, got, want)
		}
	}

	if NewAllowList(nil).Allows("alice@example.com") {
		t.Fatalf("empty allow-list must deny everyone")
	}
}

func TestResolveAllowed_RejectsWithoutSideEffects(t *testing.T) {
	db := dbtest.Open(t)
	existing := seedUser(t, db, "outsider@example.com", "temp_outsider", models.RoleIndividual)
	svc := NewIdentityService(db, NewAllowList([]string{"member@example.com"}))
	ctx := context.Background()

	for _, email := range []string{"stranger@example.com", "outsider@example.com"} {
		_, _, err := svc.ResolveAllowed(ctx, Identity{Email: email, Name: "Changed", GoogleID: "g-1"})
		if !errs.IsAccessDeniedError(err) {
			t.Fatalf("expected access denied for %s, got %v", email, err)
		}
		wantStatus(t, err, http.StatusForbidden)
	}

	if n := countRows(t, db, &models.User{}, ""); n != 1 {
		t.Fatalf("expected no new users, got %d rows", n)
	}
	after, err := db.UserRepo().FindByEmail(ctx, "outsider@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if after.Name != existing.Name || after.GithubUsername != existing.GithubUsername {
		t.Fatalf("rejected check mutated user: %+v", after)
	}
}

func TestCheckAccess(t *testing.T) {
	svc := NewIdentityService(dbtest.Open(t), NewAllowList([]string{"member@example.com"}))

	if err := svc.CheckAccess("Member@Example.com"); err != nil {
		t.Fatalf("expected access, got %v", err)
	}
	wantStatus(t, svc.CheckAccess("other@example.com"), http.StatusForbidden)
	wantStatus(t, svc.CheckAccess("  "), http.StatusBadRequest)
}

func TestResolve_CreatesPlaceholderUserOnce(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewIdentityService(db, NewAllowList(nil))
	ctx := context.Background()

	user, created, err := svc.Resolve(ctx, Identity{Email: " New@Example.com", Name: "New Person", GoogleID: "1234"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !created {
		t.Fatalf("expected user to be created")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.GithubUsername != "temp_1234" || user.HasLinkedGithub() {
		t.Fatalf("expected placeholder username, got %q", user.GithubUsername)
	}
	if user.Role != models.RoleIndividual {
		t.Fatalf("expected INDIVIDUAL, got %s", user.Role)
	}

	again, created, err := svc.Resolve(ctx, Identity{Email: "new@example.com", Name: "Other Name"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if created {
		t.Fatalf("second resolve must not create")
	}
	if again.ID != user.ID || again.Name != "New Person" {
		t.Fatalf("existing user changed: %+v", again)
	}
}

func TestResolve_PlaceholderWithoutProviderID(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewIdentityService(db, NewAllowList(nil))

	a, _, err := svc.Resolve(context.Background(), Identity{Email: "a@example.com"})
	if err != nil {
		t.Fatalf("resolve a: %v", err)
	}
	b, _, err := svc.Resolve(context.Background(), Identity{Email: "b@example.com"})
	if err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	if !strings.HasPrefix(a.GithubUsername, models.PlaceholderPrefix) || a.GithubUsername == b.GithubUsername {
		t.Fatalf("expected distinct placeholders, got %q and %q", a.GithubUsername, b.GithubUsername)
	}
}
