package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
)

func seedUser(t *testing.T, db database.Database, email, githubUsername string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		Name:           strings.Split(email, "@")[0],
		GithubUsername: githubUsername,
		Role:           role,
	}
	if err := db.UserRepo().Add(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedProject(t *testing.T, db database.Database, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name}
	if err := db.ProjectRepo().Add(context.Background(), project); err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	return project
}

func seedRefs(t *testing.T, db database.Database, projectID string, refs ...models.MemberRef) {
	t.Helper()
	if err := db.MembershipRepo().AddRefs(context.Background(), projectID, refs); err != nil {
		t.Fatalf("seed memberships: %v", err)
	}
}

func openVoting(t *testing.T, db database.Database, end *time.Time) {
	t.Helper()
	start := time.Now().UTC().Add(-time.Hour)
	status := models.VotingStatus{IsOpen: true, StartTime: &start, EndTime: end}
	if err := db.VotingStatusRepo().Save(context.Background(), &status); err != nil {
		t.Fatalf("open voting: %v", err)
	}
}

func countRows(t *testing.T, db database.Database, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	tx := db.GetDB().Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func wantStatus(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", code)
	}
	if got := errs.StatusCode(err); got != code {
		t.Fatalf("expected status %d, got %d (%v)", code, got, err)
	}
}
