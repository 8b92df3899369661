package models

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestUserRoleSatisfies(t *testing.T) {
	cases := []struct {
		role     UserRole
		required []UserRole
		want     bool
	}{
		{RoleAdmin, []UserRole{RoleCurator}, true},
		{RoleAdmin, nil, true},
		{RoleCurator, []UserRole{RoleCurator}, true},
		{RoleCurator, []UserRole{RoleAdmin}, false},
		{RoleIndividual, []UserRole{RoleCurator, RoleAdmin}, false},
		{RoleIndividual, []UserRole{RoleIndividual}, true},
	}
	for _, tc := range cases {
		if got := tc.role.Satisfies(tc.required...); got != tc.want {
			t.Fatalf("%s.Satisfies(%v) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestEnumsValid(t *testing.T) {
	if UserRole("OWNER").Valid() || !RoleCurator.Valid() {
		t.Fatalf("unexpected user role validity")
	}
	if ProjectRole("ADMIN").Valid() || !ProjectRoleOwner.Valid() {
		t.Fatalf("unexpected project role validity")
	}
	if ResourceType("video").Valid() || !ResourcePaper.Valid() {
		t.Fatalf("unexpected resource type validity")
	}
	if TagStatus("SHIPPED").Valid() || !TagInReview.Valid() {
		t.Fatalf("unexpected tag status validity")
	}
}

func TestMemberRefRow(t *testing.T) {
	resolved := ResolvedMember("user-1", ProjectRoleOwner)
	if resolved.IsPending() {
		t.Fatalf("resolved member reported pending")
	}
	row, ok := resolved.Row("project-1").(*ProjectUser)
	if !ok || row.UserID != "user-1" || row.ProjectID != "project-1" || row.Role != ProjectRoleOwner {
		t.Fatalf("unexpected resolved row %#v", resolved.Row("project-1"))
	}

	pending := PendingMember("carol", ProjectRoleContributor)
	if !pending.IsPending() {
		t.Fatalf("pending member reported resolved")
	}
	prow, ok := pending.Row("project-1").(*PendingProjectUser)
	if !ok || prow.GithubUsername != "carol" || prow.Role != ProjectRoleContributor {
		t.Fatalf("unexpected pending row %#v", pending.Row("project-1"))
	}

	member := prow.Resolve("user-2")
	if member.ProjectID != "project-1" || member.UserID != "user-2" || member.Role != ProjectRoleContributor {
		t.Fatalf("resolve lost fields: %#v", member)
	}
}

func TestVotingStatusExpired(t *testing.T) {
	now := time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name   string
		status VotingStatus
		want   bool
	}{
		{"closed", VotingStatus{IsOpen: false, EndTime: &past}, false},
		{"open without end", VotingStatus{IsOpen: true}, false},
		{"open before end", VotingStatus{IsOpen: true, EndTime: &future}, false},
		{"open at end", VotingStatus{IsOpen: true, EndTime: &now}, true},
		{"open after end", VotingStatus{IsOpen: true, EndTime: &past}, true},
	}
	for _, tc := range cases {
		if got := tc.status.Expired(now); got != tc.want {
			t.Fatalf("%s: Expired = %v, want %v", tc.name, got, tc.want)
		}
	}

	if ClosedVotingStatus().IsOpen {
		t.Fatalf("default voting status must be closed")
	}
}

func TestProjectLanguage(t *testing.T) {
	if got := (&Project{}).Language(); got != "Unknown" {
		t.Fatalf("expected Unknown, got %q", got)
	}
	p := &Project{TechStack: datatypes.JSONSlice[string]{"Rust", "Go"}}
	if got := p.Language(); got != "Rust" {
		t.Fatalf("expected first tech stack entry, got %q", got)
	}
}

func TestPlaceholderUsername(t *testing.T) {
	if got := PlaceholderUsername("1234"); got != "temp_1234" {
		t.Fatalf("unexpected placeholder %q", got)
	}
	a, b := PlaceholderUsername(""), PlaceholderUsername("")
	if !strings.HasPrefix(a, PlaceholderPrefix) || a == b {
		t.Fatalf("expected unique generated placeholders, got %q and %q", a, b)
	}

	u := &User{GithubUsername: a}
	if u.HasLinkedGithub() {
		t.Fatalf("placeholder username must not count as linked")
	}
	u.GithubUsername = "octocat"
	if !u.HasLinkedGithub() {
		t.Fatalf("real username must count as linked")
	}
}
