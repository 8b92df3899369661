package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestKindErrorsMatchSentinels(t *testing.T) {
	err := NewVotingClosedError()
	if !IsVotingClosedError(err) {
		t.Fatalf("expected voting-closed error to match its sentinel")
	}
	if err.Message() != "Voting is currently closed" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", StatusCode(err))
	}

	wrapped := fmt.Errorf("cast vote: %w", NewAlreadyVotedError(errors.New("UNIQUE constraint failed: votes.user_email")))
	if !IsAlreadyVotedError(wrapped) || StatusCode(wrapped) != http.StatusBadRequest {
		t.Fatalf("expected wrapped already-voted error with 400, got %v", wrapped)
	}
}

func TestInsufficientRoleIsForbidden(t *testing.T) {
	err := NewInsufficientRoleError("ADMIN")
	if !IsForbidden(err) || !IsInsufficientRoleError(err) {
		t.Fatalf("expected insufficient role to match forbidden")
	}
}

func TestStatusCode_DefaultsTo500(t *testing.T) {
	if got := StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{gorm.ErrDuplicatedKey, true},
		{fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "idx_votes_user_email"`), true},
		{errors.New("Error 1062: Duplicate entry 'a@example.com' for key 'user_email'"), true},
		{errors.New("UNIQUE constraint failed: users.email"), true},
		{errors.New("FOREIGN KEY constraint failed"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestNewDatabaseError(t *testing.T) {
	if got := NewDatabaseError("find", "project", gorm.ErrRecordNotFound); got.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing record, got %d", got.StatusCode)
	}
	if got := NewDatabaseError("create", "user", gorm.ErrDuplicatedKey); got.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", got.StatusCode)
	}
	if got := NewDatabaseError("create", "vote", gorm.ErrForeignKeyViolated); got.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign key violation, got %d", got.StatusCode)
	}

	original := NewNotFoundError("User not found")
	if got := NewDatabaseError("find", "user", original); got != original {
		t.Fatalf("expected an ApiErr cause to pass through unchanged")
	}

	if got := NewDatabaseError("list", "votes", errors.New("syntax error")); got.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown failure, got %d", got.StatusCode)
	}
}

func TestGetFullError(t *testing.T) {
	err := NewTransactionFailedError("link github account", NewDatabaseError("create", "membership", errors.New("disk full")))
	want := "transaction failed: Transaction failed during link github account -> database query failed: Failed to create membership -> disk full"
	if got := err.GetFullError(); got != want {
		t.Fatalf("unexpected chain\n got: %s\nwant: %s", got, want)
	}
}

func TestHasStorageCause(t *testing.T) {
	cases := []struct {
		name string
		err  *ApiErr
		want bool
	}{
		{"duplicate vote", NewAlreadyVotedError(gorm.ErrDuplicatedKey), true},
		{"nested database error", NewTransactionFailedError("create project", NewDatabaseError("create", "project", errors.New("FOREIGN KEY constraint failed"))), true},
		{"json decode", NewInvalidJSONError(errors.New("unexpected EOF")), false},
		{"no cause", NewVotingClosedError(), false},
	}
	for _, tc := range cases {
		if got := tc.err.HasStorageCause(); got != tc.want {
			t.Fatalf("%s: HasStorageCause = %v, want %v", tc.name, got, tc.want)
		}
	}
}
