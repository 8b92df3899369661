package services

import (
	"context"
	"testing"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/database/dbtest"
)

func TestNewScheduler_RejectsBadSchedule(t *testing.T) {
	db := dbtest.Open(t)
	if _, err := NewScheduler(NewVotingService(db, NewAuthorizer(db), nil), "every minute"); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestScheduler_SweepClosesExpiredWindow(t *testing.T) {
	db := dbtest.Open(t)
	ended := time.Now().UTC().Add(-time.Second)
	openVoting(t, db, &ended)
	voting := NewVotingService(db, NewAuthorizer(db), nil)

	s, err := NewScheduler(voting, "@every 1h")
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	s.SweepVotingWindow()

	status, err := voting.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsOpen {
		t.Fatalf("expected sweep to close the window")
	}
}
