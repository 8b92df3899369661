package services

import (
	"context"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StatusUpdate is an admin change to the voting window. Nil times are filled in
// from the clock: opening starts now, closing ends now.
type StatusUpdate struct {
	IsOpen    bool
	StartTime *time.Time
	EndTime   *time.Time
}

type VotingService struct {
	logger     zerolog.Logger
	db         database.Database
	authorizer *Authorizer
	limiter    *RateLimiter
	now        func() time.Time
}

// NewVotingService builds the service. limiter may be nil to disable per-email rate limiting.
func NewVotingService(db database.Database, authorizer *Authorizer, limiter *RateLimiter) *VotingService {
	return &VotingService{
		logger:     log.With().Str("service", "voting").Logger(),
		db:         db,
		authorizer: authorizer,
		limiter:    limiter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Status returns the voting window. No row means closed.
func (s *VotingService) Status(ctx context.Context) (models.VotingStatus, error) {
	status, err := s.db.VotingStatusRepo().Get(ctx)
	if err != nil {
		return models.VotingStatus{}, errs.NewDatabaseError("find", "voting status", err)
	}
	return status, nil
}

// isOpen reads the window from the primary so a just-closed window is never
// seen open on a lagging replica.
func (s *VotingService) isOpen(ctx context.Context) (bool, error) {
	status, err := s.db.Primary().VotingStatusRepo().Get(ctx)
	if err != nil {
		return false, errs.NewDatabaseError("find", "voting status", err)
	}
	return status.IsOpen && !status.Expired(s.now()), nil
}

// Cast records email's single vote for projectID. The unique index on the
// voter's email rejects any second vote, for any project.
func (s *VotingService) Cast(ctx context.Context, email, projectID string) (*models.Vote, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewMissingTokenError()
	}

	open, err := s.isOpen(ctx)
	if err != nil {
		VotesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if !open {
		VotesTotal.WithLabelValues("closed").Inc()
		return nil, errs.NewVotingClosedError()
	}

	allowed, wait, err := s.limiter.Allow(ctx, "vote:"+email)
	if err != nil {
		// redis outage must not block voting
		s.logger.Warn().Err(err).Msg("vote rate limiter unavailable")
	} else if !allowed {
		VotesTotal.WithLabelValues("rate_limited").Inc()
		return nil, errs.NewRateLimitError("votes", wait)
	}

	exists, err := s.db.Primary().ProjectRepo().Exists(ctx, projectID)
	if err != nil {
		VotesTotal.WithLabelValues("error").Inc()
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if !exists {
		VotesTotal.WithLabelValues("missing_project").Inc()
		return nil, errs.NewNotFoundError("Project not found")
	}

	vote := &models.Vote{ProjectID: projectID, UserEmail: email}
	if err := s.db.VoteRepo().Add(ctx, vote); err != nil {
		if errs.IsUniqueViolation(err) {
			VotesTotal.WithLabelValues("duplicate").Inc()
			return nil, errs.NewAlreadyVotedError(err)
		}
		if errs.IsForeignKeyViolation(err) {
			VotesTotal.WithLabelValues("missing_project").Inc()
			return nil, errs.NewNotFoundError("Project not found")
		}
		VotesTotal.WithLabelValues("error").Inc()
		return nil, errs.NewDatabaseError("create", "vote", err)
	}

	VotesTotal.WithLabelValues("accepted").Inc()
	s.logger.Info().Str("projectId", projectID).Str("email", email).Msg("vote recorded")
	return vote, nil
}

// SetStatus opens or closes the voting window. Only admins may change it.
func (s *VotingService) SetStatus(ctx context.Context, actorEmail string, update StatusUpdate) (models.VotingStatus, error) {
	actor, err := s.authorizer.Require(ctx, actorEmail, models.RoleAdmin)
	if err != nil {
		return models.VotingStatus{}, err
	}

	current, err := s.db.Primary().VotingStatusRepo().Get(ctx)
	if err != nil {
		return models.VotingStatus{}, errs.NewDatabaseError("find", "voting status", err)
	}

	now := s.now()
	next := current
	next.IsOpen = update.IsOpen
	if update.IsOpen {
		start := now
		if update.StartTime != nil {
			start = update.StartTime.UTC()
		}
		next.StartTime = &start
		next.EndTime = nil
		if update.EndTime != nil {
			end := update.EndTime.UTC()
			if !end.After(start) {
				return models.VotingStatus{}, errs.NewInvalidFieldError("endTime", "must be after startTime")
			}
			next.EndTime = &end
		}
	} else {
		next.EndTime = &now
	}

	if err := s.db.VotingStatusRepo().Save(ctx, &next); err != nil {
		return models.VotingStatus{}, errs.NewDatabaseError("update", "voting status", err)
	}

	s.logger.Info().Str("actor", actor.ID).Bool("isOpen", next.IsOpen).Msg("voting status changed")
	return next, nil
}

// Tally lists every project with its votes, most voted first. Admin only.
func (s *VotingService) Tally(ctx context.Context, actorEmail string) ([]database.ProjectTally, error) {
	if _, err := s.authorizer.Require(ctx, actorEmail, models.RoleAdmin); err != nil {
		return nil, err
	}
	tally, err := s.db.VoteRepo().Tally(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "votes", err)
	}
	return tally, nil
}

// CloseExpired closes an open window whose end time has passed.
func (s *VotingService) CloseExpired(ctx context.Context, now time.Time) (bool, error) {
	closed, err := s.db.VotingStatusRepo().CloseIfExpired(ctx, now.UTC())
	if err != nil {
		return false, errs.NewDatabaseError("update", "voting status", err)
	}
	if closed {
		VotingWindowsClosedTotal.Inc()
		s.logger.Info().Time("at", now).Msg("voting window expired and was closed")
	}
	return closed, nil
}
