package services

import (
	"context"
	"errors"
	"strings"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserProfile is the acting user's own view of their account.
type UserProfile struct {
	*models.User
	HasVoted     bool  `json:"hasVoted"`
	PendingCount int64 `json:"pendingProjects"`
}

type UserService struct {
	logger     zerolog.Logger
	db         database.Database
	authorizer *Authorizer
}

func NewUserService(db database.Database, authorizer *Authorizer) *UserService {
	return &UserService{
		logger:     log.With().Str("service", "users").Logger(),
		db:         db,
		authorizer: authorizer,
	}
}

// Profile loads the user with their projects, whether they have voted and how
// many pending memberships wait on their GitHub username. The lookups run concurrently.
func (s *UserService) Profile(ctx context.Context, email string) (*UserProfile, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewMissingTokenError()
	}

	var (
		user    *models.User
		votes   int64
		profile UserProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.db.UserRepo().FindByEmailWithProjects(gctx, email)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = s.db.VoteRepo().CountByEmail(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, errs.NewDatabaseError("find", "user", err)
	}

	profile.User = user
	profile.HasVoted = votes > 0
	if user.HasLinkedGithub() {
		pending, err := s.db.MembershipRepo().CountPending(ctx, user.GithubUsername)
		if err != nil {
			return nil, errs.NewDatabaseError("count", "pending memberships", err)
		}
		profile.PendingCount = pending
	}
	return &profile, nil
}

// UpdateProfile changes the acting user's own name and bio.
func (s *UserService) UpdateProfile(ctx context.Context, email, name, bio string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewMissingTokenError()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}

	if err := s.db.UserRepo().UpdateProfile(ctx, email, name, strings.TrimSpace(bio)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, errs.NewDatabaseError("update", "user", err)
	}
	return s.authorizer.Actor(ctx, email)
}

// UpdateRole sets another user's role. Admin only.
func (s *UserService) UpdateRole(ctx context.Context, actorEmail, targetEmail string, role models.UserRole) (*models.User, error) {
	actor, err := s.authorizer.Require(ctx, actorEmail, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	targetEmail = NormalizeEmail(targetEmail)
	if targetEmail == "" {
		return nil, errs.NewMissingRequiredFieldError("email")
	}
	if role == "" {
		return nil, errs.NewMissingRequiredFieldError("role")
	}
	if !role.Valid() {
		return nil, errs.NewInvalidFieldError("role", "must be one of INDIVIDUAL, CURATOR, ADMIN")
	}

	if err := s.db.UserRepo().UpdateRole(ctx, targetEmail, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, errs.NewDatabaseError("update", "user", err)
	}

	s.logger.Info().Str("actor", actor.ID).Str("target", targetEmail).Str("role", string(role)).Msg("user role updated")
	return s.authorizer.Actor(ctx, targetEmail)
}
