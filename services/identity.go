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
	"gorm.io/gorm"
)

// Identity is what the external auth provider vouches for.
type Identity struct {
	Email    string
	Name     string
	GoogleID string
}

// IdentityService maps authenticated identities to durable users.
type IdentityService struct {
	logger    zerolog.Logger
	users     *database.UserRepo
	allowList AllowList
}

func NewIdentityService(db database.Database, allowList AllowList) *IdentityService {
	return &IdentityService{
		logger:    log.With().Str("service", "identity").Logger(),
		users:     db.UserRepo(),
		allowList: allowList,
	}
}

// CheckAccess reports whether email may use the primary flow. It never touches the database.
func (s *IdentityService) CheckAccess(email string) error {
	if NormalizeEmail(email) == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if !s.allowList.Allows(email) {
		return errs.NewAccessDeniedError()
	}
	return nil
}

// ResolveAllowed is Resolve behind the allow-list.
func (s *IdentityService) ResolveAllowed(ctx context.Context, id Identity) (*models.User, bool, error) {
	if err := s.CheckAccess(id.Email); err != nil {
		s.logger.Warn().Str("email", NormalizeEmail(id.Email)).Msg("identity rejected by allow-list")
		return nil, false, err
	}
	return s.Resolve(ctx, id)
}

// Resolve returns the user for id.Email, creating one with a placeholder GitHub
// username when absent. created is false when the user already existed.
func (s *IdentityService) Resolve(ctx context.Context, id Identity) (*models.User, bool, error) {
	email := NormalizeEmail(id.Email)
	if email == "" {
		return nil, false, errs.NewMissingRequiredFieldError("email")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errs.NewDatabaseError("find", "user", err)
	}

	user := &models.User{
		Email:          email,
		Name:           strings.TrimSpace(id.Name),
		Role:           models.RoleIndividual,
		GithubUsername: models.PlaceholderUsername(id.GoogleID),
	}
	if id.GoogleID != "" {
		googleID := id.GoogleID
		user.GoogleID = &googleID
	}

	if err := s.users.Add(ctx, user); err != nil {
		if errs.IsUniqueViolation(err) {
			// lost a race with a concurrent sign-in for the same email
			if existing, findErr := s.users.FindByEmail(ctx, email); findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, errs.NewDatabaseError("create", "user", err)
	}

	s.logger.Info().Str("userId", user.ID).Str("email", email).Msg("user created")
	return user, true, nil
}
