package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const oauthStateTTL = 10 * time.Minute

// LinkResult is the outcome of linking a GitHub account.
type LinkResult struct {
	User           *models.User
	ConvertedCount int
}

// LinkService attaches a GitHub identity to a user and converts the pending
// memberships waiting on that username.
type LinkService struct {
	logger zerolog.Logger
	db     database.Database
	github GithubClient
	secret []byte
}

func NewLinkService(db database.Database, github GithubClient, stateSecret string) *LinkService {
	return &LinkService{
		logger: log.With().Str("service", "link").Logger(),
		db:     db,
		github: github,
		secret: []byte(stateSecret),
	}
}

type stateClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthorizeURL returns the GitHub authorize URL with a state bound to email.
func (s *LinkService) AuthorizeURL(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", errs.NewMissingTokenError()
	}

	now := time.Now()
	claims := stateClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(oauthStateTTL)),
		},
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to sign oauth state", err)
	}
	return s.github.AuthCodeURL(state), nil
}

func (s *LinkService) verifyState(state, email string) error {
	if state == "" {
		return errs.NewMissingRequiredFieldError("state")
	}

	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return errs.NewInvalidFieldError("state", "invalid or expired oauth state")
	}
	if claims.Email != NormalizeEmail(email) {
		return errs.NewInvalidFieldError("state", "oauth state does not match the session")
	}
	return nil
}

// CompleteLink finishes the OAuth round trip and links the resulting identity.
func (s *LinkService) CompleteLink(ctx context.Context, email, code, state string) (*LinkResult, error) {
	if NormalizeEmail(email) == "" {
		return nil, errs.NewMissingTokenError()
	}
	if strings.TrimSpace(code) == "" {
		return nil, errs.NewMissingRequiredFieldError("code")
	}
	if err := s.verifyState(state, email); err != nil {
		return nil, err
	}

	accessToken, err := s.github.Exchange(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("github code exchange failed")
		return nil, err
	}

	identity, err := s.github.FetchUser(ctx, accessToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("github user lookup failed")
		return nil, err
	}
	identity.AccessToken = accessToken

	return s.Link(ctx, email, identity)
}

// Link stores identity on the user and converts every pending membership for
// identity.Username in one transaction. Nothing is committed on failure.
func (s *LinkService) Link(ctx context.Context, email string, identity models.GithubIdentity) (*LinkResult, error) {
	email = NormalizeEmail(email)
	if identity.Username == "" {
		return nil, errs.NewMissingRequiredFieldError("githubUsername")
	}

	var result LinkResult
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.UserRepo().LinkGithub(ctx, email, identity); err != nil {
			return err
		}

		user, err := tx.UserRepo().FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		pending, err := tx.MembershipRepo().PendingByUsername(ctx, identity.Username)
		if err != nil {
			return err
		}
		for _, p := range pending {
			if err := tx.MembershipRepo().Resolve(ctx, p, user.ID); err != nil {
				return err
			}
		}

		result = LinkResult{User: user, ConvertedCount: len(pending)}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Str("githubUsername", identity.Username).Msg("failed to link github account")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, errs.NewTransactionFailedError("link github account", err)
	}

	GithubLinksTotal.Inc()
	PendingConversionsTotal.Add(float64(result.ConvertedCount))
	s.logger.Info().
		Str("userId", result.User.ID).
		Str("githubUsername", identity.Username).
		Int("converted", result.ConvertedCount).
		Msg("github account linked")
	return &result, nil
}
