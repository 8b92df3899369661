package services

import (
	"context"
	"errors"
	"strings"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/gorm"
)

// NormalizeEmail is the canonical form used for allow-list checks, lookups and votes.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AllowList is the set of emails permitted through the primary sign-in flow.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = NormalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return AllowList{emails: set}
}

// Allows reports whether email is on the list. An empty list allows nobody.
func (a AllowList) Allows(email string) bool {
	_, ok := a.emails[NormalizeEmail(email)]
	return ok
}

// Authorizer resolves the acting user and checks their role before any mutation.
type Authorizer struct {
	users *database.UserRepo
}

func NewAuthorizer(db database.Database) *Authorizer {
	return &Authorizer{users: db.UserRepo()}
}

// Actor returns the user behind a session email.
func (a *Authorizer) Actor(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewMissingTokenError()
	}

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return user, nil
}

// Require returns the acting user when their role satisfies one of roles.
func (a *Authorizer) Require(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error) {
	user, err := a.Actor(ctx, email)
	if errs.IsNotFound(err) {
		return nil, errs.NewInsufficientRoleError(roleList(roles))
	}
	if err != nil {
		return nil, err
	}
	if !user.Role.Satisfies(roles...) {
		return nil, errs.NewInsufficientRoleError(roleList(roles))
	}
	return user, nil
}

func roleList(roles []models.UserRole) string {
	names := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		names = append(names, string(r))
	}
	if len(names) == 0 {
		names = append(names, string(models.RoleAdmin))
	}
	return strings.Join(names, " or ")
}
