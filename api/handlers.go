package api

import (
	"time"

	"github.com/psharishgithub/open-space-platform-pro/config"
	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/services"
)

// Services bundles the domain services the HTTP layer dispatches to.
type Services struct {
	Database   database.Database
	Authorizer *services.Authorizer
	Identity   *services.IdentityService
	Links      *services.LinkService
	Projects   *services.ProjectService
	Voting     *services.VotingService
	Tags       *services.TagService
	Users      *services.UserService
}

// NewServices wires every service over db. store and limiter may be nil.
func NewServices(db database.Database, s config.Settings, github services.GithubClient, store services.ObjectStore, limiter *services.RateLimiter) Services {
	authorizer := services.NewAuthorizer(db)
	return Services{
		Database:   db,
		Authorizer: authorizer,
		Identity:   services.NewIdentityService(db, services.NewAllowList(s.AllowedEmails)),
		Links:      services.NewLinkService(db, github, s.SessionSecret),
		Projects:   services.NewProjectService(db, authorizer, store, s.MaxImageBytes),
		Voting:     services.NewVotingService(db, authorizer, limiter),
		Tags:       services.NewTagService(db, authorizer),
		Users:      services.NewUserService(db, authorizer),
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc Services, s config.Settings, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(svc.Database, startupTime),
		userHandler:    newUserHandler(svc.Users, svc.Authorizer),
		accessHandler:  newAccessHandler(svc.Identity),
		githubHandler:  newGithubHandler(svc.Links, s.BaseURL),
		projectHandler: newProjectHandler(svc.Projects, s.MaxImageBytes),
		voteHandler:    newVoteHandler(svc.Voting),
		tagHandler:     newTagHandler(svc.Tags),
	}
}
