package services

import (
	"context"
	"strings"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewTag is a curator's recognition entry for a project.
type NewTag struct {
	ProjectID   string
	Name        string
	Title       string
	Status      models.TagStatus
	Conference  string
	Date        string
	Competition string
}

type TagService struct {
	logger     zerolog.Logger
	db         database.Database
	authorizer *Authorizer
}

func NewTagService(db database.Database, authorizer *Authorizer) *TagService {
	return &TagService{
		logger:     log.With().Str("service", "tags").Logger(),
		db:         db,
		authorizer: authorizer,
	}
}

func parseTagDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errs.NewInvalidFieldError("date", "expected RFC3339 or YYYY-MM-DD")
}

// Create adds a tag authored by the acting curator. Callers without the curator
// role are reported as unauthorized.
func (s *TagService) Create(ctx context.Context, actorEmail string, in NewTag) (*models.ProjectTag, error) {
	curator, err := s.authorizer.Require(ctx, actorEmail, models.RoleCurator)
	if errs.IsForbidden(err) {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.ProjectID) == "" {
		return nil, errs.NewMissingRequiredFieldError("projectId")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	if !in.Status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "must be one of PUBLISHED, IN_REVIEW, DRAFT, COMPLETED, ONGOING")
	}
	date, err := parseTagDate(in.Date)
	if err != nil {
		return nil, err
	}

	exists, err := s.db.ProjectRepo().Exists(ctx, in.ProjectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("Project not found")
	}

	tag := &models.ProjectTag{
		Name:        strings.TrimSpace(in.Name),
		Title:       optional(in.Title),
		Status:      in.Status,
		Conference:  optional(in.Conference),
		Date:        date,
		Competition: optional(in.Competition),
		ProjectID:   in.ProjectID,
		CuratorID:   curator.ID,
	}
	if err := s.db.ProjectTagRepo().Add(ctx, tag); err != nil {
		return nil, errs.NewDatabaseError("create", "project tag", err)
	}
	tag.Curator = curator

	s.logger.Info().Str("projectId", in.ProjectID).Str("curator", curator.ID).Str("status", string(in.Status)).Msg("project tag created")
	return tag, nil
}
