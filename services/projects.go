package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamMember struct {
	GithubUsername string
	Role           models.ProjectRole
}

type NewResource struct {
	URL         string
	Title       string
	Type        models.ResourceType
	Description string
}

// NewProject is a project submission.
type NewProject struct {
	Name             string
	Description      string
	GithubURL        string
	DemoURL          string
	ImageURL         string
	TechStack        []string
	ProblemStatement string
	Status           string
	ProjectType      string
	KeyFeatures      []string
	Team             []TeamMember
	Resources        []NewResource
}

// MemberView is a team member as shown on project cards.
type MemberView struct {
	UserID          string             `json:"userId"`
	Role            models.ProjectRole `json:"role"`
	Name            string             `json:"name"`
	GithubUsername  string             `json:"githubUsername"`
	GithubAvatarURL *string            `json:"githubAvatarUrl,omitempty"`
}

// ProjectSummary is a row of the public project listing.
type ProjectSummary struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	GithubURL   *string                     `json:"githubUrl"`
	DemoURL     *string                     `json:"demoUrl,omitempty"`
	ImageURL    *string                     `json:"imageUrl,omitempty"`
	TechStack   datatypes.JSONSlice[string] `json:"techStack"`
	Language    string                      `json:"language"`
	Votes       int64                       `json:"votes"`
	Members     []MemberView                `json:"members"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// ProjectDetail is a project with every owned association and its live vote count.
type ProjectDetail struct {
	*models.Project
	Language string `json:"language"`
	Votes    int64  `json:"votes"`
}

// ImageUpload is a file received for a project.
type ImageUpload struct {
	Filename string
	Caption  string
	Data     []byte
}

type ProjectService struct {
	logger        zerolog.Logger
	db            database.Database
	authorizer    *Authorizer
	store         ObjectStore
	maxImageBytes int64
}

// NewProjectService builds the service. store may be nil, in which case image uploads are unavailable.
func NewProjectService(db database.Database, authorizer *Authorizer, store ObjectStore, maxImageBytes int64) *ProjectService {
	return &ProjectService{
		logger:        log.With().Str("service", "projects").Logger(),
		db:            db,
		authorizer:    authorizer,
		store:         store,
		maxImageBytes: maxImageBytes,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func cleanList(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validateTeam(team []TeamMember) ([]TeamMember, error) {
	seen := make(map[string]bool, len(team))
	out := make([]TeamMember, 0, len(team))
	for _, m := range team {
		m.GithubUsername = strings.TrimSpace(m.GithubUsername)
		if m.GithubUsername == "" {
			return nil, errs.NewInvalidFieldError("team", "githubUsername is required for every member")
		}
		if m.Role == "" {
			m.Role = models.ProjectRoleContributor
		}
		if !m.Role.Valid() {
			return nil, errs.NewInvalidFieldError("team", "role must be OWNER or CONTRIBUTOR")
		}
		if seen[m.GithubUsername] {
			return nil, errs.NewInvalidFieldError("team", "duplicate githubUsername "+m.GithubUsername)
		}
		seen[m.GithubUsername] = true
		out = append(out, m)
	}
	return out, nil
}

func validateResources(resources []NewResource) ([]models.Resource, error) {
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Title) == "" {
			return nil, errs.NewInvalidFieldError("resources", "url and title are required")
		}
		if r.Type == "" {
			r.Type = models.ResourceOther
		}
		if !r.Type.Valid() {
			return nil, errs.NewInvalidFieldError("resources", "type must be one of image, document, presentation, paper, other")
		}
		out = append(out, models.Resource{
			URL:         strings.TrimSpace(r.URL),
			Title:       strings.TrimSpace(r.Title),
			Type:        r.Type,
			Description: r.Description,
		})
	}
	return out, nil
}

// Create writes the project, its memberships (resolved or pending) and its
// resources in one transaction. The acting user joins as OWNER unless listed.
func (s *ProjectService) Create(ctx context.Context, actorEmail string, in NewProject) (*ProjectDetail, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	team, err := validateTeam(in.Team)
	if err != nil {
		return nil, err
	}
	resources, err := validateResources(in.Resources)
	if err != nil {
		return nil, err
	}

	actor, err := s.authorizer.Actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		GithubURL:        optional(in.GithubURL),
		DemoURL:          optional(in.DemoURL),
		ImageURL:         optional(in.ImageURL),
		TechStack:        cleanList(in.TechStack),
		ProblemStatement: in.ProblemStatement,
		Status:           in.Status,
		ProjectType:      in.ProjectType,
		KeyFeatures:      cleanList(in.KeyFeatures),
	}

	err = s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectRepo().Add(ctx, project); err != nil {
			return err
		}

		names := make([]string, 0, len(team))
		for _, m := range team {
			names = append(names, m.GithubUsername)
		}
		users, err := tx.UserRepo().FindByGithubUsernames(ctx, names)
		if err != nil {
			return err
		}
		ids := make(map[string]string, len(users))
		for _, u := range users {
			ids[u.GithubUsername] = u.ID
		}

		refs := make([]models.MemberRef, 0, len(team)+1)
		actorListed := false
		for _, m := range team {
			if id, ok := ids[m.GithubUsername]; ok {
				actorListed = actorListed || id == actor.ID
				refs = append(refs, models.ResolvedMember(id, m.Role))
				continue
			}
			refs = append(refs, models.PendingMember(m.GithubUsername, m.Role))
		}
		if !actorListed {
			refs = append(refs, models.ResolvedMember(actor.ID, models.ProjectRoleOwner))
		}

		if err := tx.MembershipRepo().AddRefs(ctx, project.ID, refs); err != nil {
			return err
		}
		return tx.ProjectRepo().AddResources(ctx, project.ID, resources)
	})
	if err != nil {
		if project.GithubURL != nil && errs.IsUniqueViolation(err) {
			s.logger.Warn().Str("githubUrl", *project.GithubURL).Msg("project with github url already exists")
			return nil, errs.NewProjectExistsError(err)
		}
		s.logger.Error().Err(err).Str("name", project.Name).Msg("failed to create project")
		return nil, errs.NewTransactionFailedError("create project", err)
	}

	s.logger.Info().Str("projectId", project.ID).Str("actor", actor.ID).Msg("project created")
	return s.load(ctx, s.db.Primary(), project.ID)
}

// List returns every project with its members and live vote count.
func (s *ProjectService) List(ctx context.Context) ([]ProjectSummary, error) {
	projects, err := s.db.ProjectRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	counts, err := s.db.VoteRepo().CountByProject(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("count", "votes", err)
	}

	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		members := make([]MemberView, 0, len(p.Users))
		for _, m := range p.Users {
			view := MemberView{UserID: m.UserID, Role: m.Role}
			if m.User != nil {
				view.Name = m.User.Name
				view.GithubUsername = m.User.GithubUsername
				view.GithubAvatarURL = m.User.GithubAvatarURL
			}
			members = append(members, view)
		}
		out = append(out, ProjectSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			GithubURL:   p.GithubURL,
			DemoURL:     p.DemoURL,
			ImageURL:    p.ImageURL,
			TechStack:   p.TechStack,
			Language:    p.Language(),
			Votes:       counts[p.ID],
			Members:     members,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out, nil
}

// Get returns the project detail or a 404.
func (s *ProjectService) Get(ctx context.Context, id string) (*ProjectDetail, error) {
	return s.load(ctx, s.db, id)
}

func (s *ProjectService) load(ctx context.Context, db database.Database, id string) (*ProjectDetail, error) {
	project, err := db.ProjectRepo().FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("Project not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}

	votes, err := db.VoteRepo().CountForProject(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("count", "votes", err)
	}
	return &ProjectDetail{Project: project, Language: project.Language(), Votes: votes}, nil
}

// AddImage stores an uploaded image for a project. Only team members and admins may upload.
func (s *ProjectService) AddImage(ctx context.Context, actorEmail, projectID string, upload ImageUpload) (*models.ProjectImage, error) {
	if s.store == nil {
		return nil, errs.NewServiceUnavailableError("object storage", nil)
	}

	actor, err := s.authorizer.Actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	exists, err := s.db.ProjectRepo().Exists(ctx, projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("Project not found")
	}

	if actor.Role != models.RoleAdmin {
		member, err := s.db.MembershipRepo().IsMember(ctx, projectID, actor.ID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "membership", err)
		}
		if !member {
			return nil, errs.NewForbiddenError("Only project members can upload images")
		}
	}

	if len(upload.Data) == 0 {
		return nil, errs.NewMissingRequiredFieldError("image")
	}
	if s.maxImageBytes > 0 && int64(len(upload.Data)) > s.maxImageBytes {
		return nil, errs.NewMaxBodySizeExceededError(s.maxImageBytes)
	}
	contentType := http.DetectContentType(upload.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errs.NewUnsupportedMediaTypeError(contentType, []string{"image/*"})
	}

	key := "projects/" + projectID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))
	url, err := s.store.Put(ctx, key, upload.Data, contentType)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to upload project image")
		return nil, errs.NewServiceUnavailableError("object storage", err)
	}

	image := &models.ProjectImage{
		ProjectID: projectID,
		URL:       url,
		ObjectKey: key,
		Caption:   strings.TrimSpace(upload.Caption),
	}
	if err := s.db.ProjectRepo().AddImage(ctx, image); err != nil {
		return nil, errs.NewDatabaseError("create", "project image", err)
	}
	return image, nil
}
