package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projects      *services.ProjectService
	maxImageBytes int64
}

func newProjectHandler(projects *services.ProjectService, maxImageBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()
	return projectHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projects:      projects,
		maxImageBytes: maxImageBytes,
	}
}

type teamMemberRequest struct {
	GithubUsername string             `json:"githubUsername"`
	Role           models.ProjectRole `json:"role"`
}

type resourceRequest struct {
	URL         string              `json:"url"`
	Title       string              `json:"title"`
	Type        models.ResourceType `json:"type"`
	Description string              `json:"description"`
}

// createProjectRequest represents the request body for submitting a project
type createProjectRequest struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	GithubURL        string              `json:"githubUrl"`
	DemoURL          string              `json:"demoUrl"`
	ImageURL         string              `json:"imageUrl"`
	TechStack        []string            `json:"techStack"`
	ProblemStatement string              `json:"problemStatement"`
	Status           string              `json:"status"`
	ProjectType      string              `json:"projectType"`
	KeyFeatures      []string            `json:"keyFeatures"`
	Team             []teamMemberRequest `json:"team"`
	Resources        []resourceRequest   `json:"resources"`
}

func (req createProjectRequest) toNewProject() services.NewProject {
	in := services.NewProject{
		Name:             req.Name,
		Description:      req.Description,
		GithubURL:        req.GithubURL,
		DemoURL:          req.DemoURL,
		ImageURL:         req.ImageURL,
		TechStack:        req.TechStack,
		ProblemStatement: req.ProblemStatement,
		Status:           req.Status,
		ProjectType:      req.ProjectType,
		KeyFeatures:      req.KeyFeatures,
	}
	for _, m := range req.Team {
		in.Team = append(in.Team, services.TeamMember{GithubUsername: m.GithubUsername, Role: m.Role})
	}
	for _, res := range req.Resources {
		in.Resources = append(in.Resources, services.NewResource{
			URL:         res.URL,
			Title:       res.Title,
			Type:        res.Type,
			Description: res.Description,
		})
	}
	return in
}

// @Summary Get all projects
// @Description Retrieve every project with its members and live vote count
// @Tags projects
// @Produce json
// @Success 200 {array} services.ProjectSummary
// @Failure 500 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// @Summary Get a project by ID
// @Description Retrieve a project with members, pending members, resources, images and tags
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} services.ProjectDetail
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.Get(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) options() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// @Summary Submit a project
// @Description Creates the project with its team and resources. Team members without an account are kept as pending until they link GitHub.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project to create"
// @Success 201 {object} services.ProjectDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/projects/post-project [post]
func (h projectHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), ctxGetEmail(r.Context()), req.toNewProject())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// @Summary Upload a project image
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param projectID path string true "Project ID"
// @Param image formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} models.ProjectImage
// @Failure 403 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/projects/{projectID}/images [post]
func (h projectHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Leave room for the multipart envelope; the service enforces the exact image limit.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+(1<<20))
		if err := r.ParseMultipartForm(h.maxImageBytes + (1 << 20)); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxImageBytes))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("image", err))
			return
		}

		image, err := h.projects.AddImage(r.Context(), ctxGetEmail(r.Context()), chi.URLParam(r, "projectID"), services.ImageUpload{
			Filename: header.Filename,
			Caption:  r.FormValue("caption"),
			Data:     data,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, image)
	}
}
