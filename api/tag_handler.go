package api

import (
	"net/http"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tags      *services.TagService
}

func newTagHandler(tags *services.TagService) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()
	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tags:      tags,
	}
}

type createTagRequest struct {
	ProjectID   string           `json:"projectId"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Status      models.TagStatus `json:"status"`
	Conference  string           `json:"conference"`
	Date        string           `json:"date"`
	Competition string           `json:"competition"`
}

// @Summary Tag a project
// @Description Curators record conference and competition recognition for a project
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body createTagRequest true "Tag to create"
// @Success 201 {object} models.ProjectTag
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tags [post]
func (h tagHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTagRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tags.Create(r.Context(), ctxGetEmail(r.Context()), services.NewTag{
			ProjectID:   req.ProjectID,
			Name:        req.Name,
			Title:       req.Title,
			Status:      req.Status,
			Conference:  req.Conference,
			Date:        req.Date,
			Competition: req.Competition,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}
