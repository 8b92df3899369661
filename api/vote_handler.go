package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type voteHandler struct {
	responder Responder
	logger    zerolog.Logger
	voting    *services.VotingService
}

func newVoteHandler(voting *services.VotingService) voteHandler {
	logger := log.With().Str("handlerName", "voteHandler").Logger()
	return voteHandler{
		responder: NewResponder(logger),
		logger:    logger,
		voting:    voting,
	}
}

type castVoteResponse struct {
	Message string       `json:"message"`
	Vote    *models.Vote `json:"vote"`
}

type votingStatusRequest struct {
	IsOpen    bool       `json:"isOpen"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// @Summary Vote for a project
// @Description Each email gets exactly one vote, and only while voting is open
// @Tags votes
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} castVoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/projects/{projectID}/vote [post]
func (h voteHandler) vote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vote, err := h.voting.Cast(r.Context(), ctxGetEmail(r.Context()), chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, castVoteResponse{Message: "Vote recorded successfully", Vote: vote})
	}
}

// @Summary Vote tally
// @Tags admin
// @Produce json
// @Success 200 {array} database.ProjectTally
// @Failure 403 {object} ErrorResponse
// @Router /api/projects/admin/votes [get]
func (h voteHandler) tally() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tally, err := h.voting.Tally(r.Context(), ctxGetEmail(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tally)
	}
}

// @Summary Get the voting window
// @Tags votes
// @Produce json
// @Success 200 {object} models.VotingStatus
// @Router /api/voting-status [get]
func (h voteHandler) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.voting.Status(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, status)
	}
}

// @Summary Open or close voting
// @Tags admin
// @Accept json
// @Produce json
// @Param status body votingStatusRequest true "New window"
// @Success 200 {object} models.VotingStatus
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/voting-status [post]
func (h voteHandler) setStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req votingStatusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status, err := h.voting.SetStatus(r.Context(), ctxGetEmail(r.Context()), services.StatusUpdate{
			IsOpen:    req.IsOpen,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, status)
	}
}
