package api

import (
	"net/http"

	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type accessHandler struct {
	responder Responder
	logger    zerolog.Logger
	identity  *services.IdentityService
}

func newAccessHandler(identity *services.IdentityService) accessHandler {
	logger := log.With().Str("handlerName", "accessHandler").Logger()
	return accessHandler{
		responder: NewResponder(logger),
		logger:    logger,
		identity:  identity,
	}
}

type checkAccessRequest struct {
	Email string `json:"email"`
}

// createUserRequest may fill in profile fields the session token lacks. The email
// always comes from the session.
type createUserRequest struct {
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
}

type createUserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (h accessHandler) writeAccess(w http.ResponseWriter, email string) {
	if err := h.identity.CheckAccess(email); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSON(w, map[string]string{"message": "Access granted"})
}

// @Summary Check the session email against the allow-list
// @Tags access
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Router /api/check-access [get]
func (h accessHandler) checkSessionAccess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.writeAccess(w, ctxGetEmail(r.Context()))
	}
}

// @Summary Check an email against the allow-list
// @Tags access
// @Accept json
// @Param request body checkAccessRequest true "Email to check"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/check-access [post]
func (h accessHandler) checkAccess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkAccessRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writeAccess(w, req.Email)
	}
}

func (h accessHandler) sessionIdentity(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	session, _ := ctxGetSession(r.Context())
	id := session.Identity()

	if r.ContentLength != 0 {
		var req createUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return id, false
		}
		if id.Name == "" {
			id.Name = req.Name
		}
		if id.GoogleID == "" {
			id.GoogleID = req.GoogleID
		}
	}
	return id, true
}

func (h accessHandler) writeCreated(w http.ResponseWriter, user *models.User, created bool, err error) {
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if !created {
		h.responder.WriteError(w, errs.NewAlreadyExists("User"))
		return
	}
	h.responder.WriteJSONStatus(w, http.StatusCreated, createUserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// @Summary Create the session user (early-access flow)
// @Description Allow-listed emails only. Creates the user with a placeholder GitHub username.
// @Tags access
// @Produce json
// @Success 201 {object} createUserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/create-user [post]
func (h accessHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.sessionIdentity(w, r)
		if !ok {
			return
		}
		user, created, err := h.identity.ResolveAllowed(r.Context(), id)
		h.writeCreated(w, user, created, err)
	}
}

// @Summary Create the session user (event flow)
// @Description Same as create-user without the allow-list.
// @Tags access
// @Produce json
// @Success 201 {object} createUserResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/create-devfest-user [post]
func (h accessHandler) createDevfestUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.sessionIdentity(w, r)
		if !ok {
			return
		}
		user, created, err := h.identity.Resolve(r.Context(), id)
		h.writeCreated(w, user, created, err)
	}
}
