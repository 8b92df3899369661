package api

import (
	"net/http"

	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder  Responder
	logger     zerolog.Logger
	users      *services.UserService
	authorizer *services.Authorizer
}

func newUserHandler(users *services.UserService, authorizer *services.Authorizer) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()
	return userHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		users:      users,
		authorizer: authorizer,
	}
}

type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type updateRoleRequest struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// @Summary Get the current user
// @Description Returns the session user with their projects, vote state and pending memberships
// @Tags users
// @Produce json
// @Success 200 {object} services.UserProfile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/user [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.users.Profile(r.Context(), ctxGetEmail(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body updateProfileRequest true "Name and bio"
// @Success 200 {object} models.User
// @Router /api/user [patch]
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.UpdateProfile(r.Context(), ctxGetEmail(r.Context()), req.Name, req.Bio)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Param update body updateRoleRequest true "Target email and role"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/admin/update-user [put]
func (h userHandler) adminUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRoleRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := h.users.UpdateRole(r.Context(), ctxGetEmail(r.Context()), req.Email, req.Role)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) checkAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.authorizer.Require(r.Context(), ctxGetEmail(r.Context()), models.RoleAdmin); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"message": "Admin access granted"})
	}
}
