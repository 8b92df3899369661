package api

import (
	"context"
	"net/http"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	db          database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		db:          db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("database", err))
			return
		}
		h.responder.WriteJSON(w, healthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
