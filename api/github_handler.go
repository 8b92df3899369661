package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const linkFailedMessage = "Failed to link GitHub account"

type githubHandler struct {
	responder Responder
	logger    zerolog.Logger
	links     *services.LinkService
	baseURL   string
}

func newGithubHandler(links *services.LinkService, baseURL string) githubHandler {
	logger := log.With().Str("handlerName", "githubHandler").Logger()
	return githubHandler{
		responder: NewResponder(logger),
		logger:    logger,
		links:     links,
		baseURL:   baseURL,
	}
}

// @Summary Start GitHub account linking
// @Tags github
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/github/oauth [get]
func (h githubHandler) oauthURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := h.links.AuthorizeURL(ctxGetEmail(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"url": authURL})
	}
}

// @Summary Complete GitHub account linking
// @Description Exchanges the code, links the account and converts pending memberships, then redirects to the dashboard.
// @Tags github
// @Param code query string true "OAuth code"
// @Param state query string true "OAuth state"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Router /api/github/callback [get]
func (h githubHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		result, err := h.links.CompleteLink(r.Context(), ctxGetEmail(r.Context()), query.Get("code"), query.Get("state"))
		if err != nil {
			// Linking failures send the browser back to the app; request and provider errors are reported inline.
			if errs.IsTransactionFailedError(err) || errs.IsNotFound(err) {
				http.Redirect(w, r, h.baseURL+"/error?message="+url.QueryEscape(linkFailedMessage), http.StatusFound)
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		target := fmt.Sprintf("%s/dashboard?github_linked=true&converted_projects=%d", h.baseURL, result.ConvertedCount)
		http.Redirect(w, r, target, http.StatusFound)
	}
}
