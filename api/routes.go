package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes mounts the operational endpoints and the /api surface
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Get("/health", handlers.healthHandler.check())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/check-access", handlers.accessHandler.checkAccess())
			r.Get("/voting-status", handlers.voteHandler.getStatus())

			r.Get("/projects", handlers.projectHandler.getAll())
			r.Get("/projects/{projectID}", handlers.projectHandler.getByID())
			r.Options("/projects/{projectID}", handlers.projectHandler.options())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)

			r.Get("/check-access", handlers.accessHandler.checkSessionAccess())
			r.Post("/create-user", handlers.accessHandler.createUser())
			r.Post("/create-devfest-user", handlers.accessHandler.createDevfestUser())

			r.Get("/user", handlers.userHandler.getUser())
			r.Patch("/user", handlers.userHandler.updateUser())
			r.Get("/auth/check-admin", handlers.userHandler.checkAdmin())
			r.Put("/admin/update-user", handlers.userHandler.adminUpdateUser())

			r.Get("/github/oauth", handlers.githubHandler.oauthURL())
			r.Get("/github/callback", handlers.githubHandler.callback())

			r.Post("/projects/post-project", handlers.projectHandler.create())
			r.Post("/projects/{projectID}/images", handlers.projectHandler.uploadImage())
			r.Post("/projects/{projectID}/vote", handlers.voteHandler.vote())
			r.Get("/projects/admin/votes", handlers.voteHandler.tally())

			r.Post("/voting-status", handlers.voteHandler.setStatus())
			r.Post("/tags", handlers.tagHandler.create())
		})
	})
}
