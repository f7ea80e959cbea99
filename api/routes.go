package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes registers the full /api surface
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Catalog endpoints
		r.Get("/", handlers.catalogHandler.root())
		r.Get("/website-types", handlers.catalogHandler.getWebsiteTypes())
		r.Get("/ai-providers", handlers.catalogHandler.getAIProviders())
		r.Get("/templates", handlers.catalogHandler.getTemplates())
		r.Get("/status", handlers.catalogHandler.getStatusChecks())
		r.Post("/status", handlers.catalogHandler.createStatusCheck())

		// Generation endpoints
		r.Post("/generate-website", handlers.generateHandler.generateWebsite())
		r.Get("/comparisons/{comparisonID}", handlers.generateHandler.getComparison())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Get("/projects/{projectID}/related", handlers.projectHandler.getRelatedProjects())
		r.Post("/projects/{projectID}/publish", handlers.projectHandler.publishProject())

		// Enhancement endpoints
		r.Post("/enhance-project", handlers.enhanceHandler.enhanceProject())
	})
}
