package api

import (
	"time"

	"github.com/sitesmith/sitesmith-backend/database"
	"github.com/sitesmith/sitesmith-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps Dependencies, startupTime time.Time) *routeHandlers {
	// A nil *services.Publisher must not end up inside the interface value,
	// or the handler's nil check would stop working.
	var publisher sitePublisher
	if deps.Publisher != nil {
		publisher = deps.Publisher
	}

	var generator websiteGenerator
	if deps.Generator != nil {
		generator = deps.Generator
	}

	var embedder promptEmbedder
	if deps.Providers != nil {
		embedder = deps.Providers
	}

	return &routeHandlers{
		catalogHandler:  newCatalogHandler(db.StatusCheckRepo(), startupTime),
		generateHandler: newGenerateHandler(generator, db.ProjectRepo(), db.ComparisonRepo(), embedder),
		projectHandler:  newProjectHandler(db.ProjectRepo(), publisher),
		enhanceHandler:  newEnhanceHandler(generator, db.ProjectRepo()),
	}
}

// Dependencies carries the service layer into the router.
type Dependencies struct {
	DB        database.Database
	Generator *services.Generator
	Providers *services.ProviderSet
	Publisher *services.Publisher
	Config    map[string]string
}
