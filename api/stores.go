package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
)

// The handlers depend on these narrow surfaces instead of the concrete
// database/service types so tests can substitute stubs.

type projectStore interface {
	FindPage(page, perPage int, userID *string) ([]*models.Project, int64, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	UpdateFields(id uuid.UUID, updates map[string]any) error
	Delete(id uuid.UUID) (bool, error)
	FindRelated(embedding pgvector.Vector, excludeID uuid.UUID, limit int) ([]*models.Project, error)
}

type comparisonStore interface {
	Add(comparison *models.Comparison) error
	FindByID(id uuid.UUID) (*models.Comparison, error)
}

type statusCheckStore interface {
	Add(check *models.StatusCheck) error
	FindRecent(limit int) ([]*models.StatusCheck, error)
}

type websiteGenerator interface {
	Generate(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult
	Compare(ctx context.Context, prompt, websiteType string) *services.ComparisonResult
	SuggestEnhancements(ctx context.Context, provider, currentContent string) []services.Suggestion
	ApplyEnhancement(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult
}

type promptEmbedder interface {
	EmbedPrompt(ctx context.Context, prompt string) (*pgvector.Vector, error)
}

type sitePublisher interface {
	PublishProject(ctx context.Context, projectID uuid.UUID, files map[string]string) (string, error)
}
