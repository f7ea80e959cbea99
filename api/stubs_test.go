package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
)

// In-memory stand-ins for the store interfaces so handlers can be exercised
// without a database.

type stubProjectStore struct {
	projects map[uuid.UUID]*models.Project
	related  []*models.Project
	err      error

	added   []*models.Project
	updated map[uuid.UUID]map[string]any
}

func newStubProjectStore(projects ...*models.Project) *stubProjectStore {
	store := &stubProjectStore{
		projects: make(map[uuid.UUID]*models.Project),
		updated:  make(map[uuid.UUID]map[string]any),
	}
	for _, project := range projects {
		store.projects[project.ID] = project
	}
	return store
}

func (s *stubProjectStore) FindPage(page, perPage int, userID *string) ([]*models.Project, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	var matched []*models.Project
	for _, project := range s.projects {
		if userID != nil && (project.UserID == nil || *project.UserID != *userID) {
			continue
		}
		matched = append(matched, project)
	}
	total := int64(len(matched))
	start := (page - 1) * perPage
	if start >= len(matched) {
		return []*models.Project{}, total, nil
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *stubProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.projects[id], nil
}

func (s *stubProjectStore) Add(project *models.Project) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, project)
	s.projects[project.ID] = project
	return nil
}

func (s *stubProjectStore) UpdateFields(id uuid.UUID, updates map[string]any) error {
	if s.err != nil {
		return s.err
	}
	s.updated[id] = updates
	project, ok := s.projects[id]
	if !ok {
		return nil
	}
	if name, ok := updates["name"].(string); ok {
		project.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		project.Description = description
	}
	return nil
}

func (s *stubProjectStore) Delete(id uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}

func (s *stubProjectStore) FindRelated(embedding pgvector.Vector, excludeID uuid.UUID, limit int) ([]*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.related, nil
}

type stubComparisonStore struct {
	comparisons map[uuid.UUID]*models.Comparison
	err         error
	added       []*models.Comparison
}

func newStubComparisonStore(comparisons ...*models.Comparison) *stubComparisonStore {
	store := &stubComparisonStore{comparisons: make(map[uuid.UUID]*models.Comparison)}
	for _, comparison := range comparisons {
		store.comparisons[comparison.ID] = comparison
	}
	return store
}

func (s *stubComparisonStore) Add(comparison *models.Comparison) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, comparison)
	s.comparisons[comparison.ID] = comparison
	return nil
}

func (s *stubComparisonStore) FindByID(id uuid.UUID) (*models.Comparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comparisons[id], nil
}

type stubStatusCheckStore struct {
	checks []*models.StatusCheck
	err    error
}

func (s *stubStatusCheckStore) Add(check *models.StatusCheck) error {
	if s.err != nil {
		return s.err
	}
	s.checks = append(s.checks, check)
	return nil
}

func (s *stubStatusCheckStore) FindRecent(limit int) ([]*models.StatusCheck, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.checks) > limit {
		return s.checks[:limit], nil
	}
	return s.checks, nil
}

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult
	compareFn  func(ctx context.Context, prompt, websiteType string) *services.ComparisonResult
	suggestFn  func(ctx context.Context, provider, currentContent string) []services.Suggestion
	applyFn    func(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
	return s.generateFn(ctx, prompt, provider, websiteType)
}

func (s *stubGenerator) Compare(ctx context.Context, prompt, websiteType string) *services.ComparisonResult {
	return s.compareFn(ctx, prompt, websiteType)
}

func (s *stubGenerator) SuggestEnhancements(ctx context.Context, provider, currentContent string) []services.Suggestion {
	return s.suggestFn(ctx, provider, currentContent)
}

func (s *stubGenerator) ApplyEnhancement(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult {
	return s.applyFn(ctx, provider, currentContent, instruction, websiteType)
}

type stubEmbedder struct {
	embedding *pgvector.Vector
	err       error
}

func (s *stubEmbedder) EmbedPrompt(ctx context.Context, prompt string) (*pgvector.Vector, error) {
	return s.embedding, s.err
}

type stubPublisher struct {
	url string
	err error

	publishedID    uuid.UUID
	publishedFiles map[string]string
}

func (s *stubPublisher) PublishProject(ctx context.Context, projectID uuid.UUID, files map[string]string) (string, error) {
	s.publishedID = projectID
	s.publishedFiles = files
	return s.url, s.err
}
