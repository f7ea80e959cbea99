package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successResult(provider string) *services.GenerationResult {
	return &services.GenerationResult{
		Success:     true,
		Provider:    provider,
		WebsiteType: "landing",
		Files:       map[string]string{"index.html": "<html></html>"},
		Metadata:    map[string]any{"model": "test-model-" + provider},
	}
}

func TestGenerateWebsiteMissingPrompt(t *testing.T) {
	handler := newGenerateHandler(&stubGenerator{}, newStubProjectStore(), newStubComparisonStore(), nil)

	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", []byte(`{"website_type":"landing"}`), handler.generateWebsite())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGenerateWebsiteMalformedBody(t *testing.T) {
	handler := newGenerateHandler(&stubGenerator{}, newStubProjectStore(), newStubComparisonStore(), nil)

	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", []byte(`{not json`), handler.generateWebsite())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGenerateWebsiteSingleProvider(t *testing.T) {
	generator := &stubGenerator{
		generateFn: func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
			assert.Equal(t, "a bakery site", prompt)
			assert.Equal(t, "openai", provider)
			assert.Equal(t, "landing", websiteType)
			return successResult(provider)
		},
	}
	projects := newStubProjectStore()
	handler := newGenerateHandler(generator, projects, newStubComparisonStore(), nil)

	payload := []byte(`{"prompt":"a bakery site","website_type":"landing","provider":"openai"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["project_id"])

	require.Len(t, projects.added, 1)
	saved := projects.added[0]
	assert.Equal(t, "a bakery site", saved.Description)
	assert.Equal(t, "openai", saved.Provider)
	assert.Equal(t, []string{"landing", "openai"}, []string(saved.Tags))
	assert.Equal(t, body["project_id"], saved.ID.String())
}

func TestGenerateWebsiteDefaultsToLanding(t *testing.T) {
	var capturedType string
	generator := &stubGenerator{
		generateFn: func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
			capturedType = websiteType
			return successResult(provider)
		},
	}
	handler := newGenerateHandler(generator, newStubProjectStore(), newStubComparisonStore(), nil)

	payload := []byte(`{"prompt":"a site","provider":"gemini"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "landing", capturedType)
}

func TestGenerateWebsiteProviderFailureIsData(t *testing.T) {
	generator := &stubGenerator{
		generateFn: func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
			return &services.GenerationResult{Success: false, Provider: provider, Error: "API error: rate limited"}
		},
	}
	projects := newStubProjectStore()
	handler := newGenerateHandler(generator, projects, newStubComparisonStore(), nil)

	payload := []byte(`{"prompt":"a site","provider":"openai"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	// Failure travels in the body with HTTP 200, not as an HTTP error
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "API error: rate limited", body["error"])
	assert.Empty(t, projects.added)
}

func TestGenerateWebsiteComparisonMode(t *testing.T) {
	generator := &stubGenerator{
		compareFn: func(ctx context.Context, prompt, websiteType string) *services.ComparisonResult {
			return &services.ComparisonResult{
				Success:        true,
				OriginalPrompt: prompt,
				WebsiteType:    websiteType,
				Results: map[string]*services.GenerationResult{
					"openai": successResult("openai"),
					"gemini": {Success: false, Provider: "gemini", Error: "API error: overloaded"},
				},
				GeneratedAt: time.Now().UTC(),
			}
		},
	}
	projects := newStubProjectStore()
	comparisons := newStubComparisonStore()
	handler := newGenerateHandler(generator, projects, comparisons, nil)

	payload := []byte(`{"prompt":"a bakery site"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["comparison_id"])
	assert.Equal(t, "a bakery site", body["original_prompt"])

	results, ok := body["results"].(map[string]any)
	require.True(t, ok)
	openaiResult := results["openai"].(map[string]any)
	geminiResult := results["gemini"].(map[string]any)
	assert.Equal(t, true, openaiResult["success"])
	assert.NotEmpty(t, openaiResult["project_id"])
	assert.Equal(t, false, geminiResult["success"])
	assert.Empty(t, geminiResult["project_id"])

	// Only the successful provider's result becomes a project
	require.Len(t, projects.added, 1)
	assert.Equal(t, "openai", projects.added[0].Provider)

	// The joined record is stored keyed by provider
	require.Len(t, comparisons.added, 1)
	assert.Contains(t, comparisons.added[0].Results, "openai")
	assert.Contains(t, comparisons.added[0].Results, "gemini")
}

func TestGenerateWebsiteSavesEmbedding(t *testing.T) {
	generator := &stubGenerator{
		generateFn: func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
			return successResult(provider)
		},
	}
	projects := newStubProjectStore()
	vector := pgvector.NewVector([]float32{0.1, 0.2, 0.3})
	handler := newGenerateHandler(generator, projects, newStubComparisonStore(), &stubEmbedder{embedding: &vector})

	payload := []byte(`{"prompt":"a site","provider":"openai"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, projects.added, 1)
	assert.NotNil(t, projects.added[0].Embedding)
}

func TestGenerateWebsiteEmbeddingFailureIsNonFatal(t *testing.T) {
	generator := &stubGenerator{
		generateFn: func(ctx context.Context, prompt, provider, websiteType string) *services.GenerationResult {
			return successResult(provider)
		},
	}
	projects := newStubProjectStore()
	handler := newGenerateHandler(generator, projects, newStubComparisonStore(), &stubEmbedder{err: assert.AnError})

	payload := []byte(`{"prompt":"a site","provider":"openai"}`)
	recorder := routeRequest(http.MethodPost, "/generate-website", "/generate-website", payload, handler.generateWebsite())

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, projects.added, 1)
	assert.Nil(t, projects.added[0].Embedding)
}

func TestGetComparison(t *testing.T) {
	comparison := &models.Comparison{
		ID:             uuid.New(),
		OriginalPrompt: "a bakery site",
		WebsiteType:    "landing",
		Results:        map[string]any{"openai": map[string]any{"success": true}},
		CreatedAt:      time.Now().UTC(),
	}
	handler := newGenerateHandler(&stubGenerator{}, newStubProjectStore(), newStubComparisonStore(comparison), nil)

	recorder := routeRequest(http.MethodGet, "/comparisons/{comparisonID}", "/comparisons/"+comparison.ID.String(), nil, handler.getComparison())

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, comparison.ID.String(), body["comparison_id"])
	assert.Equal(t, "a bakery site", body["original_prompt"])
}

func TestGetComparisonNotFound(t *testing.T) {
	handler := newGenerateHandler(&stubGenerator{}, newStubProjectStore(), newStubComparisonStore(), nil)

	recorder := routeRequest(http.MethodGet, "/comparisons/{comparisonID}", "/comparisons/"+uuid.NewString(), nil, handler.getComparison())

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
