package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEnhanceProjectSuggestions(t *testing.T) {
	project := newTestProject()
	generator := &stubGenerator{
		suggestFn: func(ctx context.Context, provider, currentContent string) []services.Suggestion {
			assert.Equal(t, "openai", provider)
			assert.Contains(t, currentContent, "bakery")
			return []services.Suggestion{{Type: "visual", Title: "Darker header", Impact: "low"}}
		},
	}
	handler := newEnhanceHandler(generator, newStubProjectStore(project))

	payload := []byte(`{"project_id":"` + project.ID.String() + `","enhancement_type":"suggestions"}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	suggestions, ok := body["suggestions"].([]any)
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Darker header", suggestions[0].(map[string]any)["title"])
}

func TestEnhanceProjectApplyWinsOverSuggestions(t *testing.T) {
	project := newTestProject()
	applied := false
	generator := &stubGenerator{
		suggestFn: func(ctx context.Context, provider, currentContent string) []services.Suggestion {
			t.Fatal("suggestions path must not run when apply is true")
			return nil
		},
		applyFn: func(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult {
			applied = true
			assert.Equal(t, "Darker header: Use a dark hero section", instruction)
			return successResult(provider)
		},
	}
	store := newStubProjectStore(project)
	handler := newEnhanceHandler(generator, store)

	payload := []byte(`{
		"project_id":"` + project.ID.String() + `",
		"enhancement_type":"suggestions",
		"apply":true,
		"enhancement":{"type":"visual","title":"Darker header","description":"Use a dark hero section"}
	}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, applied)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["enhanced_project"])
}

func TestEnhanceProjectApplyOverwritesFiles(t *testing.T) {
	project := newTestProject()
	generator := &stubGenerator{
		applyFn: func(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult {
			return &services.GenerationResult{
				Success:  true,
				Provider: provider,
				Files:    map[string]string{"index.html": "<html>enhanced</html>"},
				Metadata: map[string]any{"enhancement_applied": instruction},
			}
		},
	}
	store := newStubProjectStore(project)
	handler := newEnhanceHandler(generator, store)

	payload := []byte(`{
		"project_id":"` + project.ID.String() + `",
		"apply":true,
		"modification_type":"custom_prompt",
		"enhancement":{"prompt":"make it darker"}
	}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	require.Equal(t, http.StatusOK, recorder.Code)

	updates := store.updated[project.ID]
	require.NotNil(t, updates)
	files, ok := updates["files"].(datatypes.JSONMap)
	require.True(t, ok)
	assert.Equal(t, "<html>enhanced</html>", files["index.html"])

	metadata, ok := updates["metadata"].(datatypes.JSONMap)
	require.True(t, ok)
	assert.Equal(t, "make it darker", metadata["enhancement_applied"])
	// Existing metadata survives the merge
	assert.Equal(t, "gpt-4.1", metadata["model"])
}

func TestEnhanceProjectApplyFailureIsData(t *testing.T) {
	project := newTestProject()
	generator := &stubGenerator{
		applyFn: func(ctx context.Context, provider, currentContent, instruction, websiteType string) *services.GenerationResult {
			return &services.GenerationResult{Success: false, Provider: provider, Error: "API error: overloaded"}
		},
	}
	store := newStubProjectStore(project)
	handler := newEnhanceHandler(generator, store)

	payload := []byte(`{
		"project_id":"` + project.ID.String() + `",
		"apply":true,
		"enhancement":{"title":"Darker header"}
	}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "API error: overloaded", body["error"])
	assert.Empty(t, store.updated)
}

func TestEnhanceProjectApplyMissingEnhancement(t *testing.T) {
	project := newTestProject()
	handler := newEnhanceHandler(&stubGenerator{}, newStubProjectStore(project))

	payload := []byte(`{"project_id":"` + project.ID.String() + `","apply":true}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestEnhanceProjectNotFound(t *testing.T) {
	handler := newEnhanceHandler(&stubGenerator{}, newStubProjectStore())

	payload := []byte(`{"project_id":"` + uuid.NewString() + `"}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestEnhanceProjectMissingProjectID(t *testing.T) {
	handler := newEnhanceHandler(&stubGenerator{}, newStubProjectStore())

	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", []byte(`{}`), handler.enhanceProject())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestEnhanceProjectProviderFallsBackToProject(t *testing.T) {
	project := newTestProject()
	project.Provider = "gemini"
	var capturedProvider string
	generator := &stubGenerator{
		suggestFn: func(ctx context.Context, provider, currentContent string) []services.Suggestion {
			capturedProvider = provider
			return nil
		},
	}
	handler := newEnhanceHandler(generator, newStubProjectStore(project))

	payload := []byte(`{"project_id":"` + project.ID.String() + `"}`)
	recorder := routeRequest(http.MethodPost, "/enhance-project", "/enhance-project", payload, handler.enhanceProject())

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "gemini", capturedProvider)
}
