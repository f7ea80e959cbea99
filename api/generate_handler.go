package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/errs"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
)

type generateHandler struct {
	responder   Responder
	logger      zerolog.Logger
	generator   websiteGenerator
	projects    projectStore
	comparisons comparisonStore
	embedder    promptEmbedder
}

func newGenerateHandler(generator websiteGenerator, projects projectStore, comparisons comparisonStore, embedder promptEmbedder) generateHandler {
	logger := log.With().Str("handlerName", "generateHandler").Logger()

	return generateHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		generator:   generator,
		projects:    projects,
		comparisons: comparisons,
		embedder:    embedder,
	}
}

type generateWebsiteRequest struct {
	Prompt      string  `json:"prompt"`
	WebsiteType string  `json:"website_type"`
	Provider    *string `json:"provider"`
}

// generateWebsite generates a website from a prompt
// @Summary Generate website
// @Description Generates a website with one provider, or with both in comparison mode when provider is null
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body generateWebsiteRequest true "Generation request"
// @Success 200 {object} services.GenerationResult "Generation result (success flag carries provider failures)"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing prompt"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /generate-website [post]
func (h generateHandler) generateWebsite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var request generateWebsiteRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&request); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode generation request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if request.Prompt == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("prompt"))
			return
		}

		websiteType := request.WebsiteType
		if websiteType == "" {
			websiteType = "landing"
		}

		if request.Provider != nil && *request.Provider != "" {
			h.generateSingle(w, r, request.Prompt, *request.Provider, websiteType)
			return
		}

		h.generateComparison(w, r, request.Prompt, websiteType)
	}
}

// generateSingle runs one provider and persists the result when it succeeds.
// Provider failures travel inside the result body with HTTP 200.
func (h generateHandler) generateSingle(w http.ResponseWriter, r *http.Request, prompt, provider, websiteType string) {
	h.logger.Info().
		Str("provider", provider).
		Str("websiteType", websiteType).
		Msg("Generating website")

	result := h.generator.Generate(r.Context(), prompt, provider, websiteType)

	if result.Success {
		project, err := h.saveProject(r.Context(), result, prompt, websiteType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save project", "project", err))
			return
		}
		result.ProjectID = project.ID.String()
	}

	h.responder.WriteJSON(w, result)
}

// generateComparison runs both providers, saves each successful result as
// its own project and the joined record as a comparison.
func (h generateHandler) generateComparison(w http.ResponseWriter, r *http.Request, prompt, websiteType string) {
	h.logger.Info().
		Str("websiteType", websiteType).
		Msg("Generating website in comparison mode")

	comparison := h.generator.Compare(r.Context(), prompt, websiteType)

	for _, result := range comparison.Results {
		if !result.Success {
			continue
		}
		project, err := h.saveProject(r.Context(), result, prompt, websiteType)
		if err != nil {
			h.logger.Error().Err(err).Str("provider", result.Provider).Msg("Failed to save comparison project")
			continue
		}
		result.ProjectID = project.ID.String()
	}

	results := make(map[string]any, len(comparison.Results))
	for provider, result := range comparison.Results {
		results[provider] = result
	}

	record := models.Comparison{
		OriginalPrompt: prompt,
		WebsiteType:    websiteType,
		Results:        results,
		CreatedAt:      comparison.GeneratedAt,
	}
	record.Prepare()

	if err := h.comparisons.Add(&record); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save comparison", "comparison", err))
		return
	}

	h.responder.WriteJSON(w, map[string]any{
		"success":         comparison.Success,
		"comparison_id":   record.ID,
		"original_prompt": comparison.OriginalPrompt,
		"website_type":    comparison.WebsiteType,
		"results":         comparison.Results,
		"generated_at":    comparison.GeneratedAt,
	})
}

// saveProject persists a successful generation result, computing a prompt
// embedding best-effort so related-project lookups can find it later.
func (h generateHandler) saveProject(ctx context.Context, result *services.GenerationResult, prompt, websiteType string) (*models.Project, error) {
	metadata := make(map[string]any, len(result.Metadata))
	for key, value := range result.Metadata {
		metadata[key] = value
	}

	project := models.Project{
		Name:        "Generated Website - " + time.Now().UTC().Format("2006-01-02 15:04"),
		Description: prompt,
		WebsiteType: websiteType,
		Provider:    result.Provider,
		Files:       models.FilesJSON(result.Files),
		Metadata:    metadata,
		Tags:        []string{websiteType, result.Provider},
	}
	project.Prepare()

	if userID, ok := ctxUserID(ctx); ok {
		project.UserID = &userID
	}

	if h.embedder != nil {
		embedding, err := h.embedder.EmbedPrompt(ctx, prompt)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to embed prompt, saving project without embedding")
		} else {
			project.Embedding = embedding
		}
	}

	if err := h.projects.Add(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

// getComparison retrieves a stored comparison by ID
// @Summary Get comparison
// @Description Retrieves a stored provider comparison by ID
// @Tags Generation
// @Produce json
// @Param comparisonID path string true "Comparison ID" format(uuid)
// @Success 200 {object} models.Comparison "Comparison"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid comparisonID"
// @Failure 404 {object} ErrorResponse "Not Found - Comparison not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /comparisons/{comparisonID} [get]
func (h generateHandler) getComparison() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comparisonIDStr := chi.URLParam(r, "comparisonID")
		if comparisonIDStr == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing comparisonID"))
			return
		}

		comparisonID, err := uuid.Parse(comparisonIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comparisonID"))
			return
		}

		comparison, err := h.comparisons.FindByID(comparisonID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comparison", "comparison", err))
			return
		}

		if comparison == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comparison not found"))
			return
		}

		h.responder.WriteJSON(w, comparison)
	}
}
