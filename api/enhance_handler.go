package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/errs"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
	"gorm.io/datatypes"
)

type enhanceHandler struct {
	responder Responder
	logger    zerolog.Logger
	generator websiteGenerator
	projects  projectStore
}

func newEnhanceHandler(generator websiteGenerator, projects projectStore) enhanceHandler {
	logger := log.With().Str("handlerName", "enhanceHandler").Logger()

	return enhanceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		generator: generator,
		projects:  projects,
	}
}

type enhanceProjectRequest struct {
	ProjectID        string                `json:"project_id"`
	CurrentContent   string                `json:"current_content"`
	EnhancementType  string                `json:"enhancement_type"`
	Enhancement      *services.Enhancement `json:"enhancement"`
	Apply            bool                  `json:"apply"`
	ModificationType string                `json:"modification_type"`
	Provider         string                `json:"provider"`
}

// enhanceProject applies or suggests enhancements for a stored project
// @Summary Enhance project
// @Description With apply=true, regenerates the project with the requested modification; otherwise returns improvement suggestions
// @Tags Enhancement
// @Accept json
// @Produce json
// @Param request body enhanceProjectRequest true "Enhancement request"
// @Success 200 {object} map[string]interface{} "Enhanced project or suggestions"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid request"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /enhance-project [post]
func (h enhanceHandler) enhanceProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var request enhanceProjectRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&request); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode enhancement request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if request.ProjectID == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("project_id"))
			return
		}

		projectID, err := uuid.Parse(request.ProjectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid project_id"))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		provider := request.Provider
		if provider == "" {
			provider = project.Provider
		}
		if provider == "" {
			provider = services.ProviderOpenAI
		}

		currentContent := request.CurrentContent
		if currentContent == "" {
			currentContent = project.MainHTML()
		}

		// apply wins over enhancement_type when both are sent
		if request.Apply {
			h.applyEnhancement(w, r, project, provider, currentContent, request)
			return
		}

		suggestions := h.generator.SuggestEnhancements(r.Context(), provider, currentContent)
		h.responder.WriteJSON(w, map[string]any{
			"success":     true,
			"suggestions": suggestions,
		})
	}
}

// applyEnhancement regenerates the project's files with the requested
// modification and overwrites the stored project. A provider failure is
// reported in the body, not as an HTTP error.
func (h enhanceHandler) applyEnhancement(w http.ResponseWriter, r *http.Request, project *models.Project, provider, currentContent string, request enhanceProjectRequest) {
	if request.Enhancement == nil {
		h.responder.WriteError(w, errs.NewMissingRequiredFieldError("enhancement"))
		return
	}

	instruction := request.Enhancement.Instruction(request.ModificationType)
	if instruction == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("enhancement contains no instruction"))
		return
	}

	result := h.generator.ApplyEnhancement(r.Context(), provider, currentContent, instruction, project.WebsiteType)
	if !result.Success {
		h.responder.WriteJSON(w, map[string]any{
			"success": false,
			"error":   result.Error,
		})
		return
	}

	updates := map[string]any{
		"files":    models.FilesJSON(result.Files),
		"metadata": datatypes.JSONMap(mergeMetadata(project.Metadata, result.Metadata)),
	}

	if err := h.projects.UpdateFields(project.ID, updates); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
		return
	}

	enhancedProject, err := h.projects.FindByID(project.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find enhanced project", "project", err))
		return
	}

	h.responder.WriteJSON(w, map[string]any{
		"success":          true,
		"enhanced_project": enhancedProject,
	})
}
