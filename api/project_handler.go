package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/errs"
	"github.com/sitesmith/sitesmith-backend/models"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
	publisher sitePublisher
}

func newProjectHandler(projects projectStore, publisher sitePublisher) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		publisher: publisher,
	}
}

// ProjectListResponse represents a page of projects
type ProjectListResponse struct {
	Projects []*models.Project `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	Pages    int64             `json:"pages"`
}

// getAllProjects retrieves a page of projects, newest first
// @Summary List projects
// @Description Retrieves a page of generated website projects, newest first
// @Tags Projects
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Param user_id query string false "Scope to one user's projects"
// @Success 200 {object} ProjectListResponse "Page of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}
		perPage := queryInt(r, "per_page", 20)
		if perPage < 1 {
			perPage = 20
		}
		if perPage > 100 {
			perPage = 100
		}

		var userID *string
		if queried := r.URL.Query().Get("user_id"); queried != "" {
			userID = &queried
		} else if authenticated, ok := ctxUserID(r.Context()); ok {
			userID = &authenticated
		}

		projects, total, err := h.projects.FindPage(page, perPage, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		pages := total / int64(perPage)
		if total%int64(perPage) != 0 {
			pages++
		}

		h.responder.WriteJSON(w, ProjectListResponse{
			Projects: projects,
			Total:    total,
			Page:     page,
			PerPage:  perPage,
			Pages:    pages,
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves a specific generated website project by ID
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// updateProject updates a project's name and description
// @Summary Update project
// @Description Updates a project's name and/or description; other fields are immutable
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body updateProjectRequest true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var request updateProjectRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&request); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		updates := map[string]any{}
		if request.Name != nil {
			if *request.Name == "" {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("name must not be empty", "name", ""))
				return
			}
			updates["name"] = *request.Name
		}
		if request.Description != nil {
			updates["description"] = *request.Description
		}

		if len(updates) == 0 {
			h.responder.WriteJSON(w, project)
			return
		}

		if err := h.projects.UpdateFields(project.ID, updates); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updatedProject, err := h.projects.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project; deleting twice yields 404 the second time
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		deleted, err := h.projects.Delete(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Project deleted successfully",
		})
	}
}

// getRelatedProjects finds projects nearest to this one by prompt embedding
// @Summary Related projects
// @Description Finds projects with the most similar prompts; empty list when the project has no embedding
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param limit query int false "Maximum results (default 5, max 20)"
// @Success 200 {object} map[string]interface{} "Related projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /projects/{projectID}/related [get]
func (h projectHandler) getRelatedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		limit := queryInt(r, "limit", 5)
		if limit < 1 {
			limit = 5
		}
		if limit > 20 {
			limit = 20
		}

		related := []*models.Project{}
		if project.Embedding != nil {
			found, err := h.projects.FindRelated(*project.Embedding, project.ID, limit)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find related projects", "projects", err))
				return
			}
			if found != nil {
				related = found
			}
		}

		h.responder.WriteJSON(w, map[string]any{
			"project_id": project.ID,
			"related":    related,
		})
	}
}

// publishProject uploads the project's files to the configured bucket
// @Summary Publish project
// @Description Publishes the project's files to public hosting and returns the site URL
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Published site URL"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID or no files"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Publishing not configured"
// @Router /projects/{projectID}/publish [post]
func (h projectHandler) publishProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.publisher == nil {
			h.responder.WriteError(w, errs.NewPublishNotConfiguredError())
			return
		}

		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		files := project.FileMap()
		if len(files) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("project has no files to publish"))
			return
		}

		url, err := h.publisher.PublishProject(r.Context(), project.ID, files)
		if err != nil {
			h.responder.WriteError(w, errs.NewPublishFailedError(err))
			return
		}

		if err := h.projects.UpdateFields(project.ID, map[string]any{
			"metadata": datatypes.JSONMap(mergeMetadata(project.Metadata, map[string]any{"published_url": url})),
		}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to record published URL")
		}

		h.responder.WriteJSON(w, map[string]any{
			"success":       true,
			"project_id":    project.ID,
			"published_url": url,
		})
	}
}

// parseProjectID extracts and validates the projectID path parameter,
// writing the error response itself on failure.
func (h projectHandler) parseProjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return uuid.Nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return uuid.Nil, false
	}

	return projectID, true
}

// loadProject fetches the project named in the path, writing 400/404/500
// responses itself when the lookup fails.
func (h projectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	projectID, ok := h.parseProjectID(w, r)
	if !ok {
		return nil, false
	}

	project, err := h.projects.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
		return nil, false
	}

	if project == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
		return nil, false
	}

	return project, true
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// mergeMetadata overlays updates onto existing metadata without mutating the
// stored map.
func mergeMetadata(existing map[string]any, updates map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(updates))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}
	return merged
}
