package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/errs"
	"github.com/sitesmith/sitesmith-backend/models"
	"github.com/sitesmith/sitesmith-backend/services"
)

type catalogHandler struct {
	responder    Responder
	logger       zerolog.Logger
	statusChecks statusCheckStore
	startupTime  time.Time
}

func newCatalogHandler(statusChecks statusCheckStore, startupTime time.Time) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		statusChecks: statusChecks,
		startupTime:  startupTime,
	}
}

// root returns service info
// @Summary Service info
// @Description Returns API name, version and feature list
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Service info"
// @Router / [get]
func (h catalogHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"message": "Professional Website Generator API",
			"version": "2.0.0",
			"uptime":  time.Since(h.startupTime).Round(time.Second).String(),
			"features": []string{
				"Multi-AI Provider Support",
				"Professional Templates",
				"One-Click Generation",
				"Provider Comparison",
				"Project Management",
			},
		})
	}
}

type websiteTypeInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

var websiteTypeCatalog = []websiteTypeInfo{
	{
		ID:          "landing",
		Name:        "Landing Page",
		Description: "Professional landing page with hero, features, testimonials, and CTA",
		Icon:        "🚀",
		Features:    []string{"Hero Section", "Features Grid", "Testimonials", "Contact Form"},
	},
	{
		ID:          "business",
		Name:        "Business Website",
		Description: "Corporate website with services, team, and company information",
		Icon:        "🏢",
		Features:    []string{"Corporate Header", "Services", "Team Section", "About Us"},
	},
	{
		ID:          "portfolio",
		Name:        "Portfolio",
		Description: "Personal or professional portfolio showcase",
		Icon:        "🎨",
		Features:    []string{"Work Gallery", "Skills", "Bio", "Contact"},
	},
	{
		ID:          "ecommerce",
		Name:        "E-Commerce",
		Description: "Online store with products, categories, and shopping features",
		Icon:        "🛒",
		Features:    []string{"Product Grid", "Categories", "Cart", "Checkout"},
	},
	{
		ID:          "blog",
		Name:        "Blog",
		Description: "Professional blog with posts, categories, and subscription",
		Icon:        "📝",
		Features:    []string{"Post List", "Categories", "Author Bio", "Newsletter"},
	},
}

// getWebsiteTypes returns the available website types
// @Summary Website types
// @Description Returns the catalog of supported website types
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Website types"
// @Router /website-types [get]
func (h catalogHandler) getWebsiteTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{"types": websiteTypeCatalog})
	}
}

type providerInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Model       string   `json:"model"`
	Strengths   []string `json:"strengths"`
	Speed       string   `json:"speed"`
	Quality     string   `json:"quality"`
}

// getAIProviders returns the available providers and comparison-mode info
// @Summary AI providers
// @Description Returns the catalog of supported AI providers
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Providers"
// @Router /ai-providers [get]
func (h catalogHandler) getAIProviders() http.HandlerFunc {
	providers := []providerInfo{
		{
			ID:          services.ProviderOpenAI,
			Name:        "OpenAI GPT-4.1",
			Description: "Latest and most advanced model for creative web design",
			Icon:        "🤖",
			Model:       "gpt-4.1",
			Strengths:   []string{"Creative Design", "Modern Layouts", "Interactive Elements"},
			Speed:       "fast",
			Quality:     "excellent",
		},
		{
			ID:          services.ProviderGemini,
			Name:        "Google Gemini 2.5 Pro",
			Description: "Powerful multimodal AI for sophisticated web development",
			Icon:        "💎",
			Model:       "gemini-2.5-pro-preview-05-06",
			Strengths:   []string{"Technical Excellence", "Responsive Design", "Performance"},
			Speed:       "very-fast",
			Quality:     "excellent",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"providers": providers,
			"comparison_mode": map[string]any{
				"enabled":     true,
				"description": "Generate with both providers and compare results",
				"benefits":    []string{"See different approaches", "Choose best design", "Higher success rate"},
			},
		})
	}
}

type templateCategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Templates   []string `json:"templates"`
}

var templateCatalog = []templateCategory{
	{
		ID:          "business",
		Name:        "Business & Corporate",
		Description: "Professional business websites",
		Icon:        "🏢",
		Templates: []string{
			"Corporate Landing", "Consulting Firm", "Agency Portfolio",
			"SaaS Product", "Financial Services", "Law Firm",
		},
	},
	{
		ID:          "creative",
		Name:        "Creative & Portfolio",
		Description: "Showcase your creative work",
		Icon:        "🎨",
		Templates: []string{
			"Designer Portfolio", "Photography", "Artist Gallery",
			"Creative Agency", "Freelancer", "Architecture",
		},
	},
	{
		ID:          "ecommerce",
		Name:        "E-Commerce & Retail",
		Description: "Online stores and shops",
		Icon:        "🛒",
		Templates: []string{
			"Fashion Store", "Electronics", "Handmade Crafts",
			"Digital Products", "Subscription Box", "Marketplace",
		},
	},
	{
		ID:          "personal",
		Name:        "Personal & Blog",
		Description: "Personal websites and blogs",
		Icon:        "👤",
		Templates: []string{
			"Personal Blog", "Travel Blog", "Food Blog",
			"Tech Blog", "Lifestyle", "Resume Site",
		},
	},
	{
		ID:          "specialized",
		Name:        "Specialized Industries",
		Description: "Industry-specific websites",
		Icon:        "🏥",
		Templates: []string{
			"Restaurant", "Medical Practice", "Real Estate",
			"Fitness Studio", "Education", "Non-Profit",
		},
	},
}

// getTemplates returns template categories
// @Summary Templates
// @Description Returns the catalog of template categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Template categories"
// @Router /templates [get]
func (h catalogHandler) getTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{"categories": templateCatalog})
	}
}

// createStatusCheck records a client status probe
// @Summary Create status check
// @Description Records a client-reported status check
// @Tags Status
// @Accept json
// @Produce json
// @Param statusCheck body models.StatusCheck true "Status check"
// @Success 200 {object} models.StatusCheck "Recorded status check"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed body"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /status [post]
func (h catalogHandler) createStatusCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var check models.StatusCheck
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&check); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode status check body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if check.ClientName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("client_name"))
			return
		}

		check.Prepare()

		if err := h.statusChecks.Add(&check); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create status check", "status check", err))
			return
		}

		h.responder.WriteJSON(w, check)
	}
}

// getStatusChecks lists recent status checks
// @Summary List status checks
// @Description Lists the most recent client status checks
// @Tags Status
// @Produce json
// @Success 200 {array} models.StatusCheck "Status checks"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /status [get]
func (h catalogHandler) getStatusChecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks, err := h.statusChecks.FindRecent(1000)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find status checks", "status checks", err))
			return
		}

		if checks == nil {
			checks = []*models.StatusCheck{}
		}

		h.responder.WriteJSON(w, checks)
	}
}
