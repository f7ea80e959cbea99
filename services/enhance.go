package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Suggestion is one improvement idea for an existing website, shaped for the
// frontend's suggestion cards.
type Suggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Icon        string `json:"icon"`
}

// Enhancement carries the client's modification request. Which fields are
// set depends on the modification type: curated suggestions carry
// type/title/description, custom prompts carry prompt, chat messages carry
// message.
type Enhancement struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Instruction flattens the enhancement into the modification text handed to
// the model.
func (e Enhancement) Instruction(modificationType string) string {
	switch modificationType {
	case "custom_prompt":
		if e.Description != "" && e.Description != e.Prompt {
			return e.Prompt + "\n\n" + e.Description
		}
		return e.Prompt
	case "chat_interactive":
		return e.Message
	default:
		if e.Description != "" {
			return e.Title + ": " + e.Description
		}
		return e.Title
	}
}

// fallbackSuggestions is served whenever the model's suggestion reply cannot
// be parsed, so the enhancement panel never comes up empty.
var fallbackSuggestions = []Suggestion{
	{Type: "visual", Title: "Modernize the color palette", Description: "Apply a cohesive, accessible color scheme with stronger contrast between sections", Impact: "high", Icon: "🎨"},
	{Type: "content", Title: "Sharpen the headline copy", Description: "Rewrite hero and section headlines to lead with the visitor's benefit", Impact: "high", Icon: "✍️"},
	{Type: "interactive", Title: "Add scroll animations", Description: "Reveal sections with subtle fade and slide transitions as the visitor scrolls", Impact: "medium", Icon: "✨"},
	{Type: "visual", Title: "Improve mobile spacing", Description: "Tighten paddings and font sizes on small screens for a cleaner mobile layout", Impact: "medium", Icon: "📱"},
	{Type: "seo", Title: "Add structured meta tags", Description: "Include Open Graph and description meta tags so shared links render rich previews", Impact: "low", Icon: "🔍"},
}

// SuggestEnhancements asks the provider for improvement ideas for the given
// page. Any failure, from the vendor call to JSON parsing, falls back to the
// static suggestion list.
func (g *Generator) SuggestEnhancements(ctx context.Context, provider, currentContent string) []Suggestion {
	completer, err := g.providers.Completer(provider)
	if err != nil {
		g.logger.Warn().Err(err).Str("provider", provider).Msg("Suggestions falling back to static list")
		return fallbackSuggestions
	}

	reply, err := g.complete(ctx, completer, provider, BuildSuggestionsPrompt(currentContent))
	if err != nil {
		return fallbackSuggestions
	}

	suggestions, err := parseSuggestions(reply)
	if err != nil {
		g.logger.Warn().Err(err).Str("provider", provider).Msg("Unparseable suggestion reply, using static list")
		return fallbackSuggestions
	}
	return suggestions
}

// ApplyEnhancement regenerates a website's files with the modification
// instruction applied to its current main page.
func (g *Generator) ApplyEnhancement(ctx context.Context, provider, currentContent, instruction, websiteType string) *GenerationResult {
	completer, err := g.providers.Completer(provider)
	if err != nil {
		return &GenerationResult{Success: false, Provider: provider, Error: err.Error()}
	}

	prompt := BuildEnhancementPrompt(currentContent, instruction)
	reply, err := g.complete(ctx, completer, provider, prompt)
	if err != nil {
		return &GenerationResult{Success: false, Provider: provider, Error: err.Error()}
	}

	files := ParseGeneratedFiles(reply)
	g.logger.Info().Str("provider", provider).Int("files", len(files)).Msg("Enhancement applied")

	return &GenerationResult{
		Success:     true,
		Provider:    provider,
		WebsiteType: websiteType,
		Files:       files,
		Metadata: map[string]any{
			"enhanced_at":         time.Now().UTC().Format(time.RFC3339),
			"enhancement_applied": instruction,
			"provider":            provider,
			"model":               g.providers.ModelName(provider),
		},
	}
}

// parseSuggestions accepts a bare JSON array or one wrapped in a markdown
// fence or other prose; anything else is an error.
func parseSuggestions(reply string) ([]Suggestion, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end <= start {
		return nil, errInvalidSuggestionReply
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(reply[start:end+1]), &suggestions); err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, errInvalidSuggestionReply
	}
	return suggestions, nil
}

var errInvalidSuggestionReply = errors.New("reply does not contain a suggestion array")
