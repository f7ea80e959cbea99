package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sitesmith/sitesmith-backend/config"
	"github.com/sitesmith/sitesmith-backend/errs"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultOpenAIModel = "gpt-4.1"
	defaultGeminiModel = "gemini-2.5-pro-preview-05-06"
)

// KnownProviders lists every provider the API understands, whether or not a
// key is configured for it. Comparison mode reports a result for each.
var KnownProviders = []string{ProviderOpenAI, ProviderGemini}

// Completer is the minimal surface the generator needs from an LLM vendor.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type langchainCompleter struct {
	model     llms.Model
	provider  string
	maxTokens int
}

func (c langchainCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
		},
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errs.NewEmptyModelReplyError(c.provider)
	}
	return resp.Choices[0].Content, nil
}

// ProviderSet holds one configured completion client per AI provider, plus
// an optional embedder used for related-project search.
type ProviderSet struct {
	completers map[string]Completer
	modelNames map[string]string
	embedder   embeddings.Embedder
}

// NewProviderSet builds clients for every provider that has an API key in
// the config. Providers without keys are still addressable by name; calling
// them yields ErrProviderNotConfigured.
func NewProviderSet(ctx context.Context, cfg map[string]string) (*ProviderSet, error) {
	set := &ProviderSet{
		completers: make(map[string]Completer),
		modelNames: make(map[string]string),
	}

	maxTokens := config.GetInt(cfg, "GENERATION_MAX_TOKENS", 8192)

	if key := config.GetString(cfg, "OPENAI_API_KEY", ""); key != "" {
		model := config.GetString(cfg, "OPENAI_MODEL", defaultOpenAIModel)
		client, err := openai.New(openai.WithToken(key), openai.WithModel(model))
		if err != nil {
			return nil, err
		}
		set.completers[ProviderOpenAI] = langchainCompleter{model: client, provider: ProviderOpenAI, maxTokens: maxTokens}
		set.modelNames[ProviderOpenAI] = model

		if config.GetBool(cfg, "EMBEDDINGS_ENABLED", true) {
			embedder, err := embeddings.NewEmbedder(client)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to build embedder, related-project search disabled")
			} else {
				set.embedder = embedder
			}
		}
	}

	if key := config.GetString(cfg, "GEMINI_API_KEY", ""); key != "" {
		model := config.GetString(cfg, "GEMINI_MODEL", defaultGeminiModel)
		client, err := googleai.New(ctx, googleai.WithAPIKey(key), googleai.WithDefaultModel(model))
		if err != nil {
			return nil, err
		}
		set.completers[ProviderGemini] = langchainCompleter{model: client, provider: ProviderGemini, maxTokens: maxTokens}
		set.modelNames[ProviderGemini] = model
	}

	if len(set.completers) == 0 {
		log.Warn().Msg("No AI provider keys configured; generation endpoints will report failures")
	}

	return set, nil
}

// Completer returns the client for a provider name.
func (s *ProviderSet) Completer(provider string) (Completer, error) {
	completer, ok := s.completers[provider]
	if ok {
		return completer, nil
	}
	for _, known := range KnownProviders {
		if provider == known {
			return nil, errs.NewProviderNotConfiguredError(provider)
		}
	}
	return nil, errs.NewUnsupportedProviderError(provider)
}

// ModelName reports the model a provider is configured with, for metadata.
func (s *ProviderSet) ModelName(provider string) string {
	return s.modelNames[provider]
}

// IsKnown reports whether the provider name is one the API understands.
func IsKnown(provider string) bool {
	for _, known := range KnownProviders {
		if provider == known {
			return true
		}
	}
	return false
}
