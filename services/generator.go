package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// GenerationResult is one provider's attempt at a website. A failed attempt
// is still a result: the success flag and error message travel to the client
// instead of an HTTP error, matching how comparison mode reports per-provider
// outcomes.
type GenerationResult struct {
	Success     bool              `json:"success"`
	Provider    string            `json:"provider"`
	WebsiteType string            `json:"website_type,omitempty"`
	ProjectID   string            `json:"project_id,omitempty"`
	Files       map[string]string `json:"files,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ComparisonResult joins both providers' attempts at the same prompt.
type ComparisonResult struct {
	Success        bool                         `json:"success"`
	OriginalPrompt string                       `json:"original_prompt"`
	WebsiteType    string                       `json:"website_type"`
	Results        map[string]*GenerationResult `json:"results"`
	GeneratedAt    time.Time                    `json:"generated_at"`
}

// Generator turns prompts into website file maps via the configured
// providers.
type Generator struct {
	providers *ProviderSet
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewGenerator(providers *ProviderSet, timeout time.Duration) *Generator {
	return &Generator{
		providers: providers,
		timeout:   timeout,
		logger:    log.With().Str("service", "generator").Logger(),
	}
}

// Generate produces a website with a single provider. The per-call timeout
// bounds how long the vendor may take; a timeout or vendor error is returned
// as a failed result rather than an error.
func (g *Generator) Generate(ctx context.Context, prompt, provider, websiteType string) *GenerationResult {
	completer, err := g.providers.Completer(provider)
	if err != nil {
		return &GenerationResult{Success: false, Provider: provider, Error: err.Error()}
	}

	enhancedPrompt := BuildGenerationPrompt(prompt, websiteType)

	reply, err := g.complete(ctx, completer, provider, enhancedPrompt)
	if err != nil {
		return &GenerationResult{Success: false, Provider: provider, Error: err.Error()}
	}

	files := ParseGeneratedFiles(reply)
	g.logger.Info().
		Str("provider", provider).
		Str("websiteType", websiteType).
		Int("files", len(files)).
		Msg("Website generated")

	return &GenerationResult{
		Success:     true,
		Provider:    provider,
		WebsiteType: websiteType,
		Files:       files,
		Metadata: map[string]any{
			"generated_at":    time.Now().UTC().Format(time.RFC3339),
			"prompt":          prompt,
			"enhanced_prompt": enhancedPrompt,
			"provider":        provider,
			"model":           g.providers.ModelName(provider),
			"website_type":    websiteType,
		},
	}
}

// Compare runs every known provider against the same prompt concurrently and
// joins the results. A provider failing (or having no key configured) shows
// up as a failed entry under its name; it never sinks the comparison.
func (g *Generator) Compare(ctx context.Context, prompt, websiteType string) *ComparisonResult {
	results := make(map[string]*GenerationResult, len(KnownProviders))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	for _, provider := range KnownProviders {
		provider := provider
		group.Go(func() error {
			result := g.Generate(groupCtx, prompt, provider, websiteType)
			mu.Lock()
			results[provider] = result
			mu.Unlock()
			return nil
		})
	}
	// Generate never returns an error; the group is only a join point.
	_ = group.Wait()

	return &ComparisonResult{
		Success:        true,
		OriginalPrompt: prompt,
		WebsiteType:    websiteType,
		Results:        results,
		GeneratedAt:    time.Now().UTC(),
	}
}

func (g *Generator) complete(ctx context.Context, completer Completer, provider, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := completer.Complete(callCtx, SystemPrompt, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error().Str("provider", provider).Dur("timeout", g.timeout).Msg("Provider timed out")
			return "", fmt.Errorf("timeout: %s took too long to respond, please try again", provider)
		}
		g.logger.Error().Err(err).Str("provider", provider).Msg("Provider request failed")
		return "", fmt.Errorf("API error: %v", err)
	}
	return reply, nil
}
