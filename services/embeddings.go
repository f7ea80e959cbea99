package services

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// EmbedPrompt computes the embedding vector for a generation prompt. Returns
// nil without error when no embedder is configured; related-project search
// is simply unavailable then.
func (s *ProviderSet) EmbedPrompt(ctx context.Context, prompt string) (*pgvector.Vector, error) {
	if s.embedder == nil {
		return nil, nil
	}

	values, err := s.embedder.EmbedQuery(ctx, prompt)
	if err != nil {
		return nil, err
	}

	vector := pgvector.NewVector(values)
	return &vector, nil
}
