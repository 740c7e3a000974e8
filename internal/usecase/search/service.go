// Package search orchestrates semantic queries: one embedding call, one
// KNN search, store ranking returned untouched.
package search

import (
	"context"
	"fmt"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// Service handles semantic search queries.
type Service struct {
	embed domain.Embedder
	store VectorSearcher
}

// New creates a search service.
func New(embed domain.Embedder, store VectorSearcher) *Service {
	return &Service{embed: embed, store: store}
}

// Query embeds the query text once and returns the store's ranked matches.
// No local re-ranking and no result caching. topK bounds are enforced at
// the transport layer before this method is reached.
func (s *Service) Query(
	ctx context.Context, queryText string, topK int, filter domain.Filter,
) ([]domain.Match, error) {
	res, err := s.embed.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.store.Search(ctx, res.Embedding, topK, filter)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return matches, nil
}
