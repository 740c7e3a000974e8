package search

import (
	"context"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// VectorSearcher runs nearest-neighbor queries against the vector store.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, topK int, filter domain.Filter) ([]domain.Match, error)
}
