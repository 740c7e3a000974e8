// Package ingest orchestrates document ingestion: batch embedding, snippet
// derivation, and a single upsert into the vector store.
package ingest

import (
	"context"
	"fmt"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// Service handles document ingestion.
type Service struct {
	embed domain.Embedder
	store VectorWriter
}

// New creates an ingest service.
func New(embed domain.Embedder, store VectorWriter) *Service {
	return &Service{embed: embed, store: store}
}

// Ingest embeds documents and upserts them as one batch.
// Documents with IDs already present in the store are overwritten
// (upsert semantics, last write wins). Returns the ingested count.
func (s *Service) Ingest(ctx context.Context, docs []domain.Document) (int, error) {
	if len(docs) == 0 {
		return 0, domain.ErrNoDocuments
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	res, err := s.batchEmbed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}
	if len(res.Embeddings) != len(docs) {
		return 0, fmt.Errorf(
			"expected %d embeddings, got %d: %w",
			len(docs), len(res.Embeddings), domain.ErrEmbeddingProviderError,
		)
	}

	records := make([]domain.Record, len(docs))
	for i, d := range docs {
		records[i] = domain.Record{
			ID:     d.ID,
			Vector: res.Embeddings[i],
			Meta:   domain.MetaWithSnippet(d.Meta, d.Text),
		}
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert documents: %w", err)
	}

	return len(docs), nil
}

// batchEmbed uses the provider's native batch call when it has one and
// falls back to per-text embedding otherwise.
func (s *Service) batchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if batch, ok := s.embed.(domain.BatchEmbedder); ok {
		return batch.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embed, texts)
}
