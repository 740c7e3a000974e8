package ingest

import (
	"context"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// VectorWriter upserts records into the vector store.
type VectorWriter interface {
	Upsert(ctx context.Context, records []domain.Record) error
}
