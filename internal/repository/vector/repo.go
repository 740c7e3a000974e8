// Package vector is the domain-native store on top of the Endee client.
// The index handle is re-resolved on every operation, so the repo carries
// no shared mutable state.
package vector

import (
	"context"
	"errors"
	"fmt"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
	"github.com/RajputKashish/endee-rag-search/internal/endee"
)

// Repo stores and searches document vectors in a single Endee index.
type Repo struct {
	client    *endee.Client
	indexName string
	dimension int
	spaceType string
}

// New creates a vector repository bound to one index.
func New(client *endee.Client, indexName string, dimension int, spaceType string) *Repo {
	return &Repo{
		client:    client,
		indexName: indexName,
		dimension: dimension,
		spaceType: spaceType,
	}
}

// Fetch checks that the target index exists.
// Returns domain.ErrIndexNotFound when it does not.
func (r *Repo) Fetch(ctx context.Context) error {
	if _, err := r.client.GetIndex(ctx, r.indexName); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// Create creates the target index with the configured dimension and
// similarity space, using reduced-precision (int8) vector storage.
func (r *Repo) Create(ctx context.Context) error {
	err := r.client.CreateIndex(ctx, endee.IndexSpec{
		Name:      r.indexName,
		Dimension: r.dimension,
		SpaceType: r.spaceType,
		Precision: endee.PrecisionINT8,
	})
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// Upsert writes records as a single batch (last write wins per ID).
func (r *Repo) Upsert(ctx context.Context, records []domain.Record) error {
	idx, err := r.client.GetIndex(ctx, r.indexName)
	if err != nil {
		return wrapStoreErr(err)
	}
	if err := idx.Upsert(ctx, records); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// Search runs a nearest-neighbor query and returns store-ranked matches.
func (r *Repo) Search(
	ctx context.Context, vector []float32, topK int, filter domain.Filter,
) ([]domain.Match, error) {
	idx, err := r.client.GetIndex(ctx, r.indexName)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	matches, err := idx.Query(ctx, vector, topK, filter)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return matches, nil
}

// Ping checks Endee availability.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// wrapStoreErr maps wire-level errors onto domain sentinels.
func wrapStoreErr(err error) error {
	if errors.Is(err, endee.ErrIndexNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrIndexNotFound, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrVectorStoreError, err)
}
