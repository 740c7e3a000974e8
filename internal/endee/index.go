package endee

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// Index is a handle for vector operations on a single named index.
type Index struct {
	client    *Client
	name      string
	dimension int
	spaceType string
}

// Name returns the index name.
func (i *Index) Name() string { return i.name }

// Dimension returns the index vector dimension.
func (i *Index) Dimension() int { return i.dimension }

// SpaceType returns the similarity space of the index.
func (i *Index) SpaceType() string { return i.spaceType }

// vectorPayload is the wire form of one upserted vector.
type vectorPayload struct {
	ID     string         `json:"id"`
	Vector []float32      `json:"vector"`
	Meta   map[string]any `json:"meta,omitempty"`
}

type upsertRequest struct {
	Vectors []vectorPayload `json:"vectors"`
}

// Upsert inserts or overwrites records keyed by ID (last write wins).
func (i *Index) Upsert(ctx context.Context, records []domain.Record) error {
	req := upsertRequest{Vectors: make([]vectorPayload, len(records))}
	for j, r := range records {
		req.Vectors[j] = vectorPayload{ID: r.ID, Vector: r.Vector, Meta: r.Meta}
	}

	path := "/index/" + i.name + "/vector/upsert"
	if err := i.client.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("upsert %d vectors into %q: %w", len(records), i.name, err)
	}
	return nil
}

// filterClause is one equality predicate in Endee's native filter form:
// {"<key>": {"$eq": <value>}}.
type filterClause map[string]map[string]any

type queryRequest struct {
	Vector []float32      `json:"vector"`
	TopK   int            `json:"top_k"`
	Filter []filterClause `json:"filter,omitempty"`
}

type matchPayload struct {
	ID         string         `json:"id"`
	Similarity float64        `json:"similarity"`
	Meta       map[string]any `json:"meta,omitempty"`
}

type queryResponse struct {
	Results []matchPayload `json:"results"`
}

// Query runs a nearest-neighbor search and returns matches ranked by the
// store (descending similarity).
func (i *Index) Query(
	ctx context.Context, vector []float32, topK int, filter domain.Filter,
) ([]domain.Match, error) {
	req := queryRequest{
		Vector: vector,
		TopK:   topK,
		Filter: normalizeFilter(filter),
	}

	var resp queryResponse
	path := "/index/" + i.name + "/search"
	if err := i.client.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("query %q: %w", i.name, err)
	}

	matches := make([]domain.Match, len(resp.Results))
	for j, m := range resp.Results {
		matches[j] = domain.Match{ID: m.ID, Similarity: m.Similarity, Meta: m.Meta}
	}
	return matches, nil
}

// normalizeFilter converts an equality-filter map into Endee's clause list.
// Keys are emitted in sorted order so the wire form is deterministic.
func normalizeFilter(filter domain.Filter) []filterClause {
	if len(filter) == 0 {
		return nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]filterClause, len(keys))
	for j, k := range keys {
		clauses[j] = filterClause{k: {"$eq": filter[k]}}
	}
	return clauses
}
