package endee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/v1", Token: "test-token"}), srv
}

func TestGetIndex_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/index/documents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": "documents", "dimension": 384, "space_type": "cosine",
		})
	}))

	idx, err := client.GetIndex(context.Background(), "documents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name() != "documents" || idx.Dimension() != 384 || idx.SpaceType() != "cosine" {
		t.Errorf("unexpected index handle: %+v", idx)
	}
}

func TestGetIndex_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "index not found"})
	}))

	_, err := client.GetIndex(context.Background(), "missing")
	if !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestGetIndex_ServerErrorIsNotNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))

	_, err := client.GetIndex(context.Background(), "documents")
	if errors.Is(err, ErrIndexNotFound) {
		t.Fatal("a 500 must not be reported as index-not-found")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected APIError 500, got %v", err)
	}
	if apiErr.Message != "boom" {
		t.Errorf("expected error body decoded, got %q", apiErr.Message)
	}
}

func TestCreateIndex_SendsSpec(t *testing.T) {
	var got IndexSpec
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/index" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode spec: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateIndex(context.Background(), IndexSpec{
		Name: "documents", Dimension: 384, SpaceType: "cosine", Precision: PrecisionINT8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "documents" || got.Dimension != 384 || got.SpaceType != "cosine" || got.Precision != PrecisionINT8 {
		t.Errorf("unexpected spec on the wire: %+v", got)
	}
}

func TestUpsert_SendsVectorsWithMeta(t *testing.T) {
	var got upsertRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/index/documents":
			_ = json.NewEncoder(w).Encode(indexInfo{Name: "documents", Dimension: 2})
		case "/api/v1/index/documents/vector/upsert":
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode upsert: %v", err)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	idx, err := client.GetIndex(context.Background(), "documents")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}

	records := []domain.Record{
		{ID: "a", Vector: []float32{1, 0}, Meta: map[string]any{"snippet": "hello"}},
	}
	if err := idx.Upsert(context.Background(), records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Vectors) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(got.Vectors))
	}
	if got.Vectors[0].ID != "a" || got.Vectors[0].Meta["snippet"] != "hello" {
		t.Errorf("unexpected payload: %+v", got.Vectors[0])
	}
}

func TestQuery_SendsTopKAndFilter(t *testing.T) {
	var got queryRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/index/documents":
			_ = json.NewEncoder(w).Encode(indexInfo{Name: "documents", Dimension: 2})
		case "/api/v1/index/documents/search":
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode query: %v", err)
			}
			_ = json.NewEncoder(w).Encode(queryResponse{Results: []matchPayload{
				{ID: "a", Similarity: 0.92, Meta: map[string]any{"snippet": "hello"}},
				{ID: "b", Similarity: 0.55},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	idx, err := client.GetIndex(context.Background(), "documents")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}

	matches, err := idx.Query(context.Background(), []float32{1, 0}, 5, domain.Filter{"source": "a.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TopK != 5 {
		t.Errorf("expected top_k 5, got %d", got.TopK)
	}
	if len(got.Filter) != 1 {
		t.Fatalf("expected 1 filter clause, got %d", len(got.Filter))
	}
	eq, ok := got.Filter[0]["source"]
	if !ok || eq["$eq"] != "a.md" {
		t.Errorf("expected equality clause on source, got %v", got.Filter[0])
	}

	if len(matches) != 2 || matches[0].ID != "a" || matches[1].ID != "b" {
		t.Errorf("expected store ranking preserved, got %v", matches)
	}
	if matches[0].Similarity != 0.92 {
		t.Errorf("unexpected similarity: %v", matches[0].Similarity)
	}
}

func TestQuery_OmitsEmptyFilter(t *testing.T) {
	var rawBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/index/documents":
			_ = json.NewEncoder(w).Encode(indexInfo{Name: "documents", Dimension: 2})
		case "/api/v1/index/documents/search":
			_ = json.NewDecoder(r.Body).Decode(&rawBody)
			_ = json.NewEncoder(w).Encode(queryResponse{})
		}
	}))

	idx, err := client.GetIndex(context.Background(), "documents")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	if _, err := idx.Query(context.Background(), []float32{1, 0}, 5, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rawBody["filter"]; ok {
		t.Error("expected filter to be omitted when empty")
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
