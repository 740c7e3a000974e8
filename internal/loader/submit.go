package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// ErrConnection signals that the API could not be reached at all,
// as opposed to the request failing with an HTTP error.
var ErrConnection = errors.New("could not connect to the API")

const submitTimeout = 60 * time.Second

type submitDocument struct {
	ID   string         `json:"id"`
	Text string         `json:"text"`
	Meta map[string]any `json:"meta,omitempty"`
}

type submitRequest struct {
	Documents []submitDocument `json:"documents"`
}

type submitResponse struct {
	Status   string `json:"status"`
	Ingested int    `json:"ingested"`
}

// Submit posts all documents as one ingest request and returns the
// ingested count reported by the server.
func Submit(ctx context.Context, apiBase string, docs []domain.Document) (int, error) {
	payload := submitRequest{Documents: make([]submitDocument, len(docs))}
	for i, d := range docs {
		payload.Documents[i] = submitDocument{ID: d.ID, Text: d.Text, Meta: d.Meta}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode ingest payload: %w", err)
	}

	endpoint := strings.TrimRight(apiBase, "/") + "/ingest"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: submitTimeout}
	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return 0, fmt.Errorf("%w: %v", ErrConnection, urlErr.Err)
		}
		return 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("ingest request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode ingest response: %w", err)
	}
	return result.Ingested, nil
}
