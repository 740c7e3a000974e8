// Package endee is a wire-level HTTP client for the Endee vector database.
// It mirrors the Endee SDK surface: get/create index, then upsert and
// query through an index handle.
package endee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the Endee REST API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Config holds Endee connection settings.
type Config struct {
	BaseURL string
	Token   string // optional bearer token
	Timeout time.Duration
}

// NewClient creates an Endee client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// IndexSpec describes an index to create.
type IndexSpec struct {
	Name      string    `json:"name"`
	Dimension int       `json:"dimension"`
	SpaceType string    `json:"space_type"`
	Precision Precision `json:"precision"`
}

// Precision is the vector storage precision of an index.
type Precision string

// Supported storage precisions.
const (
	PrecisionINT8    Precision = "int8"
	PrecisionFloat16 Precision = "float16"
	PrecisionFloat32 Precision = "float32"
)

// indexInfo is the wire representation of index metadata.
type indexInfo struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	SpaceType string `json:"space_type"`
}

// CreateIndex creates a new index.
func (c *Client) CreateIndex(ctx context.Context, spec IndexSpec) error {
	if err := c.do(ctx, http.MethodPost, "/index", spec, nil); err != nil {
		return fmt.Errorf("create index %q: %w", spec.Name, err)
	}
	return nil
}

// GetIndex fetches an index by name and returns a handle for vector
// operations. A missing index yields ErrIndexNotFound.
func (c *Client) GetIndex(ctx context.Context, name string) (*Index, error) {
	var info indexInfo
	err := c.do(ctx, http.MethodGet, "/index/"+name, nil, &info)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("get index %q: %w", name, ErrIndexNotFound)
		}
		return nil, fmt.Errorf("get index %q: %w", name, err)
	}
	return &Index{client: c, name: info.Name, dimension: info.Dimension, spaceType: info.SpaceType}, nil
}

// Ping checks Endee availability.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// do executes one JSON request against the API and decodes the response
// into out (when non-nil). Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
