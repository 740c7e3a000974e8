package endee

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrIndexNotFound signals that the requested index does not exist (HTTP 404).
var ErrIndexNotFound = errors.New("endee: index not found")

// APIError is a non-2xx response from the Endee API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("endee API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("endee API error %d", e.StatusCode)
}

// parseAPIError extracts a human-readable error from the response body.
// Endee reports errors as {"error": "..."} or {"detail": "..."}.
func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	msg := ""
	if json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Error != "":
			msg = parsed.Error
		case parsed.Detail != "":
			msg = parsed.Detail
		}
	}
	if msg == "" {
		msg = string(body)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// isStatus reports whether err is an *APIError with the given status code.
func isStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
