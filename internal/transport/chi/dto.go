package chi

// errorCode is a machine-readable error identifier in error responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeVectorStoreError       errorCode = "vector_store_error"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type documentInput struct {
	ID   string         `json:"id"`
	Text string         `json:"text"`
	Meta map[string]any `json:"meta,omitempty"`
}

type ingestRequest struct {
	Documents []documentInput `json:"documents"`
}

type ingestResponse struct {
	Status   string `json:"status"`
	Ingested int    `json:"ingested"`
}

type queryRequest struct {
	QueryText string         `json:"query_text"`
	TopK      *int           `json:"top_k,omitempty"`
	Filters   map[string]any `json:"filters,omitempty"`
}

type queryResult struct {
	ID         string         `json:"id"`
	Similarity float64        `json:"similarity"`
	Meta       map[string]any `json:"meta,omitempty"`
}

type queryResponse struct {
	Results []queryResult `json:"results"`
}
