package domain

// Record is a stored vector with its metadata, keyed by document ID.
// Ownership transfers to the vector store on upsert; the service never
// persists vectors itself.
type Record struct {
	ID     string
	Vector []float32
	Meta   map[string]any
}

// Match is a single nearest-neighbor hit, ranked by the vector store.
type Match struct {
	ID         string
	Similarity float64
	Meta       map[string]any
}

// Filter is a conjunction of equality predicates on metadata keys.
// Each key must match its value exactly; there are no range or OR predicates.
type Filter map[string]any
