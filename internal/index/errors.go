package index

import "fmt"

// EmbeddingError indicates the embedding provider failed for a document or
// query. It wraps the provider's underlying error.
type EmbeddingError struct {
	ID    string // document id, empty for query embeddings
	Cause error
}

func (e *EmbeddingError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("embedding failed for document %s: %v", e.ID, e.Cause)
	}
	return fmt.Sprintf("embedding failed for query: %v", e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
