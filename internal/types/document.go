package types

// Document is a unit of unstructured text stored in the embedding index.
// The embedding is computed at insertion time; re-adding the same ID replaces
// the stored document and its embedding.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float64      `json:"-"`
}

// RetrievedDocument pairs a stored document with its similarity to a query.
type RetrievedDocument struct {
	Document
	Similarity float64 `json:"similarity"`
}
