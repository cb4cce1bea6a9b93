// Package index provides an in-memory vector store for semantic retrieval.
// Documents are embedded at insertion time via an injected provider and
// ranked against queries by cosine similarity.
package index

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/jonathan/interview-coach/internal/types"
)

// Provider computes fixed-dimensionality embedding vectors for text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Index is an in-memory embedding store. Reads may run concurrently;
// writes are exclusive. It is not persisted across restarts.
type Index struct {
	mu       sync.RWMutex
	provider Provider
	docs     []types.Document
	byID     map[string]int
}

// New creates an empty index backed by the given embedding provider.
func New(provider Provider) *Index {
	return &Index{
		provider: provider,
		byID:     make(map[string]int),
	}
}

// Add embeds content and stores it under id. Re-adding an existing id
// replaces the stored document in place, keeping its original insertion
// position so retrieval tie-breaks stay stable.
func (ix *Index) Add(ctx context.Context, id, content string, metadata map[string]any) error {
	embedding, err := ix.provider.Embed(ctx, content)
	if err != nil {
		return &EmbeddingError{ID: id, Cause: err}
	}

	doc := types.Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		Embedding: embedding,
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if pos, exists := ix.byID[id]; exists {
		ix.docs[pos] = doc
		return nil
	}
	ix.byID[id] = len(ix.docs)
	ix.docs = append(ix.docs, doc)
	return nil
}

// Len returns the number of stored documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Retrieve embeds the query and returns at most topK documents ranked by
// descending cosine similarity. Equal similarities rank by insertion order.
// An empty index yields an empty result, not an error.
func (ix *Index) Retrieve(ctx context.Context, query string, topK int) ([]types.RetrievedDocument, error) {
	ix.mu.RLock()
	empty := len(ix.docs) == 0
	ix.mu.RUnlock()
	if empty || topK <= 0 {
		return []types.RetrievedDocument{}, nil
	}

	queryEmbedding, err := ix.provider.Embed(ctx, query)
	if err != nil {
		return nil, &EmbeddingError{Cause: err}
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]types.RetrievedDocument, 0, len(ix.docs))
	for _, doc := range ix.docs {
		results = append(results, types.RetrievedDocument{
			Document:   doc,
			Similarity: CosineSimilarity(queryEmbedding, doc.Embedding),
		})
	}

	// Stable sort keeps insertion order for equal similarities.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// CosineSimilarity is dot(a,b) / (norm(a)*norm(b)). Zero vectors and
// mismatched dimensions yield 0 rather than dividing by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
