package index

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider returns fixed vectors per text, or an error.
type fakeProvider struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeProvider) Embed(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float64{1, 0, 0}, nil
}

func TestRetrieve_EmptyIndexReturnsEmptyList(t *testing.T) {
	ix := New(&fakeProvider{})

	results, err := ix.Retrieve(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_RanksBySimilarityDescending(t *testing.T) {
	provider := &fakeProvider{vectors: map[string][]float64{
		"query": {1, 0},
		"close": {1, 0.1},
		"far":   {0, 1},
		"mid":   {1, 1},
	}}
	ix := New(provider)
	require.NoError(t, ix.Add(context.Background(), "far", "far", nil))
	require.NoError(t, ix.Add(context.Background(), "close", "close", nil))
	require.NoError(t, ix.Add(context.Background(), "mid", "mid", nil))

	results, err := ix.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "close", results[0].ID)
	assert.Equal(t, "mid", results[1].ID)
	assert.Equal(t, "far", results[2].ID)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
	assert.GreaterOrEqual(t, results[1].Similarity, results[2].Similarity)
}

func TestRetrieve_TopKNeverExceedsIndexSize(t *testing.T) {
	ix := New(&fakeProvider{})
	require.NoError(t, ix.Add(context.Background(), "a", "a", nil))
	require.NoError(t, ix.Add(context.Background(), "b", "b", nil))

	results, err := ix.Retrieve(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = ix.Retrieve(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRetrieve_EqualSimilarityTieBreaksByInsertionOrder(t *testing.T) {
	// All documents share the query's vector, so similarities are equal.
	ix := New(&fakeProvider{})
	require.NoError(t, ix.Add(context.Background(), "first", "first", nil))
	require.NoError(t, ix.Add(context.Background(), "second", "second", nil))
	require.NoError(t, ix.Add(context.Background(), "third", "third", nil))

	results, err := ix.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
	assert.Equal(t, "third", results[2].ID)
}

func TestAdd_SameIDReplacesDocument(t *testing.T) {
	provider := &fakeProvider{vectors: map[string][]float64{
		"old content": {1, 0},
		"new content": {0, 1},
	}}
	ix := New(provider)
	require.NoError(t, ix.Add(context.Background(), "doc", "old content", nil))
	require.NoError(t, ix.Add(context.Background(), "doc", "new content", nil))

	assert.Equal(t, 1, ix.Len())

	results, err := ix.Retrieve(context.Background(), "q", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new content", results[0].Content)
}

func TestAdd_ProviderErrorIsEmbeddingError(t *testing.T) {
	ix := New(&fakeProvider{err: errors.New("provider down")})

	err := ix.Add(context.Background(), "doc", "content", nil)
	require.Error(t, err)

	var embErr *EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.Equal(t, "doc", embErr.ID)
	assert.Equal(t, 0, ix.Len())
}

func TestRetrieve_ProviderErrorIsEmbeddingError(t *testing.T) {
	good := &fakeProvider{}
	ix := New(good)
	require.NoError(t, ix.Add(context.Background(), "doc", "content", nil))

	good.err = errors.New("provider down")
	_, err := ix.Retrieve(context.Background(), "q", 1)

	var embErr *EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.Empty(t, embErr.ID)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 0}, []float64{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// Zero vectors and dimension mismatches define similarity as 0.
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1}, []float64{1, 2}))
}
