package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/types"
)

type stubBackend struct {
	drafts   []Draft
	err      error
	calls    int
	lastPrev []string
}

func (s *stubBackend) GenerateQuestions(_ context.Context, _ types.Category, _ Inputs, previous []string, _ int) ([]Draft, error) {
	s.calls++
	s.lastPrev = previous
	return s.drafts, s.err
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestGenerator(backend Backend) *Generator {
	return New(backend, rand.New(rand.NewSource(1)), nil, WithClock(fixedClock()))
}

func TestGenerate_NilBackendUsesTemplateBank(t *testing.T) {
	g := newTestGenerator(nil)

	questions := g.Generate(context.Background(), types.CategoryBehavioral, Inputs{}, 3)
	require.Len(t, questions, 3)
	for _, q := range questions {
		assert.Equal(t, types.SourceTemplate, q.Source)
		assert.Equal(t, types.CategoryBehavioral, q.Category)
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Rubric)
		assert.False(t, q.AskedAt.IsZero())
	}
}

func TestGenerate_BackendErrorFallsBackToTemplates(t *testing.T) {
	backend := &stubBackend{err: errors.New("model unavailable")}
	g := newTestGenerator(backend)

	questions := g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 2)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, backend.calls)
	for _, q := range questions {
		assert.Equal(t, types.SourceTemplate, q.Source)
	}
}

func TestGenerate_BackendDraftsAreTaggedGenerated(t *testing.T) {
	backend := &stubBackend{drafts: []Draft{
		{Text: "Explain how you would design a rate limiter.", Rubric: "Covers token buckets and tradeoffs.", SkillTag: "system design"},
		{Text: "How does garbage collection affect latency?", Rubric: "Understands GC pauses."},
	}}
	g := newTestGenerator(backend)

	questions := g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 2)
	require.Len(t, questions, 2)
	assert.Equal(t, types.SourceGenerated, questions[0].Source)
	assert.Equal(t, "Explain how you would design a rate limiter.", questions[0].Text)
	assert.Equal(t, "system design", questions[0].SkillTag)
}

func TestGenerate_ShortBackendResponseToppedUpFromTemplates(t *testing.T) {
	backend := &stubBackend{drafts: []Draft{
		{Text: "Walk me through a recent debugging session."},
	}}
	g := newTestGenerator(backend)

	questions := g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 3)
	require.Len(t, questions, 3)
	assert.Equal(t, types.SourceGenerated, questions[0].Source)
	assert.Equal(t, types.SourceTemplate, questions[1].Source)
	assert.Equal(t, types.SourceTemplate, questions[2].Source)
}

func TestGenerate_NoVerbatimRepeatsUntilBankExhausted(t *testing.T) {
	g := newTestGenerator(nil)
	bankSize := len(templateBanks[types.CategoryCulture])

	var texts []string
	for i := 0; i < bankSize; i++ {
		qs := g.Generate(context.Background(), types.CategoryCulture, Inputs{}, 1)
		require.Len(t, qs, 1)
		texts = append(texts, qs[0].Text)
	}

	seen := make(map[string]bool)
	for _, text := range texts {
		assert.False(t, seen[text], "question repeated before bank exhausted: %q", text)
		seen[text] = true
	}

	// The bank is spent; further draws sample with replacement rather
	// than returning nothing.
	qs := g.Generate(context.Background(), types.CategoryCulture, Inputs{}, 2)
	assert.Len(t, qs, 2)
}

func TestGenerate_DuplicateBackendDraftsSkipped(t *testing.T) {
	backend := &stubBackend{drafts: []Draft{
		{Text: "What excites you about distributed systems?"},
	}}
	g := newTestGenerator(backend)

	first := g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 1)
	require.Len(t, first, 1)
	assert.Equal(t, types.SourceGenerated, first[0].Source)

	// Backend returns the same draft again; the generator must not emit
	// it twice and tops up from the bank instead.
	second := g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Text, second[0].Text)
	assert.Equal(t, types.SourceTemplate, second[0].Source)
	assert.NotEmpty(t, backend.lastPrev)
}

func TestGenerate_DistinctIDsForEveryQuestion(t *testing.T) {
	g := newTestGenerator(nil)

	ids := make(map[string]bool)
	for _, c := range types.CategoryOrder {
		for _, q := range g.Generate(context.Background(), c, Inputs{}, 2) {
			assert.False(t, ids[q.ID], "duplicate question id")
			ids[q.ID] = true
		}
	}
}

func TestGenerate_SeededSamplingIsReproducible(t *testing.T) {
	draw := func() []string {
		g := New(nil, rand.New(rand.NewSource(42)), nil, WithClock(fixedClock()))
		var texts []string
		for _, q := range g.Generate(context.Background(), types.CategoryBehavioral, Inputs{}, 3) {
			texts = append(texts, q.Text)
		}
		return texts
	}

	assert.Equal(t, draw(), draw())
}

func TestGenerate_NonPositiveCountReturnsNothing(t *testing.T) {
	backend := &stubBackend{drafts: []Draft{{Text: "unused"}}}
	g := newTestGenerator(backend)

	assert.Empty(t, g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, 0))
	assert.Empty(t, g.Generate(context.Background(), types.CategoryTechnical, Inputs{}, -1))
	assert.Zero(t, backend.calls)
}

func ExampleGenerator_Generate() {
	g := New(nil, rand.New(rand.NewSource(7)), nil)
	qs := g.Generate(context.Background(), types.CategoryIceBreaker, Inputs{}, 1)
	fmt.Println(len(qs), qs[0].Category, qs[0].Source)
	// Output: 1 ice_breaker template
}
