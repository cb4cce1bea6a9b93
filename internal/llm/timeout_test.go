package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowClient blocks until its context is done.
type slowClient struct{}

func (s *slowClient) GenerateContent(ctx context.Context, _ string, _ ModelTier) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *slowClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *slowClient) Embed(ctx context.Context, _ string) ([]float64, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *slowClient) GetModel(ModelTier) string { return "slow" }
func (s *slowClient) Close() error              { return nil }

func TestBoundedClient_TimesOutWithTypedError(t *testing.T) {
	client := NewBoundedClient(&slowClient{}, 10*time.Millisecond)

	_, err := client.GenerateContent(context.Background(), "prompt", TierLite)
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "generate", timeoutErr.Op)
}

func TestBoundedClient_EmbedTimesOut(t *testing.T) {
	client := NewBoundedClient(&slowClient{}, 10*time.Millisecond)

	_, err := client.Embed(context.Background(), "text")

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "embed", timeoutErr.Op)
}

func TestBoundedClient_CallerCancellationPropagates(t *testing.T) {
	client := NewBoundedClient(&slowClient{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateJSON(ctx, "prompt", TierLite)
	require.Error(t, err)

	// Caller cancellation is not a timeout.
	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
	assert.ErrorIs(t, err, context.Canceled)
}
