package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError indicates an external model call exceeded its per-call
// deadline. Callers treat it like any other recoverable backend failure,
// but can distinguish it for logging and retry decisions.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("llm %s timed out after %s", e.Op, e.Timeout)
}

// BoundedClient wraps a Client so every call carries a per-call timeout.
// A stalled provider call then fails with a typed TimeoutError instead of
// blocking the session indefinitely.
type BoundedClient struct {
	inner   Client
	timeout time.Duration
}

// NewBoundedClient wraps client with the given per-call timeout. A
// non-positive timeout disables bounding.
func NewBoundedClient(client Client, timeout time.Duration) *BoundedClient {
	return &BoundedClient{inner: client, timeout: timeout}
}

func (b *BoundedClient) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *BoundedClient) wrap(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Timeout: b.timeout}
	}
	return err
}

// GenerateContent implements Client.
func (b *BoundedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	out, err := b.inner.GenerateContent(ctx, prompt, tier)
	return out, b.wrap("generate", err)
}

// GenerateJSON implements Client.
func (b *BoundedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	out, err := b.inner.GenerateJSON(ctx, prompt, tier)
	return out, b.wrap("generate", err)
}

// Embed implements Client.
func (b *BoundedClient) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	out, err := b.inner.Embed(ctx, text)
	return out, b.wrap("embed", err)
}

// GetModel implements Client.
func (b *BoundedClient) GetModel(tier ModelTier) string {
	return b.inner.GetModel(tier)
}

// Close implements Client.
func (b *BoundedClient) Close() error {
	return b.inner.Close()
}
