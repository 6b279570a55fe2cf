// Package ai wraps the external large-language-model service behind a small
// capability interface. One implementation exists per provider; the choice
// is made once at startup from configuration.
package ai

import (
	"context"
	"errors"
	"net"
	"time"
)

// ErrUpstream marks any model-gateway failure: timeouts, transport errors,
// upstream rejections, empty replies. Handlers surface it as a generic
// bad-gateway response without leaking upstream internals.
var ErrUpstream = errors.New("ai upstream failure")

// Message is one turn of conversation context sent to the model.
type Message struct {
	Role    string
	Content string
}

// Completer generates a reply for an assembled prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// retryable reports whether a completion error is worth one more attempt.
// Only transient transport conditions qualify; upstream rejections such as
// auth or quota errors are terminal.
func retryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// completeWithRetry runs fn and retries exactly once on a transient failure.
func completeWithRetry(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	reply, err := fn(ctx)
	if err == nil {
		return reply, nil
	}
	if !retryable(err) || ctx.Err() != nil {
		return "", err
	}

	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return "", err
	}

	return fn(ctx)
}
