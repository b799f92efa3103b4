// Package llm wraps the reasoning engine behind a single interface so
// the rest of the service never depends on a concrete provider.
package llm

import (
	"context"
	"errors"
)

// ErrRateLimited reports that the engine signaled quota exhaustion. It
// is surfaced distinctly so callers can back off instead of retrying
// blindly.
var ErrRateLimited = errors.New("reasoning engine rate limit exceeded")

// Request is one prompt exchange with the engine. APIKey optionally
// overrides the process credential for this call; backends without
// credentials ignore it.
type Request struct {
	System string
	Prompt string
	APIKey string
}

// Client is implemented by reasoning engine backends.
type Client interface {
	// Complete sends the request and returns the raw response text.
	Complete(ctx context.Context, req Request) (string, error)
}
