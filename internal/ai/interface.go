package ai

import (
	"context"
)

// Assistant produces a text reply for a user prompt.
// Implementations must be safe for concurrent use.
type Assistant interface {
	Reply(ctx context.Context, prompt string) (string, error)
}
