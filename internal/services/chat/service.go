package chat

import (
	"context"

	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
)

// BrainClient talks to the remote brain API.
type BrainClient interface {
	// Query performs a single-shot resolution of one chat turn.
	Query(ctx context.Context, turn models.ChatTurn) (*models.BrainResult, error)

	// Stream consumes the brain's incremental text protocol, invoking
	// onText for every decoded fragment in arrival order. It returns nil
	// once the upstream signals completion and an error on any I/O or
	// protocol failure, including onText rejecting a fragment.
	Stream(ctx context.Context, turn models.ChatTurn, onText func(text string) error) error
}

// FallbackClient produces a bounded completion when the brain API is
// unavailable or overridden.
type FallbackClient interface {
	Complete(ctx context.Context, systemPrompt string, turn models.ChatTurn) (string, error)
}
