package chat

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
)

// StreamEvent is the wire unit emitted over the SSE chat surface.
type StreamEvent struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	EventSentence = "sentence"
	EventDone     = "done"
	EventError    = "error"
)

// Stream resolves one chat turn over the brain's incremental protocol,
// emitting events in upstream order. The sequence is lazy, finite and
// non-restartable: it ends with exactly one done or error event, after
// which the channel is closed and the upstream connection released.
//
// Streaming has no fallback path: when streaming is disabled or no brain
// endpoint is configured, the sequence is a single error event.
func (s *Service) Stream(ctx context.Context, turn models.ChatTurn) <-chan StreamEvent {
	events := make(chan StreamEvent)

	go func() {
		defer close(events)

		if !s.cfg.EnableStreaming || !s.cfg.BrainConfigured() || s.brain == nil {
			emit(ctx, events, StreamEvent{Type: EventError, Message: "Streaming not enabled"})
			return
		}

		err := s.brain.Stream(ctx, turn, func(text string) error {
			if !emit(ctx, events, StreamEvent{Type: EventSentence, Text: text}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			log.Error().Err(err).Msg("Brain stream failed")
			emit(ctx, events, StreamEvent{Type: EventError, Message: err.Error()})
			return
		}

		emit(ctx, events, StreamEvent{Type: EventDone})
	}()

	return events
}

// emit delivers ev unless the consumer has gone away.
func emit(ctx context.Context, events chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
