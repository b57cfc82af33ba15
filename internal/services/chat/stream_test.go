package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// scriptedBrain replays a fixed sequence of fragments, optionally
// failing afterwards instead of completing.
type scriptedBrain struct {
	fragments []string
	failWith  error
}

func (b *scriptedBrain) Query(ctx context.Context, turn models.ChatTurn) (*models.BrainResult, error) {
	panic("not used")
}

func (b *scriptedBrain) Stream(ctx context.Context, turn models.ChatTurn, onText func(string) error) error {
	for _, fragment := range b.fragments {
		if err := onText(fragment); err != nil {
			return err
		}
	}
	return b.failWith
}

func collectEvents(t *testing.T, events <-chan StreamEvent) []StreamEvent {
	t.Helper()

	var collected []StreamEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, ev)
		case <-timeout:
			t.Fatal("timed out draining stream events")
		}
	}
}

func streamConfig(brainURL string, streaming bool) *config.Config {
	cfg := testConfig(brainURL)
	cfg.EnableStreaming = streaming
	return cfg
}

func TestStreamDisabled(t *testing.T) {
	svc := NewService(streamConfig("http://brain.local", false), &scriptedBrain{}, nil)

	events := collectEvents(t, svc.Stream(context.Background(), models.ChatTurn{
		Mode:    models.ModeClinic,
		Message: "hello",
	}))

	// Exactly one error event, then the channel closes.
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
	assert.Equal(t, "Streaming not enabled", events[0].Message)
}

func TestStreamNoBrainConfigured(t *testing.T) {
	svc := NewService(streamConfig("", true), nil, nil)

	events := collectEvents(t, svc.Stream(context.Background(), models.ChatTurn{
		Mode:    models.ModeClinic,
		Message: "hello",
	}))

	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
}

func TestStreamSentencesInOrder(t *testing.T) {
	brain := &scriptedBrain{fragments: []string{"Thanks for asking.", "We offer 50-minute sessions.", "Booking is the best next step."}}
	svc := NewService(streamConfig("http://brain.local", true), brain, nil)

	events := collectEvents(t, svc.Stream(context.Background(), models.ChatTurn{
		Mode:    models.ModeClinic,
		Message: "tell me about sessions",
	}))

	require.Len(t, events, 4)
	assert.Equal(t, StreamEvent{Type: EventSentence, Text: "Thanks for asking."}, events[0])
	assert.Equal(t, StreamEvent{Type: EventSentence, Text: "We offer 50-minute sessions."}, events[1])
	assert.Equal(t, StreamEvent{Type: EventSentence, Text: "Booking is the best next step."}, events[2])
	assert.Equal(t, StreamEvent{Type: EventDone}, events[3])
}

func TestStreamMidStreamFailure(t *testing.T) {
	brain := &scriptedBrain{
		fragments: []string{"Thanks for asking."},
		failWith:  apperr.New(apperr.Upstream, "Brain stream error: connection reset"),
	}
	svc := NewService(streamConfig("http://brain.local", true), brain, nil)

	events := collectEvents(t, svc.Stream(context.Background(), models.ChatTurn{
		Mode:    models.ModeClinic,
		Message: "tell me about sessions",
	}))

	require.Len(t, events, 2)
	assert.Equal(t, EventSentence, events[0].Type)
	assert.Equal(t, EventError, events[1].Type)
	assert.Contains(t, events[1].Message, "connection reset")
}

func TestStreamConsumerGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	brain := &scriptedBrain{fragments: []string{"One.", "Two.", "Three."}}
	svc := NewService(streamConfig("http://brain.local", true), brain, nil)

	events := svc.Stream(ctx, models.ChatTurn{Mode: models.ModeClinic, Message: "hello"})

	// Take one event, then walk away.
	ev := <-events
	assert.Equal(t, EventSentence, ev.Type)
	cancel()

	// The channel must close without further consumption.
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("stream did not terminate after consumer cancelled")
		}
	}
}
