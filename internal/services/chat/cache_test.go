package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCached(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantPrefix string
		wantHit    bool
	}{
		{
			name:       "Pricing keyword",
			message:    "How much does a session cost?",
			wantPrefix: "Our physiotherapy sessions are £75",
			wantHit:    true,
		},
		{
			name:       "Pricing is case-insensitive",
			message:    "WHAT IS THE FEE",
			wantPrefix: "Our physiotherapy sessions are £75",
			wantHit:    true,
		},
		{
			name:       "Hours keyword",
			message:    "what are your opening times",
			wantPrefix: "We're open Monday to Friday",
			wantHit:    true,
		},
		{
			name:       "Locations keyword",
			message:    "where is the clinic?",
			wantPrefix: "We have two locations",
			wantHit:    true,
		},
		{
			name:       "Cancellation keyword",
			message:    "I need to reschedule my appointment",
			wantPrefix: "We have a 24-hour cancellation policy",
			wantHit:    true,
		},
		{
			name:       "Insurance keyword",
			message:    "do you take bupa",
			wantPrefix: "We operate on a self-pay model",
			wantHit:    true,
		},
		{
			name:    "No keyword",
			message: "tell me about shoulder exercises",
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, hit := MatchCached(tt.message)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.True(t, strings.HasPrefix(answer, tt.wantPrefix),
					"answer %q should start with %q", answer, tt.wantPrefix)
			} else {
				assert.Empty(t, answer)
			}
		})
	}
}

func TestMatchCachedPriorityOrder(t *testing.T) {
	// Pricing is declared before hours, so a message matching both
	// resolves to the pricing answer.
	answer, hit := MatchCached("what's the cost and your hours?")
	assert.True(t, hit)
	assert.True(t, strings.HasPrefix(answer, "Our physiotherapy sessions are £75"))

	// Insurance mentioning price still routes to pricing by order.
	answer, hit = MatchCached("is insurance included in the price?")
	assert.True(t, hit)
	assert.True(t, strings.HasPrefix(answer, "Our physiotherapy sessions are £75"))
}
