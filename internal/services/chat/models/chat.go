package models

// Mode selects which avatar persona is answering.
const (
	ModeClinic = "clinic"
	ModeRehab  = "rehab"
)

// Message represents a single message in a conversation history
type Message struct {
	Role    string `json:"role" validate:"oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatTurn is one inbound chat request from the widget. It is immutable
// and scoped to a single resolution call.
type ChatTurn struct {
	Mode      string    `json:"mode" validate:"oneof=clinic rehab"`
	Message   string    `json:"message" validate:"required"`
	History   []Message `json:"history" validate:"dive"`
	SessionID string    `json:"session_id,omitempty"`
}

// Safety carries the moderation flags attached to a response. When the
// upstream does not supply them both default to false.
type Safety struct {
	IsEmergency     bool `json:"is_emergency"`
	RefuseDiagnosis bool `json:"refuse_diagnosis"`
}

// ResolvedResponse is the single response contract every source (cache,
// brain, fallback) is normalised into.
type ResolvedResponse struct {
	Response string                 `json:"response"`
	Chunks   []string               `json:"chunks"`
	Safety   Safety                 `json:"safety"`
	Meta     map[string]interface{} `json:"meta"`
}

// Response sources recorded under Meta["source"].
const (
	SourceCache    = "cache"
	SourceBrain    = "brain"
	SourceFallback = "fallback"
)
