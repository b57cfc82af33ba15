package models

// BrainResult is the normalised shape of a single-shot brain API reply.
// Safety and Meta are optional on the wire; the resolver fills defaults.
type BrainResult struct {
	Response string                 `json:"response"`
	Safety   *Safety                `json:"safety,omitempty"`
	Meta     map[string]interface{} `json:"meta,omitempty"`
}
