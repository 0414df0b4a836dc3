package engine

// PageState is a snapshot of the browser handed to the brain on every step:
// where we are and which elements are interactable right now.
type PageState struct {
	URL        string
	Title      string
	DOMSummary string
}

// ToolCall is the brain's intent to invoke one action, parsed from the
// model's tool-call response.
type ToolCall struct {
	Name      string
	Args      map[string]any
	Reasoning string
}

// ActionRecord is one completed step in an agent's history. Args is kept as
// a JSON string — the model reads it back as context and a flat string is
// cheaper than re-marshaling a map every step.
type ActionRecord struct {
	Reasoning string
	Action    string
	Args      string
	Result    string
}
