// Package actions defines the named operations exposed to the agent as
// callable tools, and the registry that converts them to LLM tool
// definitions.
package actions

import "fmt"

// Result is the tagged outcome of an action: either content (optionally
// flagged for retention in the agent's memory) or an error message, never
// both. Error results always carry the underlying failure text and are
// never retained in memory.
type Result struct {
	Content         string
	Err             string
	IncludeInMemory bool
}

// Success builds a content result. remember marks it for retention in the
// agent's running memory.
func Success(content string, remember bool) Result {
	return Result{Content: content, IncludeInMemory: remember}
}

// Failure builds an error result.
func Failure(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// OK reports whether the result is the success variant.
func (r Result) OK() bool { return r.Err == "" }

// String renders the result the way it is recorded in agent history.
func (r Result) String() string {
	if !r.OK() {
		return "Error: " + r.Err
	}
	if r.Content == "" {
		return "Success"
	}
	return r.Content
}
