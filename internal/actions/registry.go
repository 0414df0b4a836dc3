package actions

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_easyapply/internal/engine"
	"github.com/openai/openai-go/v3"
)

// HandlerFunc executes one action. Handlers catch their own failures and
// return them as error results; only panics and programmer errors escape.
type HandlerFunc func(ctx context.Context, args map[string]any) Result

// Action is a named operation exposed to the agent.
type Action struct {
	Name        string
	Description string
	Params      map[string]any // JSON-schema properties
	Required    []string
	Handler     HandlerFunc
}

// Registry holds the registered actions in registration order.
type Registry struct {
	order  []string
	byName map[string]Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Action)}
}

// Register adds an action. Duplicate names are a programming error.
func (r *Registry) Register(a Action) error {
	if a.Name == "" || a.Handler == nil {
		return fmt.Errorf("register action: name and handler are required")
	}
	if _, exists := r.byName[a.Name]; exists {
		return fmt.Errorf("register action: duplicate name %q", a.Name)
	}
	r.byName[a.Name] = a
	r.order = append(r.order, a.Name)
	return nil
}

// Has reports whether an action with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns the registered action names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Invoke runs the named action. Unknown names come back as error results —
// the model sometimes invents tool names, and the agent should see that as
// feedback rather than crash.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) Result {
	a, ok := r.byName[name]
	if !ok {
		return Failure("unknown action %q", name)
	}

	engine.IncrActionCalls()
	result := a.Handler(ctx, args)
	if !result.OK() {
		engine.IncrActionErrors()
	}
	return result
}

// Tools converts the registry to OpenAI tool definitions, in registration
// order.
func (r *Registry) Tools() []openai.ChatCompletionToolUnionParam {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		a := r.byName[name]
		params := a.Params
		if params == nil {
			params = map[string]any{}
		}
		tools = append(tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        a.Name,
			Description: openai.String(a.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": params,
				"required":   a.Required,
			},
		}))
	}
	return tools
}
