// Package agent runs the observe, think, act loop: snapshot the page, ask
// the brain for tool calls, execute them, record the results.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_easyapply/internal/actions"
	"github.com/anatolykoptev/go_easyapply/internal/engine"
)

// Browser is the surface the loop needs from the shared session.
type Browser interface {
	Observe() (engine.PageState, error)
	Navigate(url string) error
	Click(id int) error
	Type(id int, text string) error
	PressKey(name string) error
	Scroll(direction string) error
}

// Brain decides the next tool calls from the current state. Implementations
// carry their own conversation state, so one brain serves one agent.
type Brain interface {
	Step(ctx context.Context, state engine.PageState, task string) ([]engine.ToolCall, error)
	Remember(content string)
	RecordAction(call engine.ToolCall, result string)
}

// Invoker dispatches registered (non-builtin) actions.
type Invoker interface {
	Has(name string) bool
	Invoke(ctx context.Context, name string, args map[string]any) actions.Result
}

// maxBrainFailures bounds consecutive failed model calls before giving up.
const maxBrainFailures = 3

// Agent is one task run over the shared browser.
type Agent struct {
	Task     string
	Brain    Brain
	Browser  Browser
	Actions  Invoker
	MaxSteps int
}

// Run drives the loop until the brain calls done, the step budget runs out,
// or the model fails repeatedly. It returns the final report from done, or
// an error describing how the run ended.
func (a *Agent) Run(ctx context.Context) (string, error) {
	brainFailures := 0

	for step := 1; step <= a.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		state, err := a.Browser.Observe()
		if err != nil {
			return "", fmt.Errorf("step %d: observe: %w", step, err)
		}

		calls, err := a.Brain.Step(ctx, state, a.Task)
		if err != nil {
			brainFailures++
			slog.Warn("brain step failed", "step", step, "failures", brainFailures, "error", err)
			if brainFailures >= maxBrainFailures {
				return "", fmt.Errorf("step %d: brain failed %d times in a row: %w", step, brainFailures, err)
			}
			continue
		}
		brainFailures = 0

		if len(calls) == 0 {
			a.Brain.RecordAction(engine.ToolCall{Name: "none"},
				"Error: no tool call produced. Respond with a tool call, or call done if the task is complete.")
			continue
		}

		for _, call := range calls {
			if call.Name == "done" {
				report := argString(call.Args, "report")
				slog.Info("agent done", "steps", step, "report", truncate(report, 200))
				return report, nil
			}

			result := a.execute(ctx, call)
			slog.Info("action executed",
				"step", step, "action", call.Name, "ok", result.OK(), "result", truncate(result.String(), 120))

			a.Brain.RecordAction(call, result.String())
			if result.OK() && result.IncludeInMemory {
				a.Brain.Remember(result.Content)
			}
		}
	}

	return "", fmt.Errorf("step budget of %d exhausted before done was called", a.MaxSteps)
}

// execute routes one tool call to the browser builtins or the registry.
func (a *Agent) execute(ctx context.Context, call engine.ToolCall) actions.Result {
	switch call.Name {
	case "click":
		id, err := argInt(call.Args, "id")
		if err != nil {
			return actions.Failure("click: %v", err)
		}
		if err := a.Browser.Click(id); err != nil {
			return actions.Failure("%v", err)
		}
		return actions.Success(fmt.Sprintf("Clicked element %d", id), false)

	case "type":
		id, err := argInt(call.Args, "id")
		if err != nil {
			return actions.Failure("type: %v", err)
		}
		text := argString(call.Args, "text")
		if err := a.Browser.Type(id, text); err != nil {
			return actions.Failure("%v", err)
		}
		return actions.Success(fmt.Sprintf("Typed %q into element %d", text, id), false)

	case "press":
		key := argString(call.Args, "key")
		if err := a.Browser.PressKey(key); err != nil {
			return actions.Failure("%v", err)
		}
		return actions.Success(fmt.Sprintf("Pressed %s", key), false)

	case "scroll":
		direction := argString(call.Args, "direction")
		if direction == "" {
			direction = "down"
		}
		if err := a.Browser.Scroll(direction); err != nil {
			return actions.Failure("%v", err)
		}
		return actions.Success(fmt.Sprintf("Scrolled %s", direction), false)

	case "navigate":
		url := argString(call.Args, "url")
		if url == "" {
			return actions.Failure("navigate: url is required")
		}
		if err := a.Browser.Navigate(url); err != nil {
			return actions.Failure("%v", err)
		}
		return actions.Success(fmt.Sprintf("Navigated to %s", url), false)
	}

	if a.Actions != nil && a.Actions.Has(call.Name) {
		return a.Actions.Invoke(ctx, call.Name, call.Args)
	}
	return actions.Failure("unknown action %q", call.Name)
}

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("missing required argument %q", key)
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T", key, v)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
