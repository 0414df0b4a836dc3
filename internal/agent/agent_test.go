package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_easyapply/internal/actions"
	"github.com/anatolykoptev/go_easyapply/internal/engine"
)

// scriptedBrain replays a fixed sequence of step results.
type scriptedBrain struct {
	steps    [][]engine.ToolCall
	errs     []error
	cursor   int
	memory   []string
	recorded []engine.ActionRecord
}

func (b *scriptedBrain) Step(_ context.Context, _ engine.PageState, _ string) ([]engine.ToolCall, error) {
	if b.cursor >= len(b.steps) {
		return nil, errors.New("script exhausted")
	}
	i := b.cursor
	b.cursor++
	if b.errs != nil && b.errs[i] != nil {
		return nil, b.errs[i]
	}
	return b.steps[i], nil
}

func (b *scriptedBrain) Remember(content string) {
	b.memory = append(b.memory, content)
}

func (b *scriptedBrain) RecordAction(call engine.ToolCall, result string) {
	b.recorded = append(b.recorded, engine.ActionRecord{Action: call.Name, Result: result})
}

// fakeBrowser records calls and fails on demand.
type fakeBrowser struct {
	calls    []string
	failNext error
}

func (f *fakeBrowser) do(name string) error {
	f.calls = append(f.calls, name)
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeBrowser) Observe() (engine.PageState, error) {
	return engine.PageState{URL: "https://example.com", Title: "Example", DOMSummary: "[1] <button> [ACTION] Go"}, nil
}
func (f *fakeBrowser) Navigate(string) error  { return f.do("navigate") }
func (f *fakeBrowser) Click(int) error        { return f.do("click") }
func (f *fakeBrowser) Type(int, string) error { return f.do("type") }
func (f *fakeBrowser) PressKey(string) error  { return f.do("press") }
func (f *fakeBrowser) Scroll(string) error    { return f.do("scroll") }

func call(name string, args map[string]any) engine.ToolCall {
	return engine.ToolCall{Name: name, Args: args}
}

func TestAgentDoneTerminates(t *testing.T) {
	brain := &scriptedBrain{steps: [][]engine.ToolCall{
		{call("click", map[string]any{"id": 1})},
		{call("done", map[string]any{"report": "saved 3 jobs"})},
	}}
	browser := &fakeBrowser{}

	a := &Agent{Task: "t", Brain: brain, Browser: browser, MaxSteps: 10}
	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "saved 3 jobs" {
		t.Errorf("report = %q", report)
	}
	if len(browser.calls) != 1 || browser.calls[0] != "click" {
		t.Errorf("browser calls = %v", browser.calls)
	}
}

func TestAgentStepBudget(t *testing.T) {
	steps := make([][]engine.ToolCall, 5)
	for i := range steps {
		steps[i] = []engine.ToolCall{call("scroll", map[string]any{"direction": "down"})}
	}
	brain := &scriptedBrain{steps: steps}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, MaxSteps: 3}
	_, err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "budget") {
		t.Fatalf("expected step budget error, got %v", err)
	}
	if brain.cursor != 3 {
		t.Errorf("expected 3 brain steps, got %d", brain.cursor)
	}
}

func TestAgentErrorResultsRecordedNotRemembered(t *testing.T) {
	brain := &scriptedBrain{steps: [][]engine.ToolCall{
		{call("click", map[string]any{"id": 1})},
		{call("done", map[string]any{"report": "r"})},
	}}
	browser := &fakeBrowser{failNext: errors.New("no element found at index 1")}

	a := &Agent{Task: "t", Brain: brain, Browser: browser, MaxSteps: 10}
	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(brain.recorded) != 1 {
		t.Fatalf("expected 1 recorded action, got %d", len(brain.recorded))
	}
	if !strings.HasPrefix(brain.recorded[0].Result, "Error: ") {
		t.Errorf("result = %q, want error prefix", brain.recorded[0].Result)
	}
	if len(brain.memory) != 0 {
		t.Errorf("error results must never be remembered, got %v", brain.memory)
	}
}

func TestAgentRemembersFlaggedResults(t *testing.T) {
	reg := actions.NewRegistry()
	if err := reg.Register(actions.Action{
		Name: "read_cv",
		Handler: func(_ context.Context, _ map[string]any) actions.Result {
			return actions.Success("CV content: Go developer", true)
		},
	}); err != nil {
		t.Fatal(err)
	}

	brain := &scriptedBrain{steps: [][]engine.ToolCall{
		{call("read_cv", nil)},
		{call("done", map[string]any{"report": "r"})},
	}}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, Actions: reg, MaxSteps: 10}
	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brain.memory) != 1 || brain.memory[0] != "CV content: Go developer" {
		t.Errorf("memory = %v", brain.memory)
	}
}

func TestAgentBrainFailureBound(t *testing.T) {
	brain := &scriptedBrain{
		steps: make([][]engine.ToolCall, 4),
		errs:  []error{errors.New("api down"), errors.New("api down"), errors.New("api down"), nil},
	}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, MaxSteps: 10}
	_, err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "3 times in a row") {
		t.Fatalf("expected repeated-failure error, got %v", err)
	}
}

func TestAgentBrainFailureCounterResets(t *testing.T) {
	brain := &scriptedBrain{
		steps: [][]engine.ToolCall{
			nil,
			{call("scroll", nil)},
			nil,
			nil,
			{call("done", map[string]any{"report": "recovered"})},
		},
		errs: []error{errors.New("flaky"), nil, errors.New("flaky"), errors.New("flaky"), nil},
	}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, MaxSteps: 10}
	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "recovered" {
		t.Errorf("report = %q", report)
	}
}

func TestAgentUnknownAction(t *testing.T) {
	brain := &scriptedBrain{steps: [][]engine.ToolCall{
		{call("teleport", nil)},
		{call("done", map[string]any{"report": "r"})},
	}}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, MaxSteps: 10}
	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brain.recorded) != 1 || !strings.Contains(brain.recorded[0].Result, "unknown action") {
		t.Errorf("recorded = %+v", brain.recorded)
	}
}

func TestAgentEmptyResponseNudges(t *testing.T) {
	brain := &scriptedBrain{steps: [][]engine.ToolCall{
		{},
		{call("done", map[string]any{"report": "r"})},
	}}

	a := &Agent{Task: "t", Brain: brain, Browser: &fakeBrowser{}, MaxSteps: 10}
	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brain.recorded) != 1 || !strings.Contains(brain.recorded[0].Result, "no tool call") {
		t.Errorf("recorded = %+v", brain.recorded)
	}
}
