package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// systemPrompt frames the model as a job-application agent. Action
// descriptions and parameters are carried by the tool definitions, not here.
const systemPrompt = `You are an autonomous browser agent that applies to jobs on LinkedIn.

Protocol per step:
1. Read the current browser state (URL, title, interactive elements).
2. Decide the next action and invoke it as a tool call.
3. When the task is fully done, call "done" with a short report.

Rules:
- Element IDs are the numbers in square brackets and change after every page change.
- An action that navigates (login, search, clicking a job link) must be the only or the last tool call in your response.
- Action results marked as errors describe what went wrong; pick a different element, selector index, or approach instead of repeating the same call.
- Never announce completion in plain text. Only the "done" tool ends the task.`

// LLMClient is the production brain: an OpenAI-compatible chat-completions
// client with tool calling. It owns the per-agent conversation state (task,
// action history, retained memory), so every agent gets its own instance.
type LLMClient struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
	tools       []openai.ChatCompletionToolUnionParam

	task    string
	history []ActionRecord
	memory  []string
}

// NewLLMClient builds a brain from engine config. The tool list is fixed at
// construction: the registered actions plus the built-in browser tools.
func NewLLMClient(c *Config, tools []openai.ChatCompletionToolUnionParam) *LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(c.LLMAPIKey)}
	if c.LLMAPIBase != "" {
		opts = append(opts, option.WithBaseURL(c.LLMAPIBase))
	}
	client := openai.NewClient(opts...)
	return &LLMClient{
		client:      &client,
		model:       c.LLMModel,
		temperature: c.LLMTemperature,
		maxTokens:   c.LLMMaxTokens,
		tools:       tools,
	}
}

// Remember stores content that successful actions flagged for retention
// (login confirmation, resume text). It is replayed on every step.
func (c *LLMClient) Remember(content string) {
	c.memory = append(c.memory, content)
}

// RecordAction appends a completed step to the history.
func (c *LLMClient) RecordAction(call ToolCall, result string) {
	args, _ := json.Marshal(call.Args)
	c.history = append(c.history, ActionRecord{
		Reasoning: call.Reasoning,
		Action:    call.Name,
		Args:      string(args),
		Result:    result,
	})
}

// Step sends the current state to the model and returns the tool calls it
// chose. An empty slice means the model produced no actionable response.
func (c *LLMClient) Step(ctx context.Context, state PageState, task string) ([]ToolCall, error) {
	if c.task == "" && task != "" {
		c.task = task
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	if block := memoryBlock(c.memory); block != "" {
		messages = append(messages, openai.UserMessage(block))
	}
	if block := historyBlock(c.history); block != "" {
		messages = append(messages, openai.UserMessage(block))
	}
	messages = append(messages, openai.UserMessage(stateBlock(c.task, state)))

	metrics.LLMCalls.Add(1)
	resp, err := RetryDo(ctx, DefaultRetryConfig, func() (*openai.ChatCompletion, error) {
		return c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:               openai.ChatModel(c.model),
			Messages:            messages,
			Tools:               c.tools,
			Temperature:         openai.Opt[float64](c.temperature),
			MaxCompletionTokens: openai.Opt[int64](int64(c.maxTokens)),
		})
	})
	if err != nil {
		metrics.LLMErrors.Add(1)
		return nil, fmt.Errorf("llm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.LLMErrors.Add(1)
		return nil, fmt.Errorf("llm request: empty choices")
	}

	return ParseToolCalls(resp.Choices[0].Message)
}

// ParseToolCalls converts the SDK message into ToolCalls. The assistant's
// plain-text content, if any, rides along as the reasoning for each call.
func ParseToolCalls(msg openai.ChatCompletionMessage) ([]ToolCall, error) {
	if len(msg.ToolCalls) == 0 {
		return nil, nil
	}

	reasoning := msg.Content
	calls := make([]ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		args := make(map[string]any)
		if raw := stripFences(tc.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("parse arguments for %s: %w", tc.Function.Name, err)
			}
		}
		calls = append(calls, ToolCall{
			Name:      tc.Function.Name,
			Args:      normalizeArgs(args),
			Reasoning: reasoning,
		})
	}
	return calls, nil
}

// normalizeArgs converts JSON float64 element indices to int. Models also
// occasionally quote numbers; both forms are accepted.
func normalizeArgs(args map[string]any) map[string]any {
	for _, key := range []string{"id", "index"} {
		if f, ok := args[key].(float64); ok {
			args[key] = int(f)
		}
	}
	return args
}

// memoryBlock formats retained action content as read-only context.
func memoryBlock(memory []string) string {
	if len(memory) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("RETAINED MEMORY (results you chose to keep):\n")
	for i, m := range memory {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, m)
	}
	return sb.String()
}

// historyBlock formats the action history as JSONL — a log format the model
// reads as context without imitating it in its output.
func historyBlock(history []ActionRecord) string {
	if len(history) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("PREVIOUS ACTIONS LOG (read-only context):\n")
	for i, rec := range history {
		entry, _ := json.Marshal(map[string]any{
			"step":    i + 1,
			"thought": rec.Reasoning,
			"action":  rec.Action,
			"args":    rec.Args,
			"result":  rec.Result,
		})
		sb.Write(entry)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stateBlock formats the task and current page snapshot.
func stateBlock(task string, state PageState) string {
	return fmt.Sprintf(
		"CURRENT TASK: %s\n\nCURRENT BROWSER STATE:\nURL: %s\nTitle: %s\n\nINTERACTIVE ELEMENTS:\n%s",
		task, state.URL, state.Title, state.DOMSummary,
	)
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
