package agent

import "github.com/openai/openai-go/v3"

// BuiltinTools returns the tool definitions the loop handles itself, without
// going through the action registry.
func BuiltinTools() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		browserTool("click", "Click the interactive element with the given ID.", map[string]any{
			"id": map[string]any{"type": "integer", "description": "Element ID from the browser state"},
		}, []string{"id"}),
		browserTool("type", "Type text into the input element with the given ID, replacing its current content.", map[string]any{
			"id":   map[string]any{"type": "integer", "description": "Element ID from the browser state"},
			"text": map[string]any{"type": "string", "description": "The text to type"},
		}, []string{"id", "text"}),
		browserTool("press", "Press a special key on the page.", map[string]any{
			"key": map[string]any{"type": "string", "description": "enter, escape, tab, backspace, arrow_down or arrow_up"},
		}, []string{"key"}),
		browserTool("scroll", "Scroll the page to reveal more elements.", map[string]any{
			"direction": map[string]any{"type": "string", "description": "up or down; defaults to down"},
		}, nil),
		browserTool("navigate", "Open a URL in the browser.", map[string]any{
			"url": map[string]any{"type": "string", "description": "Absolute URL to open"},
		}, []string{"url"}),
		browserTool("done", "Finish the task. Call this only when the task is fully complete.", map[string]any{
			"report": map[string]any{"type": "string", "description": "Short summary of what was accomplished"},
		}, []string{"report"}),
	}
}

func browserTool(name, description string, props map[string]any, required []string) openai.ChatCompletionToolUnionParam {
	if required == nil {
		required = []string{}
	}
	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        name,
		Description: openai.String(description),
		Parameters: openai.FunctionParameters{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	})
}
