package jobserver

import (
	"context"

	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResumeReadInput is the input of resume_read. Path defaults to the
// configured resume.
type ResumeReadInput struct {
	Path string `json:"path,omitempty"`
}

// ResumeReadOutput is the output of resume_read.
type ResumeReadOutput struct {
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}

func registerResumeRead(server *mcp.Server, cvPath string) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resume_read",
		Description: "Extract the plain text of a PDF resume. Defaults to the configured resume file when no path is given.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ResumeReadInput) (*mcp.CallToolResult, *ResumeReadOutput, error) {
		path := input.Path
		if path == "" {
			path = cvPath
		}
		text, err := jobs.ReadResume(path)
		if err != nil {
			return nil, nil, err
		}
		return nil, &ResumeReadOutput{Text: text, Chars: len(text)}, nil
	})
}
