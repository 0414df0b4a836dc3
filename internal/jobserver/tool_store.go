package jobserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JobStoreSaveOutput is the output of job_store_save.
type JobStoreSaveOutput struct {
	Message string `json:"message"`
}

// JobStoreReadInput is the (empty) input of job_store_read.
type JobStoreReadInput struct{}

// JobStoreReadOutput is the output of job_store_read.
type JobStoreReadOutput struct {
	Content string `json:"content"`
}

func registerJobStoreSave(server *mcp.Server, st *jobs.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_store_save",
		Description: "Append a job to the CSV job store. Columns: title, company, link, salary, location. The store is append-only and does not deduplicate.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input jobs.Job) (*mcp.CallToolResult, *JobStoreSaveOutput, error) {
		if input.Title == "" || input.Link == "" || input.Company == "" {
			return nil, nil, errors.New("title, link and company are required")
		}
		if err := st.Append(input); err != nil {
			return nil, nil, err
		}
		return nil, &JobStoreSaveOutput{
			Message: fmt.Sprintf("Saved '%s' at '%s' to %s", input.Title, input.Company, st.Path()),
		}, nil
	})
}

func registerJobStoreRead(server *mcp.Server, st *jobs.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_store_read",
		Description: "Read the full CSV job store. Fails if no job has been saved yet.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ JobStoreReadInput) (*mcp.CallToolResult, *JobStoreReadOutput, error) {
		content, err := st.ReadAll()
		if err != nil {
			return nil, nil, err
		}
		return nil, &JobStoreReadOutput{Content: content}, nil
	})
}
