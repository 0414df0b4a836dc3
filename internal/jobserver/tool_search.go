package jobserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JobSearchAPIInput is the input of job_search_api.
type JobSearchAPIInput struct {
	Query      string `json:"query"`
	Location   string `json:"location,omitempty"`
	Experience string `json:"experience,omitempty"` // internship, entry, associate, mid-senior, director, executive
	JobType    string `json:"job_type,omitempty"`   // full-time, part-time, contract, temporary, internship, volunteer
	Remote     string `json:"remote,omitempty"`     // onsite, hybrid, remote
	TimeRange  string `json:"time_range,omitempty"` // day, week, month
	EasyApply  bool   `json:"easy_apply,omitempty"`
}

// JobSearchAPIOutput is the output of job_search_api.
type JobSearchAPIOutput struct {
	Listings []jobs.Listing `json:"listings"`
	Total    int            `json:"total"`
}

func registerJobSearchAPI(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_search_api",
		Description: "Search LinkedIn job listings via the Guest API. Returns title, company, location, posting URL and job ID per listing. Supports filters for experience level, job type, remote/onsite, time range, and Easy Apply.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input JobSearchAPIInput) (*mcp.CallToolResult, *JobSearchAPIOutput, error) {
		if input.Query == "" {
			return nil, nil, errors.New("query is required")
		}
		listings, err := jobs.SearchListings(ctx, input.Query, jobs.SearchFilters{
			Location:   input.Location,
			Experience: input.Experience,
			JobType:    input.JobType,
			Remote:     input.Remote,
			TimeRange:  input.TimeRange,
			EasyApply:  input.EasyApply,
		})
		if err != nil {
			return nil, nil, err
		}
		if listings == nil {
			listings = []jobs.Listing{}
		}
		return nil, &JobSearchAPIOutput{Listings: listings, Total: len(listings)}, nil
	})
}
