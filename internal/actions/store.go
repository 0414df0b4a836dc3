package actions

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
)

// NewSaveJobsAction builds the save_jobs action: append one job the agent
// judged a good fit to the CSV store.
func NewSaveJobsAction(st *jobs.Store) Action {
	return Action{
		Name:        "save_jobs",
		Description: "Save a job you found to file. Record every job that fits my background, with your fit score.",
		Params: map[string]any{
			"title":     map[string]any{"type": "string", "description": "Job title"},
			"link":      map[string]any{"type": "string", "description": "URL of the job posting"},
			"company":   map[string]any{"type": "string", "description": "Company name"},
			"fit_score": map[string]any{"type": "number", "description": "Your 0-1 rating of how well the job fits my background"},
			"location":  map[string]any{"type": "string", "description": "Job location, if shown"},
			"salary":    map[string]any{"type": "string", "description": "Salary range, if shown"},
		},
		Required: []string{"title", "link", "company", "fit_score"},
		Handler: func(ctx context.Context, args map[string]any) Result {
			job := jobs.Job{
				Title:    getString(args, "title"),
				Link:     getString(args, "link"),
				Company:  getString(args, "company"),
				FitScore: getFloat(args, "fit_score"),
				Location: getString(args, "location"),
				Salary:   getString(args, "salary"),
			}
			if err := st.Append(job); err != nil {
				return Failure("save job: %v", err)
			}
			slog.Info("job saved", "title", job.Title, "company", job.Company, "fit_score", job.FitScore)
			return Success("Saved job to file", false)
		},
	}
}

// NewReadJobsAction builds the read_jobs action: return the saved jobs so
// the agent can avoid re-saving ones it already recorded.
func NewReadJobsAction(st *jobs.Store) Action {
	return Action{
		Name:        "read_jobs",
		Description: "Read the jobs saved so far, so you do not save the same job twice.",
		Handler: func(ctx context.Context, _ map[string]any) Result {
			content, err := st.ReadAll()
			if err != nil {
				return Failure("read jobs: %v", err)
			}
			return Success(content, false)
		},
	}
}
