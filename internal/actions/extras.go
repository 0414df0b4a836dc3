package actions

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/anatolykoptev/go_easyapply/internal/browser"
	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
)

// NewSearchJobsAPIAction builds search_jobs_api: query LinkedIn's guest
// listing API directly, without spending browser steps on search pages.
func NewSearchJobsAPIAction() Action {
	return Action{
		Name:        "search_jobs_api",
		Description: "Search LinkedIn job listings via API. Returns title, company, location and link per job. Faster than browsing search pages; still open the link in the browser to apply.",
		Params: map[string]any{
			"query":      map[string]any{"type": "string", "description": "Search keywords, e.g. 'data analyst intern'"},
			"location":   map[string]any{"type": "string", "description": "Location filter, e.g. 'United States'"},
			"experience": map[string]any{"type": "string", "description": "internship, entry, associate, mid-senior, director or executive"},
			"job_type":   map[string]any{"type": "string", "description": "full-time, part-time, contract, temporary, internship or volunteer"},
			"remote":     map[string]any{"type": "string", "description": "onsite, hybrid or remote"},
			"time_range": map[string]any{"type": "string", "description": "day, week or month; only listings posted within this range"},
			"easy_apply": map[string]any{
				"type":        "boolean",
				"description": "Only return Easy Apply listings",
			},
		},
		Required: []string{"query"},
		Handler: func(ctx context.Context, args map[string]any) Result {
			query := getString(args, "query")
			if query == "" {
				return Failure("search jobs: query is required")
			}

			listings, err := jobs.SearchListings(ctx, query, searchFiltersFromArgs(args))
			if err != nil {
				return Failure("search jobs: %v", err)
			}
			if len(listings) == 0 {
				return Success("No listings found for this query.", false)
			}

			out, err := json.Marshal(listings)
			if err != nil {
				return Failure("search jobs: encode results: %v", err)
			}
			return Success(string(out), false)
		},
	}
}

// searchFiltersFromArgs maps the tool arguments onto Guest API filters.
// Unknown filter values fall through as zero values, which SearchListings
// treats as "no filter".
func searchFiltersFromArgs(args map[string]any) jobs.SearchFilters {
	easyApply, _ := args["easy_apply"].(bool)
	return jobs.SearchFilters{
		Location:   getString(args, "location"),
		Experience: getString(args, "experience"),
		JobType:    getString(args, "job_type"),
		Remote:     getString(args, "remote"),
		TimeRange:  getString(args, "time_range"),
		EasyApply:  easyApply,
	}
}

// NewExtractPageAction builds extract_page: render the current page as
// markdown so the agent can read a full job description.
func NewExtractPageAction(s *browser.Session) Action {
	return Action{
		Name:        "extract_page",
		Description: "Extract the current page content as markdown. Use to read a full job description before scoring or applying.",
		Handler: func(ctx context.Context, _ map[string]any) Result {
			md, err := s.PageMarkdown()
			if err != nil {
				return Failure("extract page: %v", err)
			}
			return Success(md, false)
		},
	}
}

// NewScoreJobMatchAction builds score_job_match: keyword overlap between the
// resume and a job description. Resume keywords are extracted once, lazily.
func NewScoreJobMatchAction(cvPath string) Action {
	var (
		once     sync.Once
		resumeKW map[string]bool
		kwErr    error
	)
	return Action{
		Name:        "score_job_match",
		Description: "Score how well a job description matches my resume by keyword overlap. A cheap pre-filter; use your own judgment for the final fit score.",
		Params: map[string]any{
			"description": map[string]any{"type": "string", "description": "The job description text"},
		},
		Required: []string{"description"},
		Handler: func(ctx context.Context, args map[string]any) Result {
			desc := getString(args, "description")
			if desc == "" {
				return Failure("score match: description is required")
			}

			once.Do(func() {
				text, err := jobs.ReadResume(cvPath)
				if err != nil {
					kwErr = err
					return
				}
				resumeKW = jobs.ExtractKeywords(text)
			})
			if kwErr != nil {
				return Failure("score match: read resume: %v", kwErr)
			}

			report := jobs.ScoreFit(resumeKW, desc)
			out, err := json.Marshal(report)
			if err != nil {
				return Failure("score match: encode report: %v", err)
			}
			return Success(string(out), false)
		},
	}
}

// NewTrackApplicationAction builds track_application: record a submitted
// application in the local tracker database.
func NewTrackApplicationAction() Action {
	return Action{
		Name:        "track_application",
		Description: "Record an application you submitted in the local tracker, so its status can be followed up later.",
		Params: map[string]any{
			"title":   map[string]any{"type": "string", "description": "Job title"},
			"company": map[string]any{"type": "string", "description": "Company name"},
			"url":     map[string]any{"type": "string", "description": "URL of the job posting"},
			"status":  map[string]any{"type": "string", "description": "saved, applied, interview, offer or rejected; defaults to applied"},
		},
		Required: []string{"title", "company"},
		Handler: func(ctx context.Context, args map[string]any) Result {
			status := getString(args, "status")
			if status == "" {
				status = "applied"
			}
			res, err := jobs.AddApplication(ctx, jobs.TrackerAddInput{
				Title:   getString(args, "title"),
				Company: getString(args, "company"),
				URL:     getString(args, "url"),
				Status:  status,
			})
			if err != nil {
				return Failure("track application: %v", err)
			}
			return Success(res.Message, false)
		},
	}
}
