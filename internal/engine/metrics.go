package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LLMCalls            atomic.Int64
	LLMErrors           atomic.Int64
	ActionCalls         atomic.Int64
	ActionErrors        atomic.Int64
	JobsSaved           atomic.Int64
	BrowserNavigations  atomic.Int64
	LinkedInAPIRequests atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"llm_calls":             metrics.LLMCalls.Load(),
		"llm_errors":            metrics.LLMErrors.Load(),
		"action_calls":          metrics.ActionCalls.Load(),
		"action_errors":         metrics.ActionErrors.Load(),
		"jobs_saved":            metrics.JobsSaved.Load(),
		"browser_navigations":   metrics.BrowserNavigations.Load(),
		"linkedin_api_requests": metrics.LinkedInAPIRequests.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"llm_calls", "llm_errors",
		"action_calls", "action_errors",
		"jobs_saved", "browser_navigations", "linkedin_api_requests",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages (actions, browser, jobs).
func IncrActionCalls()         { metrics.ActionCalls.Add(1) }
func IncrActionErrors()        { metrics.ActionErrors.Add(1) }
func IncrJobsSaved()           { metrics.JobsSaved.Add(1) }
func IncrBrowserNavigations()  { metrics.BrowserNavigations.Add(1) }
func IncrLinkedInAPIRequests() { metrics.LinkedInAPIRequests.Add(1) }
