// Package jobserver exposes the job store, tracker, resume reader, and
// listing search as MCP tools, for use from MCP clients without running the
// browser agent.
package jobserver

import (
	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all tools on the given MCP server: job_store_save,
// job_store_read, job_tracker_add, job_tracker_list, job_tracker_update,
// resume_read, job_search_api. Returns the number of tools registered.
func RegisterTools(server *mcp.Server, st *jobs.Store, cvPath string) int {
	regs := []func(){
		func() { registerJobStoreSave(server, st) },
		func() { registerJobStoreRead(server, st) },
		func() { registerJobTrackerAdd(server) },
		func() { registerJobTrackerList(server) },
		func() { registerJobTrackerUpdate(server) },
		func() { registerResumeRead(server, cvPath) },
		func() { registerJobSearchAPI(server) },
	}
	for _, reg := range regs {
		reg()
	}
	return len(regs)
}
