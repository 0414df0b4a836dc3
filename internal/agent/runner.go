package agent

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// taskPreamble is the shared task text; BuildTask appends the role. The
// numbered plan keeps weaker models from skipping the login and CV steps.
const taskPreamble = `You are a professional job finder helping me apply to internships on LinkedIn.

Plan:
1. Call linkedin_login to sign in.
2. Call read_cv so you know my background.
3. Call read_jobs to see which jobs are already saved; never save a link that is already in the file.
4. Search LinkedIn for the role below. Prefer search_jobs_api with easy_apply=true, then open promising links in the browser. Filter for Easy Apply jobs.
5. For each fitting job: open it, read the description (extract_page helps), and save it with save_jobs including your fit score.
6. Apply through Easy Apply where possible. When a resume upload is required, use upload_cv with the file input's element index. Record submitted applications with track_application.
7. Call done with a summary of what you saved and applied to.

Role to search for: `

// BuildTask returns the full task text for one role.
func BuildTask(role string) string {
	return taskPreamble + role
}

// Runner fans one agent out per role over the shared browser session.
type Runner struct {
	Browser  Browser
	Actions  Invoker
	NewBrain func() Brain
	MaxSteps int
}

// Run starts one agent per role and waits for all of them. Agents share the
// browser and the job store; each gets its own brain. The first agent error
// cancels the rest.
func (r *Runner) Run(ctx context.Context, roles []string) error {
	if len(roles) == 0 {
		return fmt.Errorf("runner: no roles to search for")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range roles {
		g.Go(func() error {
			slog.Info("agent starting", "role", role, "max_steps", r.MaxSteps)
			a := &Agent{
				Task:     BuildTask(role),
				Brain:    r.NewBrain(),
				Browser:  r.Browser,
				Actions:  r.Actions,
				MaxSteps: r.MaxSteps,
			}
			report, err := a.Run(ctx)
			if err != nil {
				return fmt.Errorf("agent %q: %w", role, err)
			}
			slog.Info("agent finished", "role", role, "report", report)
			return nil
		})
	}
	return g.Wait()
}
