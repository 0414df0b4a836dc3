// go_easyapply — autonomous LinkedIn Easy Apply agent.
//
// Agent mode (default) launches a browser and one LLM-driven agent per
// configured role: log in, read the resume, search listings, save fitting
// jobs to the CSV store, and apply through Easy Apply.
//
// MCP mode (MODE=mcp) skips the browser and exposes the job store, tracker,
// resume reader, and listing search as MCP tools over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_easyapply/internal/actions"
	"github.com/anatolykoptev/go_easyapply/internal/agent"
	"github.com/anatolykoptev/go_easyapply/internal/browser"
	"github.com/anatolykoptev/go_easyapply/internal/engine"
	"github.com/anatolykoptev/go_easyapply/internal/engine/jobs"
	"github.com/anatolykoptev/go_easyapply/internal/jobserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	creds, err := engine.LoadCredentials()
	if err != nil {
		slog.Error("credentials", slog.Any("error", err))
		os.Exit(1)
	}

	c := engine.Config{
		Credentials:     creds,
		CVPath:          env.Str("CV_PATH", "cv.pdf"),
		JobsCSV:         env.Str("JOBS_CSV", "jobs.csv"),
		LLMAPIKey:       env.Str("LLM_API_KEY", ""),
		LLMAPIBase:      env.Str("LLM_API_BASE", ""),
		LLMModel:        env.Str("LLM_MODEL", "gpt-4o"),
		LLMTemperature:  env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:    env.Int("LLM_MAX_TOKENS", 4096),
		MaxSteps:        env.Int("MAX_STEPS", 50),
		MaxContentChars: env.Int("MAX_CONTENT_CHARS", 12000),
		FetchTimeout:    env.Duration("FETCH_TIMEOUT", 10*time.Second),
		Headless:        env.Str("HEADLESS", "0") == "1",
		Roles:           env.List("ROLES", "data analyst intern,data scientist intern"),
	}

	if err := jobs.CheckResume(c.CVPath); err != nil {
		slog.Error("resume check", slog.Any("error", err))
		os.Exit(1)
	}
	engine.Init(c)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch env.Str("MODE", "agent") {
	case "mcp":
		runMCP(c)
	default:
		if err := runAgents(ctx, c); err != nil {
			slog.Error("run failed", slog.Any("error", err))
			slog.Info("final metrics", slog.String("metrics", engine.FormatMetrics()))
			os.Exit(1)
		}
		slog.Info("final metrics", slog.String("metrics", engine.FormatMetrics()))
	}
}

func runAgents(ctx context.Context, c engine.Config) error {
	slog.Info("starting go_easyapply",
		slog.String("model", c.LLMModel),
		slog.Any("roles", c.Roles),
		slog.Bool("headless", c.Headless),
	)

	session, err := browser.NewSession(ctx, c.Headless)
	if err != nil {
		return err
	}
	defer session.Close()

	store := jobs.NewStore(c.JobsCSV)

	reg := actions.NewRegistry()
	for _, a := range []actions.Action{
		actions.NewLoginAction(session, c.Credentials),
		actions.NewReadCVAction(c.CVPath),
		actions.NewUploadCVAction(session, c.CVPath),
		actions.NewSaveJobsAction(store),
		actions.NewReadJobsAction(store),
		actions.NewSearchJobsAPIAction(),
		actions.NewExtractPageAction(session),
		actions.NewScoreJobMatchAction(c.CVPath),
		actions.NewTrackApplicationAction(),
	} {
		if err := reg.Register(a); err != nil {
			return err
		}
	}

	tools := append(reg.Tools(), agent.BuiltinTools()...)
	runner := &agent.Runner{
		Browser: session,
		Actions: reg,
		NewBrain: func() agent.Brain {
			return engine.NewLLMClient(engine.Cfg, tools)
		},
		MaxSteps: c.MaxSteps,
	}
	return runner.Run(ctx, c.Roles)
}

func runMCP(c engine.Config) {
	port := env.Str("MCP_PORT", "8892")
	slog.Info("starting go_easyapply mcp server", slog.String("port", port))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_easyapply",
		Version: version,
	}, nil)

	count := jobserver.RegisterTools(server, jobs.NewStore(c.JobsCSV), c.CVPath)
	slog.Info("tools registered", slog.Int("count", count))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_easyapply",
		Version:      version,
		Port:         port,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}
