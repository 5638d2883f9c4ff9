// Package main is the composition root for fathom-mcp.
// All dependencies are wired here. This is the only place that knows about
// all layers simultaneously.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	exportapp "github.com/felixgeelhaar/fathom-mcp/internal/application/export"
	meetingapp "github.com/felixgeelhaar/fathom-mcp/internal/application/meeting"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/config"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/fathom"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/logging"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/observability"
	"github.com/felixgeelhaar/fathom-mcp/internal/interfaces/cli"
	mcpiface "github.com/felixgeelhaar/fathom-mcp/internal/interfaces/mcp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Load configuration (defaults, file, .env, environment)
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// --- Infrastructure Layer ---

	httpClient := &http.Client{Timeout: cfg.Fathom.Timeout}

	// Fathom API client (anti-corruption layer)
	fathomClient := fathom.NewClient(cfg.Fathom.BaseURL, httpClient, cfg.Fathom.APIKey)
	fathomRepo := fathom.NewRepository(fathomClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// Logging and metrics decorator
	repo := observability.NewInstrumentedRepository(fathomRepo, logger.Named("fathom"), metrics)

	// --- Application Layer (Use Cases) ---

	listMeetings := meetingapp.NewListMeetings(repo)
	getSummary := meetingapp.NewGetSummary(repo)
	getTranscript := meetingapp.NewGetTranscript(repo)
	exportRecording := exportapp.NewExportRecording(repo)

	// --- Interfaces Layer ---

	mcpServer := mcpiface.NewServer(cfg.MCP.ServerName, version, mcpiface.ServerOptions{
		ListMeetings:  listMeetings,
		GetSummary:    getSummary,
		GetTranscript: getTranscript,
	})

	deps := &cli.Dependencies{
		Config:          cfg,
		MCPServer:       mcpServer,
		ExportRecording: exportRecording,
		Gatherer:        registry,
		Logger:          logger,
		Out:             os.Stdout,
	}

	return cli.NewRootCmd(deps).Execute()
}
