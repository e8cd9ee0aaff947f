package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/haldane-labs/tuberag/internal/adapters/driven/ai"
	"github.com/haldane-labs/tuberag/internal/adapters/driven/config/file"
	"github.com/haldane-labs/tuberag/internal/adapters/driving/cli"
	"github.com/haldane-labs/tuberag/internal/connectors/transcripts"
	"github.com/haldane-labs/tuberag/internal/core/services"
	"github.com/haldane-labs/tuberag/internal/logger"
	"github.com/haldane-labs/tuberag/internal/postprocessors"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=v1.2.3" ./cmd/tuberag
var version = "dev"

func main() {
	_ = godotenv.Load()

	// Services are wired before cobra parses flags, so the verbose
	// flag has to be picked up early for wiring warnings to show.
	for _, arg := range os.Args[1:] {
		if arg == "--" {
			break
		}
		if arg == "-v" || arg == "--verbose" {
			logger.SetVerbose(true)
			break
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// run wires the adapters into the core services and hands control to
// the CLI. A provider that is configured but unreachable degrades the
// pipeline instead of aborting: settings and serve must stay usable so
// the problem can be inspected and fixed.
func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	stores, err := ai.CreateStores(ctx, settings.Store, "")
	if err != nil {
		logger.Warn("Vector store unavailable: %v", err)
		stores = &ai.Stores{}
	}
	defer stores.Close()

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	}
	if embedder != nil {
		defer embedder.Close()
	}

	llm, err := ai.CreateAndValidateLLMService(settings.LLM)
	if err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	chunking, err := postprocessors.DefaultPipeline(settings.Ingest)
	if err != nil {
		return fmt.Errorf("building ingestion pipeline: %w", err)
	}
	source := transcripts.New(settings.Ingest.TranscriptsDir)

	cli.SetServices(cli.Services{
		Ingest:   services.NewIngestService(source, chunking, embedder, stores.Vector, stores.History, settings.Ingest),
		Query:    services.NewPipelineService(embedder, stores.Vector, llm, prompts, settings.Query),
		Settings: settingsService,
		System:   services.NewSystemService(embedder, llm, stores.Vector),
	})
	cli.SetVersion(version)

	return cli.ExecuteContext(ctx)
}
