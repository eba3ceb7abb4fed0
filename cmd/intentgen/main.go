package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/cli"
	"github.com/aadhamashraf/intentgen/internal/config"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Profiles file replaces the built-in registry when set.
	registry := profile.Default()
	if cfg.ProfilesPath != "" {
		if registry, err = profile.LoadFile(cfg.ProfilesPath); err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
	}

	useCases := service.NewLogUseCaseObserver(os.Stderr, level)

	// Judge client and paraphraser only when the LLM is enabled.
	var judge llm.LLMClient
	datasetOpts := []service.DatasetOption{
		service.WithDefaults(cfg.BatchDefaults()),
		service.WithObserver(useCases),
	}
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		judge = llm.NewOllamaClient(cfg.LLM, observer)
		datasetOpts = append(datasetOpts, service.WithParaphraser(augment.NewLLMParaphraser(judge)))
	}

	app := &cli.App{
		Datasets: service.NewDatasetService(registry, datasetOpts...),
		Evals:    service.NewEvaluationService(judge, cfg.LLM.SampleSize, useCases),
		Registry: registry,
		Config:   cfg,
		Logger:   logger,
		Version:  generation.GeneratorVersion,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
