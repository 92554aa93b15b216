// Command rdmdenoise is the CLI entrypoint for the RenderMan denoise job
// launcher.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or discovers a frame sequence, writes the denoise
// job file and launches denoise_batch on it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/backmassage/rdmdenoise/internal/check"
	"github.com/backmassage/rdmdenoise/internal/config"
	"github.com/backmassage/rdmdenoise/internal/display"
	"github.com/backmassage/rdmdenoise/internal/logging"
	"github.com/backmassage/rdmdenoise/internal/pipeline"
	"github.com/backmassage/rdmdenoise/internal/tui"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A project-local .env may supply RMANTREE; a missing file is fine.
	_ = godotenv.Load()

	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rdmdenoise: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rdmdenoise: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rdmdenoise: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	if fi, err := os.Stat(cfg.InputDir); err != nil || !fi.IsDir() {
		log.Error("Frames directory not found: %s", cfg.InputDir)
		return 1
	}

	log.Info("=== rdmdenoise v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", filepath.Join(cfg.InputDir, cfg.OutputSubdir))
	if cfg.DryRun {
		log.Warn("DRY RUN: the job file is written but the denoiser is not launched")
	}

	// Fail fast if the denoiser cannot be launched.
	if !cfg.DryRun && !cfg.ListOnly {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			log.Error("Run with --check for details")
			return 1
		}
	}

	// Phase 3: Signal handling. The denoiser is killed through the context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping denoiser…")
		cancel()
	}()

	// Phase 4: discover → select → build → write → launch.
	_, err = pipeline.Run(ctx, &cfg, log, tui.Selector{Title: "RDM Denoise: " + cfg.InputDir})
	if errors.Is(err, pipeline.ErrCancelled) {
		log.Warn("Cancelled")
		return 1
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
