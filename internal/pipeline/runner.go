package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/rdmdenoise/internal/aov"
	"github.com/backmassage/rdmdenoise/internal/config"
	"github.com/backmassage/rdmdenoise/internal/denoise"
	"github.com/backmassage/rdmdenoise/internal/display"
	"github.com/backmassage/rdmdenoise/internal/frames"
	"github.com/backmassage/rdmdenoise/internal/job"
	"github.com/backmassage/rdmdenoise/internal/logging"
	"github.com/backmassage/rdmdenoise/internal/selection"
	"github.com/backmassage/rdmdenoise/internal/tui"
)

// Sentinel errors returned by Run.
var (
	ErrCancelled   = errors.New("selection cancelled")
	ErrNoSelection = errors.New("no channels selected (use --aovs, --all, or drop --no-prompt)")
)

// Selector asks the user for channels and a frame range.
type Selector interface {
	Select(names []string, initial frames.Range) (tui.Result, error)
}

// Run executes one job. sel is consulted only when cfg asks for the
// interactive picker; it may be nil otherwise. The returned Result is
// populated as far as the run got, even on error.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, sel Selector) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log.Debug(cfg.Verbose, "Run %s", res.RunID)

	if err := discover(cfg, log, &res); err != nil {
		return res, err
	}

	classifier := aov.NewClassifier(aov.DefaultTable())
	if cfg.ListOnly {
		fmt.Println(display.ChannelTable(channelRows(classifier, res.Channels)))
		return res, nil
	}

	if err := choose(cfg, log, sel, &res); err != nil {
		return res, err
	}
	if err := res.Range.Validate(); err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}
	if len(res.Selected) == 0 {
		log.Warn("No channels selected; the job will contain no passes")
	}
	log.Info("Selected: %s", strings.Join(res.Selected, ", "))
	log.Info("Frames: %s", res.Range)

	outputDir := filepath.Join(cfg.InputDir, cfg.OutputSubdir)
	doc := job.NewBuilder(classifier, cfg.Job).Build(res.Sequence.Template, res.Selected, outputDir, res.Range.String())
	for _, p := range doc.Passes {
		log.Debug(cfg.Verbose, "  %s -> %s (%s)", p.Name, p.InputVariance.Layer, p.Shape)
	}

	path, err := job.Write(outputDir, doc)
	if err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}
	res.JobPath = path
	log.Success("Job written: %s", path)

	return res, launch(ctx, cfg, log, &res)
}

// choose fills res.Selected and res.Range from flags or the picker.
func choose(cfg *config.Config, log *logging.Logger, sel Selector, res *Result) error {
	list := selection.New(res.Channels)
	res.Range = frames.Range{Start: cfg.FrameStart, End: cfg.FrameEnd}

	switch {
	case len(cfg.AOVs) > 0:
		for _, name := range list.Apply(cfg.AOVs) {
			log.Warn("Channel not found in %s: %s", filepath.Base(res.Sequence.FirstFrame), name)
		}
	case cfg.AllAOVs:
		list.SetAll(true)
	case cfg.Interactive() && sel != nil:
		picked, err := sel.Select(res.Channels, res.Range)
		if err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		if !picked.Confirmed {
			return ErrCancelled
		}
		list.Apply(picked.Selected)
		res.Range = picked.Range
	default:
		return ErrNoSelection
	}
	res.Selected = list.Selected()
	return nil
}

// launch runs the denoiser once and reports its exit status. A non-zero
// status is returned as an error but never retried.
func launch(ctx context.Context, cfg *config.Config, log *logging.Logger, res *Result) error {
	args := denoise.Command(cfg, res.JobPath)
	if cfg.DryRun {
		log.Success("[DRY] Would run: %s", strings.Join(args, " "))
		return nil
	}
	if ctx.Err() != nil {
		log.Warn("Interrupted")
		return ctx.Err()
	}

	log.Info("Launching: %s", strings.Join(args, " "))
	res.Exec = denoise.Execute(ctx, cfg, res.JobPath)
	res.Launched = true

	if res.Exec.Err != nil {
		log.Error("Denoiser failed (exit %d): %v", res.Exec.ExitCode, res.Exec.Err)
		if !cfg.Verbose {
			logOutput(log, res.Exec.Output)
		}
		return fmt.Errorf("pipeline: denoise: %w", res.Exec.Err)
	}
	log.Success("Denoising finished in %ds", int(res.Exec.Elapsed.Seconds()))
	log.Info("Output: %s", filepath.Join(cfg.InputDir, cfg.OutputSubdir))
	return nil
}

func logOutput(log *logging.Logger, output string) {
	if output == "" {
		return
	}
	log.Error("Last denoiser output:")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func channelRows(c *aov.Classifier, names []string) []display.ChannelRow {
	rows := make([]display.ChannelRow, len(names))
	for i, n := range names {
		rows[i] = display.ChannelRow{
			Name:     n,
			Category: string(c.Category(n)),
			Variance: c.Classify(n),
			Shape:    job.ShapeFor(n).String(),
		}
	}
	return rows
}
