package pipeline

import (
	"fmt"
	"os"

	"github.com/backmassage/rdmdenoise/internal/config"
	"github.com/backmassage/rdmdenoise/internal/display"
	"github.com/backmassage/rdmdenoise/internal/exr"
	"github.com/backmassage/rdmdenoise/internal/frames"
	"github.com/backmassage/rdmdenoise/internal/logging"
)

// discover resolves the frame sequence in cfg.InputDir and reads the
// channel layers from its first frame.
func discover(cfg *config.Config, log *logging.Logger, res *Result) error {
	seq, err := frames.Discover(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("pipeline: discover frames: %w", err)
	}
	res.Sequence = seq

	if n, err := seq.Count(); err == nil {
		res.FrameCount = n
	}
	size := "unknown size"
	if fi, err := os.Stat(seq.FirstFrame); err == nil {
		size = display.FormatBytes(fi.Size())
	}
	log.Info("Found %d frame(s): %s", res.FrameCount, seq.Template)
	log.Debug(cfg.Verbose, "First frame: %s (%s)", seq.FirstFrame, size)

	layers, err := exr.ReadLayers(seq.FirstFrame)
	if err != nil {
		return fmt.Errorf("pipeline: read channels: %w", err)
	}
	res.Channels = layers
	log.Info("Channels: %d", len(layers))
	return nil
}
