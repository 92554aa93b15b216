package pipeline

import (
	"github.com/backmassage/rdmdenoise/internal/denoise"
	"github.com/backmassage/rdmdenoise/internal/frames"
)

// Result records what a run discovered, chose and produced.
type Result struct {
	RunID      string
	Sequence   frames.Sequence
	FrameCount int
	Channels   []string // Every channel found in the first frame.
	Selected   []string // Channels written into the job, in discovery order.
	Range      frames.Range
	JobPath    string // Empty until the job file is written.
	Launched   bool
	Exec       denoise.ExecResult
}
