package denoise

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/backmassage/rdmdenoise/internal/config"
)

// ExecResult holds the outcome of a single denoiser invocation.
type ExecResult struct {
	Args     []string
	Output   string
	ExitCode int
	Elapsed  time.Duration
	Err      error
}

// Execute runs the denoiser on jobPath and waits for it to exit. Output is
// captured; when verbose it is also tee'd to the console in real time.
func Execute(ctx context.Context, cfg *config.Config, jobPath string) ExecResult {
	args := Command(cfg, jobPath)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var buf bytes.Buffer
	if cfg.Verbose {
		cmd.Stdout = io.MultiWriter(&buf, os.Stdout)
		cmd.Stderr = io.MultiWriter(&buf, os.Stderr)
	} else {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	}

	start := time.Now()
	err := cmd.Run()
	res := ExecResult{
		Args:    args,
		Output:  buf.String(),
		Elapsed: time.Since(start),
		Err:     err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else if err != nil {
		res.ExitCode = -1
	}
	return res
}
