package denoise

import (
	"os"

	"github.com/backmassage/rdmdenoise/internal/config"
)

// Binary returns the denoiser path with ${VAR} references expanded.
func Binary(cfg *config.Config) string {
	return os.ExpandEnv(cfg.DenoiserPath)
}

// Command returns the full argument vector, binary first:
//
//	denoise_batch --json <jobPath> [batchFlag]
func Command(cfg *config.Config, jobPath string) []string {
	args := []string{Binary(cfg), "--json", jobPath}
	if cfg.BatchFlag != "" {
		args = append(args, cfg.BatchFlag)
	}
	return args
}
