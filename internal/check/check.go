// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for the RenderMan denoiser.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/rdmdenoise/internal/config"
	"github.com/backmassage/rdmdenoise/internal/denoise"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrRmanTreeUnset    = errors.New("RMANTREE is not set")
	ErrDenoiserNotFound = errors.New("denoise_batch not found")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// can be tested with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck prints the state of RMANTREE, the denoiser binary and the
// network resource files. It reports true when everything needed for a
// launch is present; it never stops early.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkRmanTree(log)
	if !checkDenoiser(cfg, log) {
		ok = false
	}
	if !checkResource(log, "Parameters", cfg.Job.Parameters) {
		ok = false
	}
	if !checkResource(log, "Topology", cfg.Job.Topology) {
		ok = false
	}
	return ok
}

func checkRmanTree(log Logger) bool {
	tree := os.Getenv("RMANTREE")
	if tree == "" {
		log.Warn("RMANTREE is not set")
		return false
	}
	if fi, err := os.Stat(tree); err != nil || !fi.IsDir() {
		log.Error("RMANTREE points to a missing directory: %s", tree)
		return false
	}
	log.Success("RMANTREE: %s", tree)
	return true
}

func checkDenoiser(cfg *config.Config, log Logger) bool {
	path, err := resolveDenoiser(cfg)
	if err != nil {
		log.Error("Denoiser not found: %s", denoise.Binary(cfg))
		return false
	}
	log.Success("Denoiser: %s", path)
	return true
}

// checkResource reports whether a ${RMANTREE}-relative resource exists.
// The denoiser expands the variable itself; here it is expanded only to
// look at the file.
func checkResource(log Logger, label, path string) bool {
	if strings.Contains(path, "RMANTREE") && os.Getenv("RMANTREE") == "" {
		log.Warn("%s: %s (RMANTREE unset)", label, path)
		return false
	}
	expanded := os.ExpandEnv(path)
	if _, err := os.Stat(expanded); err != nil {
		log.Error("%s missing: %s", label, expanded)
		return false
	}
	log.Success("%s: %s", label, expanded)
	return true
}

// CheckDeps is the pre-launch validation: the denoiser must resolve to an
// executable, and RMANTREE must be set whenever the denoiser path or the
// job resources refer to it. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if usesRmanTree(cfg) && os.Getenv("RMANTREE") == "" {
		return ErrRmanTreeUnset
	}
	if _, err := resolveDenoiser(cfg); err != nil {
		return ErrDenoiserNotFound
	}
	return nil
}

// --- internal helpers ---

func usesRmanTree(cfg *config.Config) bool {
	for _, s := range []string{cfg.DenoiserPath, cfg.Job.Parameters, cfg.Job.Topology} {
		if strings.Contains(s, "RMANTREE") {
			return true
		}
	}
	return false
}

// resolveDenoiser expands the configured path and looks it up. Bare names
// are searched on PATH; anything with a separator must exist as given.
func resolveDenoiser(cfg *config.Config) (string, error) {
	bin := denoise.Binary(cfg)
	if strings.TrimSpace(bin) == "" {
		return "", ErrDenoiserNotFound
	}
	return exec.LookPath(bin)
}
