// Package config holds runtime configuration: defaults, CLI flag parsing, an
// optional YAML overrides file, and validation.
package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/backmassage/rdmdenoise/internal/job"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultOutputSubdir is created inside the frames directory to hold the job
// file and the denoised frames.
const DefaultOutputSubdir = "FILTERED"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [ParseFlags] (which also merges a --config file), and is passed by
// pointer to the packages that need it.
type Config struct {
	// Paths (InputDir is the positional arg).
	InputDir     string
	OutputSubdir string // Default: "FILTERED".
	ConfigFile   string // Optional YAML overrides.

	// Frame range (both bounds required unless the interactive selector asks for them).
	FrameStart string
	FrameEnd   string

	// Channel selection.
	AOVs     []string // Explicit channel list from --aovs.
	AllAOVs  bool     // Select every discovered channel.
	ListOnly bool     // Print channels and exit.
	NoPrompt bool     // Never open the interactive selector.

	// Denoiser invocation.
	DenoiserPath string // Default depends on OS; ${VAR} references are expanded at launch.
	BatchFlag    string // Default: "/s". Empty disables it.

	// Job settings written into every document.
	Job job.Defaults

	// Behavior and display.
	DryRun    bool
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string
	CheckOnly bool
}

// DefaultConfig returns a Config with the stock RenderMan settings.
func DefaultConfig() Config {
	return Config{
		OutputSubdir: DefaultOutputSubdir,
		DenoiserPath: defaultDenoiserPath(runtime.GOOS),
		BatchFlag:    "/s",
		Job:          job.DefaultDefaults(),
		ColorMode:    ColorAuto,
	}
}

func defaultDenoiserPath(goos string) string {
	if goos == "windows" {
		return "C:/Program Files/Pixar/RenderManProServer-26.3/bin/denoise_batch.exe"
	}
	return "${RMANTREE}/bin/denoise_batch"
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// SplitList parses a comma- or whitespace-separated channel list.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Validate checks the fields that do not depend on discovery. Outside of
// CheckOnly mode the frames directory is required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if strings.TrimSpace(c.OutputSubdir) == "" {
		return errors.New("output subdirectory must not be empty")
	}
	if c.Job.Tiles[0] < 1 || c.Job.Tiles[1] < 1 {
		return errors.New("tiles must be at least 1x1")
	}

	if c.CheckOnly {
		return nil
	}
	if strings.TrimSpace(c.InputDir) == "" {
		return errors.New("frames directory cannot be empty")
	}
	if c.AllAOVs && len(c.AOVs) > 0 {
		return errors.New("use either --aovs or --all, not both")
	}
	if strings.TrimSpace(c.DenoiserPath) == "" && !c.DryRun && !c.ListOnly {
		return errors.New("denoiser path must not be empty")
	}
	return nil
}

// HasFrameRange reports whether both frame bounds were supplied.
func (c *Config) HasFrameRange() bool {
	return strings.TrimSpace(c.FrameStart) != "" && strings.TrimSpace(c.FrameEnd) != ""
}

// Interactive reports whether the run needs the interactive selector: no
// channel list was given, and prompting is allowed.
func (c *Config) Interactive() bool {
	if c.ListOnly || c.NoPrompt {
		return false
	}
	return !c.AllAOVs && len(c.AOVs) == 0
}
