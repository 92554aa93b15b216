package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into frames, channels, denoiser, behavior, display, and utility.
// Negated flags (e.g. --no-color) and the --config file are applied after Parse
// so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/rdmdenoise/internal/frames"
)

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional arg, unreadable --config file).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("rdmdenoise", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var extra extraFlags

	defineFrameFlags(fs, cfg, &extra)
	defineChannelFlags(fs, cfg, &extra)
	defineDenoiserFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &extra)
	defineUtilityFlags(fs, cfg, &extra)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if extra.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if extra.showVersion {
		fmt.Fprintln(os.Stdout, "rdmdenoise v"+version)
		os.Exit(0)
	}

	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		fc.Apply(cfg, visitedFlags(fs))
	}

	if err := applyExtraFlags(cfg, &extra); err != nil {
		return err
	}
	return parsePositionalArgs(fs, cfg)
}

// extraFlags holds values that are post-processed after Parse: negations,
// list/range strings, and exit triggers.
type extraFlags struct {
	frameRange  string
	aovs        string
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineFrameFlags registers -s/--start, -e/--end, -r/--range, --output-subdir.
func defineFrameFlags(fs *flag.FlagSet, cfg *Config, x *extraFlags) {
	fs.StringVar(&cfg.FrameStart, "start", "", "First frame of the range")
	fs.StringVar(&cfg.FrameStart, "s", "", "Same as --start")
	fs.StringVar(&cfg.FrameEnd, "end", "", "Last frame of the range")
	fs.StringVar(&cfg.FrameEnd, "e", "", "Same as --end")
	fs.StringVar(&x.frameRange, "range", "", "Frame range as START-END")
	fs.StringVar(&x.frameRange, "r", "", "Same as --range")
	fs.StringVar(&cfg.OutputSubdir, "output-subdir", cfg.OutputSubdir, "Output folder created inside the frames directory")
}

// defineChannelFlags registers --aovs, --all, --list, --no-prompt.
func defineChannelFlags(fs *flag.FlagSet, cfg *Config, x *extraFlags) {
	fs.StringVar(&x.aovs, "aovs", "", "Comma-separated channels to denoise")
	fs.StringVar(&x.aovs, "a", "", "Same as --aovs")
	fs.BoolVar(&cfg.AllAOVs, "all", false, "Denoise every discovered channel")
	fs.BoolVar(&cfg.ListOnly, "list", false, "List discovered channels and exit")
	fs.BoolVar(&cfg.NoPrompt, "no-prompt", false, "Never open the interactive selector")
}

// defineDenoiserFlags registers --denoiser, --batch-flag, -d/--dry-run, --config.
func defineDenoiserFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DenoiserPath, "denoiser", cfg.DenoiserPath, "Path to denoise_batch")
	fs.StringVar(&cfg.BatchFlag, "batch-flag", cfg.BatchFlag, "Silent/batch flag passed to the denoiser (empty to omit)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Write the job file but do not launch the denoiser")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML file with setting overrides")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, x *extraFlags) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color-mode", "Color output: auto | always | never")
	fs.BoolVar(&x.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&x.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, x *extraFlags) {
	fs.BoolVar(&x.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&x.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&x.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&x.showHelp, "h", false, "Show this help and exit")
}

// applyExtraFlags copies negations, the channel list, and the range shorthand into cfg.
func applyExtraFlags(cfg *Config, x *extraFlags) error {
	if x.noColor {
		cfg.ColorMode = ColorNever
	} else if x.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if x.aovs != "" {
		cfg.AOVs = SplitList(x.aovs)
	}
	if x.frameRange != "" {
		if cfg.FrameStart != "" || cfg.FrameEnd != "" {
			return fmt.Errorf("use either --range or --start/--end, not both")
		}
		r, err := frames.ParseRange(x.frameRange)
		if err != nil {
			return fmt.Errorf("invalid --range %q: %w", x.frameRange, err)
		}
		cfg.FrameStart, cfg.FrameEnd = r.Start, r.End
	}
	return nil
}

// parsePositionalArgs sets InputDir from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one frames directory")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	return nil
}

// flagAliases maps short flags to the long name the config file uses.
var flagAliases = map[string]string{
	"s": "start",
	"e": "end",
	"r": "range",
	"a": "aovs",
	"d": "dry-run",
	"v": "verbose",
	"l": "log",
}

// visitedFlags returns the long names of every flag set on the command line.
func visitedFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		set[name] = true
	})
	return set
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "rdmdenoise v" + version + " - RenderMan denoise job launcher"},
		{"", ""},
		{"  rdmdenoise [OPTIONS] <frames_dir>", ""},
		{"", ""},
		{"Frames", ""},
		{"  -s, --start <frame>", "First frame of the range"},
		{"  -e, --end <frame>", "Last frame of the range"},
		{"  -r, --range <start-end>", "Frame range shorthand (e.g. 1001-1100)"},
		{"  --output-subdir <name>", "Output folder inside frames_dir (default: FILTERED)"},
		{"", ""},
		{"Channels", ""},
		{"  -a, --aovs <a,b,...>", "Channels to denoise (default: interactive picker)"},
		{"  --all", "Denoise every discovered channel"},
		{"  --list", "List discovered channels and their variance pairing"},
		{"  --no-prompt", "Never open the interactive picker"},
		{"", ""},
		{"Denoiser", ""},
		{"  --denoiser <path>", "Path to denoise_batch (${RMANTREE} is expanded)"},
		{"  --batch-flag <flag>", "Silent/batch flag (default: /s)"},
		{"  -d, --dry-run", "Write the job file only"},
		{"  --config <file.yaml>", "Setting overrides (flags win)"},
		{"", ""},
		{"Display", ""},
		{"  --color-mode <mode>", "auto | always | never"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (RMANTREE, denoiser, resources)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// colorModeValue adapts ColorMode to flag.Value.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
