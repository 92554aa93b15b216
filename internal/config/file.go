package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig models the optional YAML overrides file:
//
//	denoiser: /opt/pixar/RenderManProServer-26.3/bin/denoise_batch
//	batch_flag: ""
//	output_subdir: FILTERED
//	aovs: [beauty, diffuse, specular]
//	frames:
//	  start: 1001
//	  end: 1100
//	settings:
//	  parameters: ${RMANTREE}/lib/denoise/20970-renderman.param
//	  topology: ${RMANTREE}/lib/denoise/full_w7_4sv2_sym_gen2.topo
//	  asymmetry: 0.0
//	  tiles: [1, 1]
//
// Pointer fields distinguish "absent" from an explicit zero value.
type FileConfig struct {
	Denoiser     *string      `yaml:"denoiser"`
	BatchFlag    *string      `yaml:"batch_flag"`
	OutputSubdir *string      `yaml:"output_subdir"`
	AOVs         []string     `yaml:"aovs"`
	Frames       FileFrames   `yaml:"frames"`
	Settings     FileSettings `yaml:"settings"`
	LogFile      *string      `yaml:"log"`
	Verbose      *bool        `yaml:"verbose"`
}

// FileFrames is the frames: block.
type FileFrames struct {
	Start *string `yaml:"start"`
	End   *string `yaml:"end"`
}

// FileSettings is the settings: block copied into every job document.
type FileSettings struct {
	Parameters *string  `yaml:"parameters"`
	Topology   *string  `yaml:"topology"`
	Asymmetry  *float64 `yaml:"asymmetry"`
	Tiles      []int    `yaml:"tiles"`
}

// LoadFile reads and validates a YAML overrides file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseFile(data, path)
}

// ParseFile decodes YAML overrides; name is used in error messages only.
func ParseFile(data []byte, name string) (*FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &fc, nil
}

func (fc *FileConfig) validate() error {
	if fc.Settings.Tiles != nil {
		if len(fc.Settings.Tiles) != 2 {
			return fmt.Errorf("settings.tiles must have exactly two entries")
		}
		if fc.Settings.Tiles[0] < 1 || fc.Settings.Tiles[1] < 1 {
			return fmt.Errorf("settings.tiles entries must be >= 1")
		}
	}
	if fc.OutputSubdir != nil && strings.TrimSpace(*fc.OutputSubdir) == "" {
		return fmt.Errorf("output_subdir must not be empty")
	}
	return nil
}

// Apply copies file values into cfg, skipping any setting whose flag is in
// setFlags (flags always win over the file).
func (fc *FileConfig) Apply(cfg *Config, setFlags map[string]bool) {
	str := func(flagName string, src *string, dst *string) {
		if src != nil && !setFlags[flagName] {
			*dst = strings.TrimSpace(*src)
		}
	}
	str("denoiser", fc.Denoiser, &cfg.DenoiserPath)
	str("batch-flag", fc.BatchFlag, &cfg.BatchFlag)
	str("output-subdir", fc.OutputSubdir, &cfg.OutputSubdir)
	str("log", fc.LogFile, &cfg.LogFile)
	if !setFlags["range"] {
		str("start", fc.Frames.Start, &cfg.FrameStart)
		str("end", fc.Frames.End, &cfg.FrameEnd)
	}
	if fc.Verbose != nil && !setFlags["verbose"] {
		cfg.Verbose = *fc.Verbose
	}
	if len(fc.AOVs) > 0 && !setFlags["aovs"] && !setFlags["all"] {
		cfg.AOVs = append([]string(nil), fc.AOVs...)
	}

	s := fc.Settings
	if s.Parameters != nil {
		cfg.Job.Parameters = strings.TrimSpace(*s.Parameters)
	}
	if s.Topology != nil {
		cfg.Job.Topology = strings.TrimSpace(*s.Topology)
	}
	if s.Asymmetry != nil {
		cfg.Job.Asymmetry = *s.Asymmetry
	}
	if len(s.Tiles) == 2 {
		cfg.Job.Tiles = [2]int{s.Tiles[0], s.Tiles[1]}
	}
}
