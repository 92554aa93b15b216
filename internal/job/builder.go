package job

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/rdmdenoise/internal/aov"
)

// Classifier pairs a channel with its variance channel.
type Classifier interface {
	Classify(name string) string
}

// Builder assembles job documents. It holds no per-run state; the same
// Builder may be reused and shared.
type Builder struct {
	classifier Classifier
	defaults   Defaults
}

// NewBuilder returns a Builder using c for variance lookups and d for the
// fixed settings values.
func NewBuilder(c Classifier, d Defaults) *Builder {
	return &Builder{classifier: c, defaults: d}
}

// DefaultBuilder wires the stock classification table and settings.
func DefaultBuilder() *Builder {
	return NewBuilder(aov.NewClassifier(aov.DefaultTable()), DefaultDefaults())
}

// Build produces the job document for channels, in order. framePath is the
// sequence template (e.g. /frames/shot.####.exr) used for every read;
// outputDir receives the denoised frames under the template's base name.
// An empty channel list yields a document with no passes.
func (b *Builder) Build(framePath string, channels []string, outputDir, frameRange string) Document {
	return Document{
		Settings: b.settings(framePath, frameRange),
		Passes:   b.passes(framePath, channels, outputDir),
	}
}

func (b *Builder) settings(framePath, frameRange string) Settings {
	return Settings{
		Progress:       true,
		Albedo:         Layer{Filename: framePath, Layer: "albedo"},
		AlbedoVariance: Layer{Filename: framePath, Layer: aov.VarianceAlbedo},
		Normal:         Layer{Filename: framePath, Layer: "normal"},
		NormalVariance: Layer{Filename: framePath, Layer: aov.VarianceNormal},
		SampleCount:    Layer{Filename: framePath, Layer: "sampleCount"},
		Flow:           Layer{Filename: framePath, Layer: "Ci"},
		FrameInclude:   frameRange,
		Parameters:     b.defaults.Parameters,
		Topology:       b.defaults.Topology,
		Asymmetry:      b.defaults.Asymmetry,
		Tiles:          b.defaults.Tiles,
	}
}

func (b *Builder) passes(framePath string, channels []string, outputDir string) []Pass {
	dest := OutputPath(framePath, outputDir)
	passes := make([]Pass, 0, len(channels))
	for _, name := range channels {
		passes = append(passes, b.pass(framePath, name, dest))
	}
	return passes
}

func (b *Builder) pass(framePath, name, dest string) Pass {
	shape := ShapeFor(name)
	write := WriteTarget{Filename: dest, Layer: name}
	switch shape {
	case ShapeBeauty:
		write.Layer = "RGB"
	case ShapeAlpha:
		write.Filters = []Filter{CutoffFilter()}
	}
	src := Layer{Filename: framePath, Layer: name}
	return Pass{
		Name:          name,
		Input:         src,
		InputVariance: Layer{Filename: framePath, Layer: b.classifier.Classify(name)},
		Outputs:       []Output{{Read: src, Write: write}},
		Shape:         shape,
	}
}

// ShapeFor picks the pass layout for a channel. Only exact (case-folded)
// names qualify: "beauty" and "a".
func ShapeFor(name string) Shape {
	switch strings.ToLower(name) {
	case "beauty":
		return ShapeBeauty
	case "a":
		return ShapeAlpha
	default:
		return ShapeStandard
	}
}

// OutputPath joins outputDir with the last path segment of framePath.
// Both separators are honored so Windows-style templates resolve the same
// way on every platform.
func OutputPath(framePath, outputDir string) string {
	base := framePath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return filepath.Join(outputDir, base)
}
