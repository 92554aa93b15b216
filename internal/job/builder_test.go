package job

import (
	"path/filepath"
	"reflect"
	"testing"
)

const template = "/frames/shot.####.exr"

func TestBuild_SettingsAndPasses(t *testing.T) {
	doc := DefaultBuilder().Build(template, []string{"beauty", "diffuse", "A"}, "/frames", "1001-1010")

	s := doc.Settings
	for name, l := range map[string]Layer{
		"albedo":          s.Albedo,
		"albedo_variance": s.AlbedoVariance,
		"normal":          s.Normal,
		"normal_variance": s.NormalVariance,
		"sample_count":    s.SampleCount,
		"flow":            s.Flow,
	} {
		if l.Filename != template {
			t.Errorf("settings.%s filename = %q, want %q", name, l.Filename, template)
		}
	}
	if s.Albedo.Layer != "albedo" || s.AlbedoVariance.Layer != "albedo_mse" {
		t.Errorf("albedo layers = %q/%q", s.Albedo.Layer, s.AlbedoVariance.Layer)
	}
	if s.Normal.Layer != "normal" || s.NormalVariance.Layer != "normal_mse" {
		t.Errorf("normal layers = %q/%q", s.Normal.Layer, s.NormalVariance.Layer)
	}
	if s.SampleCount.Layer != "sampleCount" {
		t.Errorf("sample_count layer = %q", s.SampleCount.Layer)
	}
	if s.Flow.Layer != "Ci" {
		t.Errorf("flow layer = %q, want Ci", s.Flow.Layer)
	}
	if s.FrameInclude != "1001-1010" {
		t.Errorf("frame-include = %q", s.FrameInclude)
	}
	if !s.Progress {
		t.Error("progress should be true")
	}
	if s.Parameters != DefaultParameters || s.Topology != DefaultTopology {
		t.Errorf("resources = %q, %q", s.Parameters, s.Topology)
	}
	if s.Asymmetry != 0.0 || s.Tiles != [2]int{1, 1} {
		t.Errorf("asymmetry/tiles = %v/%v", s.Asymmetry, s.Tiles)
	}

	if len(doc.Passes) != 3 {
		t.Fatalf("got %d passes, want 3", len(doc.Passes))
	}
	wantShapes := []Shape{ShapeBeauty, ShapeStandard, ShapeAlpha}
	wantNames := []string{"beauty", "diffuse", "A"}
	for i, p := range doc.Passes {
		if p.Name != wantNames[i] {
			t.Errorf("pass[%d].Name = %q, want %q", i, p.Name, wantNames[i])
		}
		if p.Shape != wantShapes[i] {
			t.Errorf("pass[%d].Shape = %v, want %v", i, p.Shape, wantShapes[i])
		}
	}
}

func TestBuild_BeautyShape(t *testing.T) {
	for _, name := range []string{"beauty", "Beauty", "BEAUTY"} {
		t.Run(name, func(t *testing.T) {
			doc := DefaultBuilder().Build(template, []string{name}, "/out", "1-2")
			p := doc.Passes[0]
			if len(p.Outputs) != 1 {
				t.Fatalf("got %d outputs, want 1", len(p.Outputs))
			}
			w := p.Outputs[0].Write
			if w.Layer != "RGB" {
				t.Errorf("write layer = %q, want RGB", w.Layer)
			}
			if len(w.Filters) != 0 {
				t.Errorf("beauty should carry no filter, got %v", w.Filters)
			}
			if p.Outputs[0].Read.Layer != name {
				t.Errorf("read layer = %q, want %q", p.Outputs[0].Read.Layer, name)
			}
		})
	}
}

func TestBuild_AlphaShape(t *testing.T) {
	doc := DefaultBuilder().Build(template, []string{"A"}, "/out", "1-2")
	p := doc.Passes[0]
	w := p.Outputs[0].Write
	if w.Layer != "A" {
		t.Errorf("write layer = %q, want A", w.Layer)
	}
	want := []Filter{{Type: "cutoff", MinValue: 0.0, MinCutoff: 0.00001, MaxValue: 1.0, MaxCutoff: 0.999}}
	if !reflect.DeepEqual(w.Filters, want) {
		t.Errorf("filters = %+v, want %+v", w.Filters, want)
	}
	if p.InputVariance.Layer != "mse" {
		t.Errorf("alpha variance = %q, want mse", p.InputVariance.Layer)
	}
}

func TestBuild_AlphaIsExactMatchOnly(t *testing.T) {
	doc := DefaultBuilder().Build(template, []string{"alpha", "a", "matte_a"}, "/out", "1-2")
	wantShapes := []Shape{ShapeStandard, ShapeAlpha, ShapeStandard}
	for i, p := range doc.Passes {
		if p.Shape != wantShapes[i] {
			t.Errorf("%s: shape = %v, want %v", p.Name, p.Shape, wantShapes[i])
		}
		hasFilter := len(p.Outputs[0].Write.Filters) > 0
		if hasFilter != (wantShapes[i] == ShapeAlpha) {
			t.Errorf("%s: filter present = %v", p.Name, hasFilter)
		}
	}
}

func TestBuild_StandardDiffuse(t *testing.T) {
	doc := DefaultBuilder().Build(template, []string{"diffuse"}, "/out", "1-2")
	p := doc.Passes[0]
	if p.InputVariance.Layer != "diffuse_mse" {
		t.Errorf("variance = %q, want diffuse_mse", p.InputVariance.Layer)
	}
	w := p.Outputs[0].Write
	if w.Layer != "diffuse" || len(w.Filters) != 0 {
		t.Errorf("write = %+v, want unfiltered diffuse", w)
	}
	if p.Input != (Layer{Filename: template, Layer: "diffuse"}) {
		t.Errorf("input = %+v", p.Input)
	}
	if p.InputVariance.Filename != p.Input.Filename {
		t.Errorf("input and variance come from different files: %q vs %q", p.Input.Filename, p.InputVariance.Filename)
	}
}

func TestBuild_PreservesOrderAndCount(t *testing.T) {
	names := []string{"specular", "albedo", "N", "lpe.rim", "diffuse", "specular"}
	doc := DefaultBuilder().Build(template, names, "/out", "1-2")
	if len(doc.Passes) != len(names) {
		t.Fatalf("got %d passes, want %d", len(doc.Passes), len(names))
	}
	for i, p := range doc.Passes {
		if p.Name != names[i] {
			t.Errorf("pass[%d] = %q, want %q", i, p.Name, names[i])
		}
	}
}

func TestBuild_EmptyChannels(t *testing.T) {
	doc := DefaultBuilder().Build(template, nil, "/out", "1-2")
	if len(doc.Passes) != 0 {
		t.Errorf("got %d passes, want 0", len(doc.Passes))
	}
	if doc.Settings.FrameInclude != "1-2" {
		t.Errorf("settings not populated: %+v", doc.Settings)
	}
}

func TestBuild_OutputPathSameForEveryChannel(t *testing.T) {
	out := filepath.Join("/renders", "FILTERED")
	doc := DefaultBuilder().Build(template, []string{"beauty", "A", "diffuse"}, out, "1-2")
	want := filepath.Join(out, "shot.####.exr")
	for _, p := range doc.Passes {
		if got := p.Outputs[0].Write.Filename; got != want {
			t.Errorf("%s: write filename = %q, want %q", p.Name, got, want)
		}
		if got := p.Outputs[0].Read.Filename; got != template {
			t.Errorf("%s: read filename = %q, want %q", p.Name, got, template)
		}
	}
}

func TestBuild_CustomDefaults(t *testing.T) {
	d := Defaults{Parameters: "/p.param", Topology: "/t.topo", Asymmetry: 0.25, Tiles: [2]int{2, 3}}
	b := NewBuilder(stubClassifier("var"), d)
	doc := b.Build(template, []string{"x"}, "/out", "1-2")
	s := doc.Settings
	if s.Parameters != "/p.param" || s.Topology != "/t.topo" || s.Asymmetry != 0.25 || s.Tiles != [2]int{2, 3} {
		t.Errorf("settings ignored defaults: %+v", s)
	}
	if doc.Passes[0].InputVariance.Layer != "var" {
		t.Errorf("injected classifier not used: %q", doc.Passes[0].InputVariance.Layer)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		framePath string
		outputDir string
		want      string
	}{
		{"unix template", "/frames/shot.####.exr", "/frames/FILTERED", filepath.Join("/frames/FILTERED", "shot.####.exr")},
		{"windows template", `C:\renders\shot.####.exr`, "/out", filepath.Join("/out", "shot.####.exr")},
		{"bare name", "shot.####.exr", "/out", filepath.Join("/out", "shot.####.exr")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.framePath, tt.outputDir); got != tt.want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.framePath, tt.outputDir, got, tt.want)
			}
		})
	}
}

type stubClassifier string

func (s stubClassifier) Classify(string) string { return string(s) }
