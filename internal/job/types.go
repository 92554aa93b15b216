package job

// FileName is the job document name written into the output folder.
const FileName = "rdm_denoise_config.json"

// Layer references one channel inside a frame sequence.
type Layer struct {
	Filename string `json:"filename"`
	Layer    string `json:"layer"`
}

// Filter is a post-process applied to a written layer. Only the cutoff
// (clamp) filter is produced today.
type Filter struct {
	Type      string  `json:"type"`
	MinValue  float64 `json:"minValue"`
	MinCutoff float64 `json:"minCutoff"`
	MaxValue  float64 `json:"maxValue"`
	MaxCutoff float64 `json:"maxCutoff"`
}

// CutoffFilter clamps alpha so near-zero and near-one values snap to 0 and 1.
func CutoffFilter() Filter {
	return Filter{
		Type:      "cutoff",
		MinValue:  0.0,
		MinCutoff: 0.00001,
		MaxValue:  1.0,
		MaxCutoff: 0.999,
	}
}

// WriteTarget is the destination of an output directive.
type WriteTarget struct {
	Filename string   `json:"filename"`
	Layer    string   `json:"layer"`
	Filters  []Filter `json:"filters,omitempty"`
}

// Output reads a layer from the source sequence and writes the denoised
// result to Write.
type Output struct {
	Read  Layer       `json:"read"`
	Write WriteTarget `json:"write"`
}

// Shape selects the output layout of a pass.
type Shape int

const (
	ShapeStandard Shape = iota
	ShapeBeauty
	ShapeAlpha
)

func (s Shape) String() string {
	switch s {
	case ShapeBeauty:
		return "beauty"
	case ShapeAlpha:
		return "alpha"
	default:
		return "standard"
	}
}

// Pass is the per-channel entry of the job document.
type Pass struct {
	Name          string   `json:"name"`
	Input         Layer    `json:"input"`
	InputVariance Layer    `json:"input_variance"`
	Outputs       []Output `json:"outputs"`

	Shape Shape `json:"-"`
}

// Settings is the global block of the job document. Field order matches
// the order denoise_batch documents it in.
type Settings struct {
	Progress       bool    `json:"progress"`
	Albedo         Layer   `json:"albedo"`
	AlbedoVariance Layer   `json:"albedo_variance"`
	Normal         Layer   `json:"normal"`
	NormalVariance Layer   `json:"normal_variance"`
	SampleCount    Layer   `json:"sample_count"`
	Flow           Layer   `json:"flow"`
	FrameInclude   string  `json:"frame-include"`
	Parameters     string  `json:"parameters"`
	Topology       string  `json:"topology"`
	Asymmetry      float64 `json:"asymmetry"`
	Tiles          [2]int  `json:"tiles"`
}

// Document is the full job handed to denoise_batch.
type Document struct {
	Settings Settings `json:"settings"`
	Passes   []Pass   `json:"passes"`
}

// Defaults holds the fixed, environment-relative values copied into every
// Settings block.
type Defaults struct {
	Parameters string
	Topology   string
	Asymmetry  float64
	Tiles      [2]int
}

// Default resource locations, relative to the RenderMan install. The
// denoiser expands ${RMANTREE} itself.
const (
	DefaultParameters = "${RMANTREE}/lib/denoise/20970-renderman.param"
	DefaultTopology   = "${RMANTREE}/lib/denoise/full_w7_4sv2_sym_gen2.topo"
)

// DefaultDefaults returns the stock RenderMan settings.
func DefaultDefaults() Defaults {
	return Defaults{
		Parameters: DefaultParameters,
		Topology:   DefaultTopology,
		Asymmetry:  0.0,
		Tiles:      [2]int{1, 1},
	}
}
