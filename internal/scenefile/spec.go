// Package scenefile reads YAML scene descriptions and builds them into scene
// graphs, cameras, controls and debug-panel bindings.
package scenefile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// Spec is one demo: viewport policy, camera, controls, renderer settings, the
// object tree and the debug panel sliders.
type Spec struct {
	Name            string         `yaml:"name"`
	Viewport        ViewportSpec   `yaml:"viewport"`
	Loop            bool           `yaml:"loop"`
	PixelRatioLimit float32        `yaml:"pixel_ratio_limit"`
	Background      string         `yaml:"background"`
	Camera          CameraSpec     `yaml:"camera"`
	Controls        ControlsSpec   `yaml:"controls"`
	Renderer        RendererSpec   `yaml:"renderer"`
	Materials       []MaterialSpec `yaml:"materials"`
	Objects         []ObjectSpec   `yaml:"objects"`
	GUI             []SliderSpec   `yaml:"gui"`
}

// Viewport modes.
const (
	ViewportWindow = "window"
	ViewportFixed  = "fixed"
)

// ViewportSpec is either the live window size or a fixed size.
type ViewportSpec struct {
	Mode   string `yaml:"mode"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraSpec struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

type ControlsSpec struct {
	Enabled       bool    `yaml:"enabled"`
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
}

type RendererSpec struct {
	Shadows    bool   `yaml:"shadows"`
	ShadowType string `yaml:"shadow_type"`
}

// MaterialSpec declares a shared material. Type is "basic" or "standard".
type MaterialSpec struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Color     string   `yaml:"color"`
	Roughness *float32 `yaml:"roughness"`
	Metalness float32  `yaml:"metalness"`
}

// ObjectSpec is one node of the tree. Which fields apply depends on Type:
// group, mesh, axes, ambient_light, directional_light, spot_light, camera_helper.
type ObjectSpec struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Position [3]float32   `yaml:"position"`
	Rotation [3]Angle     `yaml:"rotation"`
	Scale    *[3]float32  `yaml:"scale"`
	Children []ObjectSpec `yaml:"children"`

	// mesh
	Geometry      *GeometrySpec `yaml:"geometry"`
	Material      string        `yaml:"material"`
	CastShadow    bool          `yaml:"cast_shadow"`
	ReceiveShadow bool          `yaml:"receive_shadow"`

	// axes
	Size float32 `yaml:"size"`

	// lights
	Color     string      `yaml:"color"`
	Intensity float32     `yaml:"intensity"`
	Target    [3]float32  `yaml:"target"`
	Shadow    *ShadowSpec `yaml:"shadow"`
	Distance  float32     `yaml:"distance"`
	Angle     Angle       `yaml:"angle"`
	Penumbra  float32     `yaml:"penumbra"`
	Decay     float32     `yaml:"decay"`

	// camera_helper
	Source string `yaml:"source"`
}

// GeometrySpec is box (width/height/depth), sphere (radius/width_segments/
// height_segments) or plane (width/height).
type GeometrySpec struct {
	Type           string  `yaml:"type"`
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	Depth          float32 `yaml:"depth"`
	Radius         float32 `yaml:"radius"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

type ShadowSpec struct {
	MapSize  [2]int  `yaml:"map_size"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Bias     float32 `yaml:"bias"`
	Fov      float32 `yaml:"fov"`
	HalfSize float32 `yaml:"half_size"`
}

// SliderSpec binds a debug panel slider to Object's Field. Object may name a
// material as "material:<name>".
type SliderSpec struct {
	Label  string  `yaml:"label"`
	Object string  `yaml:"object"`
	Field  string  `yaml:"field"`
	Min    float32 `yaml:"min"`
	Max    float32 `yaml:"max"`
	Step   float32 `yaml:"step"`
}

// Angle is radians. In YAML it is either a number of radians or a multiple of pi
// written like "0.3pi" or "-pi".
type Angle float32

func (a *Angle) UnmarshalYAML(value *yaml.Node) error {
	v, err := parseAngle(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = Angle(v)
	return nil
}

func parseAngle(s string) (float32, error) {
	s = strings.TrimSpace(s)
	if coeff, ok := strings.CutSuffix(s, "pi"); ok {
		coeff = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(coeff), "*"))
		switch coeff {
		case "":
			return math32.Pi, nil
		case "-":
			return -math32.Pi, nil
		}
		f, err := strconv.ParseFloat(coeff, 32)
		if err != nil {
			return 0, fmt.Errorf("angle %q: %w", s, err)
		}
		return float32(f) * math32.Pi, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("angle %q: %w", s, err)
	}
	return float32(f), nil
}
