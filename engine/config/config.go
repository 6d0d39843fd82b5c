// Package config loads the demo's scene description from YAML or TOML, fills in defaults and
// applies the result to the light registry, camera and controller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/ltc"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a configuration file whose extension is neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Format selects the decoder.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from the file extension.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - Format: FormatYAML for .yaml and .yml, FormatTOML for .toml
//   - error: ErrUnknownFormat for anything else
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Config is the full scene description.
type Config struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	Engine EngineConfig `yaml:"engine" toml:"engine"`
	Camera CameraConfig `yaml:"camera" toml:"camera"`
	Lights LightsConfig `yaml:"lights" toml:"lights"`
	Scene  SceneConfig  `yaml:"scene" toml:"scene"`
	LTC    ltc.Paths    `yaml:"ltc" toml:"ltc"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// WindowConfig describes the window and swapchain.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	// Uncapped presents immediately instead of waiting for vertical sync.
	Uncapped bool `yaml:"uncapped" toml:"uncapped"`
	// MSAA is the sample count; 1 disables multisampling, anything else selects 4x.
	MSAA int `yaml:"msaa" toml:"msaa"`
	// Software forces the fallback adapter.
	Software bool `yaml:"software" toml:"software"`
}

// EngineConfig tunes the render loop.
type EngineConfig struct {
	TickRate   int  `yaml:"tick_rate" toml:"tick_rate"`
	FrameLimit int  `yaml:"frame_limit" toml:"frame_limit"`
	Profiling  bool `yaml:"profiling" toml:"profiling"`
}

// CameraConfig places the camera and sets the controller speeds.
type CameraConfig struct {
	Position  [3]float32 `yaml:"position" toml:"position"`
	Rotation  [3]float32 `yaml:"rotation" toml:"rotation"`
	Fov       float32    `yaml:"fov" toml:"fov"`
	Near      float32    `yaml:"near" toml:"near"`
	Far       float32    `yaml:"far" toml:"far"`
	MoveSpeed float32    `yaml:"move_speed" toml:"move_speed"`
	TurnSpeed float32    `yaml:"turn_speed" toml:"turn_speed"`
}

// LightsConfig lists the lights by kind. Entries beyond light.Capacity per kind are dropped
// by the registry.
type LightsConfig struct {
	Point []PointLightConfig `yaml:"point" toml:"point"`
	Spot  []SpotLightConfig  `yaml:"spot" toml:"spot"`
	Dir   []DirLightConfig   `yaml:"dir" toml:"dir"`
	Rect  []RectLightConfig  `yaml:"rect" toml:"rect"`
}

func (l LightsConfig) empty() bool {
	return len(l.Point) == 0 && len(l.Spot) == 0 && len(l.Dir) == 0 && len(l.Rect) == 0
}

type PointLightConfig struct {
	Position  [3]float32 `yaml:"position" toml:"position"`
	Color     [3]float32 `yaml:"color" toml:"color"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
}

// SpotLightConfig takes its cone angles in degrees.
type SpotLightConfig struct {
	Position  [3]float32 `yaml:"position" toml:"position"`
	Direction [3]float32 `yaml:"direction" toml:"direction"`
	Color     [3]float32 `yaml:"color" toml:"color"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
	InnerDeg  float32    `yaml:"inner_deg" toml:"inner_deg"`
	OuterDeg  float32    `yaml:"outer_deg" toml:"outer_deg"`
}

type DirLightConfig struct {
	Direction [3]float32 `yaml:"direction" toml:"direction"`
	Color     [3]float32 `yaml:"color" toml:"color"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
}

// RectLightConfig rotations are fractions of a full turn. Spin is added to
// (RotationY, RotationZ) every frame.
type RectLightConfig struct {
	Position  [3]float32 `yaml:"position" toml:"position"`
	Color     [3]float32 `yaml:"color" toml:"color"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
	Width     float32    `yaml:"width" toml:"width"`
	Height    float32    `yaml:"height" toml:"height"`
	RotationY float32    `yaml:"rotation_y" toml:"rotation_y"`
	RotationZ float32    `yaml:"rotation_z" toml:"rotation_z"`
	Spin      [2]float32 `yaml:"spin" toml:"spin"`
}

// SceneConfig describes the drawn geometry.
type SceneConfig struct {
	NoFloor    bool         `yaml:"no_floor" toml:"no_floor"`
	Cubes      []CubeConfig `yaml:"cubes" toml:"cubes"`
	ClearColor [4]float64   `yaml:"clear_color" toml:"clear_color"`
}

// CubeConfig places one cube. Rotation is in radians; Spin is added to it every frame.
type CubeConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
	Scale    [3]float32 `yaml:"scale" toml:"scale"`
	Spin     [3]float32 `yaml:"spin" toml:"spin"`
}

// Model returns the cube's model matrix for the given rotation.
func (c CubeConfig) Model(rotation [3]float32) [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:],
		c.Position[0], c.Position[1], c.Position[2],
		rotation[0], rotation[1], rotation[2],
		c.Scale[0], c.Scale[1], c.Scale[2],
	)
	return m
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

var white = [3]float32{1, 1, 1}

// Default returns the demo scene: the camera at (-4, 1, -4), one white 1x1 rect light at
// (4, 0.3, 5) turning slowly about Y, a floor and a cube at (0, 0, 4) spinning about Y.
//
// Returns:
//   - *Config: a new default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Rect Lights",
			Width:  1280,
			Height: 720,
			MSAA:   4,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Camera: CameraConfig{
			Position:  [3]float32{-4, 1, -4},
			Fov:       1.0,
			Near:      0.5,
			Far:       500,
			MoveSpeed: 5,
			TurnSpeed: 1.5,
		},
		Lights: LightsConfig{
			Rect: []RectLightConfig{{
				Position:  [3]float32{4, 0.3, 5},
				Color:     white,
				Intensity: 4,
				Width:     1,
				Height:    1,
				RotationY: 0,
				RotationZ: 0.5,
				Spin:      [2]float32{0.001, 0},
			}},
		},
		Scene: SceneConfig{
			Cubes: []CubeConfig{{
				Position: [3]float32{0, 0, 4},
				Scale:    white,
				Spin:     [3]float32{0, 0.01, 0},
			}},
			ClearColor: [4]float64{0, 0.2, 0.4, 1},
		},
		LTC: ltc.DefaultPaths(),
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and decodes a configuration file. Relative LTC table paths are resolved
// against the file's directory.
//
// Parameters:
//   - path: a .yaml, .yml or .toml file
//
// Returns:
//   - *Config: the decoded configuration with defaults applied
//   - error: ErrUnknownFormat, a read error or a decode error
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Decode reads a configuration in the given format and fills missing fields from Default.
//
// Parameters:
//   - r: the encoded configuration
//   - format: FormatYAML or FormatTOML
//
// Returns:
//   - *Config: the decoded configuration with defaults applied
//   - error: a decode error
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero fields from Default. When no lights are listed at all the
// default light set is used; per-light zero colors and sizes become white and 1.
func (c *Config) applyDefaults() {
	def := Default()

	c.Window.Title = common.Coalesce(c.Window.Title, def.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, def.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, def.Window.Height)
	c.Window.MSAA = common.Coalesce(c.Window.MSAA, def.Window.MSAA)

	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, def.Engine.TickRate)

	c.Camera.Position = common.Coalesce(c.Camera.Position, def.Camera.Position)
	c.Camera.Fov = common.Coalesce(c.Camera.Fov, def.Camera.Fov)
	c.Camera.Near = common.Coalesce(c.Camera.Near, def.Camera.Near)
	c.Camera.Far = common.Coalesce(c.Camera.Far, def.Camera.Far)
	c.Camera.MoveSpeed = common.Coalesce(c.Camera.MoveSpeed, def.Camera.MoveSpeed)
	c.Camera.TurnSpeed = common.Coalesce(c.Camera.TurnSpeed, def.Camera.TurnSpeed)

	if c.Lights.empty() {
		c.Lights = def.Lights
	}
	for i := range c.Lights.Point {
		p := &c.Lights.Point[i]
		p.Color = common.Coalesce(p.Color, white)
		p.Intensity = common.Coalesce(p.Intensity, 1)
	}
	for i := range c.Lights.Spot {
		s := &c.Lights.Spot[i]
		s.Direction = common.Coalesce(s.Direction, [3]float32{0, -1, 0})
		s.Color = common.Coalesce(s.Color, white)
		s.Intensity = common.Coalesce(s.Intensity, 1)
		s.InnerDeg = common.Coalesce(s.InnerDeg, 20)
		s.OuterDeg = common.Coalesce(s.OuterDeg, 30)
	}
	for i := range c.Lights.Dir {
		d := &c.Lights.Dir[i]
		d.Direction = common.Coalesce(d.Direction, [3]float32{0, -1, 0})
		d.Color = common.Coalesce(d.Color, white)
		d.Intensity = common.Coalesce(d.Intensity, 1)
	}
	for i := range c.Lights.Rect {
		r := &c.Lights.Rect[i]
		r.Color = common.Coalesce(r.Color, white)
		r.Intensity = common.Coalesce(r.Intensity, 1)
		r.Width = common.Coalesce(r.Width, 1)
		r.Height = common.Coalesce(r.Height, 1)
	}

	if c.Scene.Cubes == nil {
		c.Scene.Cubes = def.Scene.Cubes
	}
	for i := range c.Scene.Cubes {
		c.Scene.Cubes[i].Scale = common.Coalesce(c.Scene.Cubes[i].Scale, white)
	}
	c.Scene.ClearColor = common.Coalesce(c.Scene.ClearColor, def.Scene.ClearColor)

	c.LTC.Matrix = common.Coalesce(c.LTC.Matrix, def.LTC.Matrix)
	c.LTC.Amplitude = common.Coalesce(c.LTC.Amplitude, def.LTC.Amplitude)
	c.LTC.Filtered = common.Coalesce(c.LTC.Filtered, def.LTC.Filtered)

	c.Log.Level = common.Coalesce(c.Log.Level, def.Log.Level)
}

// resolve makes relative LTC paths relative to dir.
func (c *Config) resolve(dir string) {
	for _, p := range []*string{&c.LTC.Matrix, &c.LTC.Amplitude, &c.LTC.Filtered} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Apply registers every configured light with reg. Lights past a kind's capacity are
// dropped by the registry.
//
// Parameters:
//   - cfg: the configuration
//   - reg: the registry to fill
func Apply(cfg *Config, reg light.Registry) {
	for _, p := range cfg.Lights.Point {
		reg.AddPointLight(p.Position, p.Color, p.Intensity)
	}
	for _, s := range cfg.Lights.Spot {
		inner, outer := light.SpotConeFromDegrees(s.InnerDeg, s.OuterDeg)
		reg.AddSpotLight(s.Position, s.Color, s.Direction, s.Intensity, inner, outer)
	}
	for _, d := range cfg.Lights.Dir {
		reg.AddDirLight(d.Direction, d.Color, d.Intensity)
	}
	for _, r := range cfg.Lights.Rect {
		reg.AddRectLight(r.Position, r.Color, r.Intensity, r.Width, r.Height, r.RotationY, r.RotationZ)
	}
}

// CameraOptions converts the camera section into camera builder options.
//
// Parameters:
//   - aspect: the initial aspect ratio, usually width / height of the window
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions(aspect float32) []camera.CameraBuilderOption {
	cc := c.Camera
	return []camera.CameraBuilderOption{
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithRotation(cc.Rotation[0], cc.Rotation[1], cc.Rotation[2]),
		camera.WithFov(cc.Fov),
		camera.WithAspect(aspect),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
	}
}

// ControllerOptions converts the camera speeds into controller options.
func (c *Config) ControllerOptions() []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithMoveSpeed(c.Camera.MoveSpeed),
		camera.WithTurnSpeed(c.Camera.TurnSpeed),
	}
}

// ClearColor returns the scene's background color.
func (c *Config) ClearColor() renderer.Color {
	cc := c.Scene.ClearColor
	return renderer.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}

// PresentMode maps the window's Uncapped flag to a present mode.
func (c *Config) PresentMode() renderer.PresentMode {
	if c.Window.Uncapped {
		return renderer.PresentModeUncapped
	}
	return renderer.PresentModeVSync
}
