package scene

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Mug is the open cylinder forming the mug body.
type Mug struct {
	BaseRadius     float32 `toml:"base_radius"`
	TopRadius      float32 `toml:"top_radius"`
	Height         float32 `toml:"height"`
	RadialSegments int     `toml:"radial_segments"`
	HeightSegments int     `toml:"height_segments"`
}

// Handle is the torus hooked onto the mug's side.
type Handle struct {
	InnerRadius     float32 `toml:"inner_radius"`
	OuterRadius     float32 `toml:"outer_radius"`
	RadialSegments  int     `toml:"radial_segments"`
	TubularSegments int     `toml:"tubular_segments"`
}

// Pyramid stands on the ground beside the mug. Gap is the clearance
// between the mug's outer edge and the pyramid's near edge along X.
type Pyramid struct {
	BaseSize float32 `toml:"base_size"`
	Height   float32 `toml:"height"`
	Gap      float64 `toml:"gap"`
}

// Ground is the floor plane. Size is the half-extent, so corners land at
// (±Size, Level, ±Size).
type Ground struct {
	Size  float32 `toml:"size"`
	Level float32 `toml:"level"`
}

// Light is one point light of the rig.
type Light struct {
	Position  [3]float64 `toml:"position"`
	Color     [3]float64 `toml:"color"`
	Intensity float64    `toml:"intensity"`
}

// Config holds every tunable of the built-in scene. The zero value is not
// usable; start from DefaultConfig or Load.
type Config struct {
	Mug     Mug     `toml:"mug"`
	Handle  Handle  `toml:"handle"`
	Pyramid Pyramid `toml:"pyramid"`
	Ground  Ground  `toml:"ground"`

	Key       Light   `toml:"key_light"`
	Fill      Light   `toml:"fill_light"`
	Ambient   float64 `toml:"ambient"`
	Shininess float64 `toml:"shininess"`

	// Background is the clear color in linear 0..1 components.
	Background [3]float64 `toml:"background"`

	// AssetDir is searched for cat.jpg, handle.jpg and wood_image.jpg.
	// Objects whose image is missing fall back to a procedural texture.
	AssetDir string `toml:"asset_dir"`
}

// DefaultConfig returns the layout the renderer was built around: a unit
// mug at the origin with its handle on +X, a pyramid past the handle, a
// wide floor just under the mug's base, and a key/fill light pair.
func DefaultConfig() Config {
	return Config{
		Mug: Mug{
			BaseRadius:     0.5,
			TopRadius:      0.5,
			Height:         1.0,
			RadialSegments: 36,
			HeightSegments: 1,
		},
		Handle: Handle{
			InnerRadius:     0.1,
			OuterRadius:     0.2,
			RadialSegments:  36,
			TubularSegments: 100,
		},
		Pyramid: Pyramid{
			BaseSize: 1.0,
			Height:   1.0,
			Gap:      1.5,
		},
		Ground: Ground{
			Size:  5.0,
			Level: -0.27,
		},
		Key: Light{
			Position:  [3]float64{1, 1, 1},
			Color:     [3]float64{1, 1, 1},
			Intensity: 2.0,
		},
		Fill: Light{
			Position:  [3]float64{-1, 0.5, 1},
			Color:     [3]float64{1, 1, 1},
			Intensity: 1.0,
		},
		Ambient:    0.3,
		Shininess:  32,
		Background: [3]float64{0.1, 0.1, 0.1},
		AssetDir:   ".",
	}
}

// Load reads a TOML scene file layered over DefaultConfig: keys absent
// from the file keep their default values. Validation happens when the
// config is built, where generator errors name the offending field.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene config %s: %w", path, err)
	}
	return cfg, nil
}
