package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mug.BaseRadius != 0.5 || cfg.Mug.TopRadius != 0.5 || cfg.Mug.Height != 1 {
		t.Errorf("mug = %+v, want radii 0.5/0.5 height 1", cfg.Mug)
	}
	if cfg.Mug.RadialSegments != 36 || cfg.Mug.HeightSegments != 1 {
		t.Errorf("mug segments = %d x %d, want 36 x 1", cfg.Mug.RadialSegments, cfg.Mug.HeightSegments)
	}
	if cfg.Handle.InnerRadius != 0.1 || cfg.Handle.OuterRadius != 0.2 {
		t.Errorf("handle radii = %v/%v, want 0.1/0.2", cfg.Handle.InnerRadius, cfg.Handle.OuterRadius)
	}
	if cfg.Handle.RadialSegments != 36 || cfg.Handle.TubularSegments != 100 {
		t.Errorf("handle segments = %d x %d, want 36 x 100", cfg.Handle.RadialSegments, cfg.Handle.TubularSegments)
	}
	if cfg.Pyramid.BaseSize != 1 || cfg.Pyramid.Height != 1 || cfg.Pyramid.Gap != 1.5 {
		t.Errorf("pyramid = %+v, want base 1 height 1 gap 1.5", cfg.Pyramid)
	}
	if cfg.Ground.Size != 5 || cfg.Ground.Level != -0.27 {
		t.Errorf("ground = %+v, want size 5 level -0.27", cfg.Ground)
	}
	if cfg.Key.Intensity != 2 || cfg.Fill.Intensity != 1 {
		t.Errorf("light intensities = %v/%v, want 2/1", cfg.Key.Intensity, cfg.Fill.Intensity)
	}
	if cfg.Key.Position != [3]float64{1, 1, 1} {
		t.Errorf("key position = %v, want (1,1,1)", cfg.Key.Position)
	}
	if cfg.Fill.Position != [3]float64{-1, 0.5, 1} {
		t.Errorf("fill position = %v, want (-1,0.5,1)", cfg.Fill.Position)
	}
	if cfg.Ambient != 0.3 {
		t.Errorf("ambient = %v, want 0.3", cfg.Ambient)
	}
	if cfg.Shininess != 32 {
		t.Errorf("shininess = %v, want 32", cfg.Shininess)
	}
	if cfg.Background != [3]float64{0.1, 0.1, 0.1} {
		t.Errorf("background = %v, want (0.1,0.1,0.1)", cfg.Background)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	doc := `
ambient = 0.5

[mug]
radial_segments = 12

[key_light]
intensity = 3.5
position = [0.0, 2.0, 4.0]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Ambient != 0.5 {
		t.Errorf("ambient = %v, want 0.5", cfg.Ambient)
	}
	if cfg.Mug.RadialSegments != 12 {
		t.Errorf("mug radial segments = %d, want 12", cfg.Mug.RadialSegments)
	}
	if cfg.Key.Intensity != 3.5 {
		t.Errorf("key intensity = %v, want 3.5", cfg.Key.Intensity)
	}
	if cfg.Key.Position != [3]float64{0, 2, 4} {
		t.Errorf("key position = %v, want (0,2,4)", cfg.Key.Position)
	}

	// untouched keys keep their defaults
	if cfg.Mug.BaseRadius != 0.5 {
		t.Errorf("mug base radius = %v, want default 0.5", cfg.Mug.BaseRadius)
	}
	if cfg.Fill.Intensity != 1 {
		t.Errorf("fill intensity = %v, want default 1", cfg.Fill.Intensity)
	}
	if cfg.Handle.TubularSegments != 100 {
		t.Errorf("handle tubular segments = %d, want default 100", cfg.Handle.TubularSegments)
	}
	if cfg.Shininess != 32 {
		t.Errorf("shininess = %v, want default 32", cfg.Shininess)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load on a missing file returned nil error")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte("[mug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load on malformed TOML returned nil error")
	}
	if !strings.Contains(err.Error(), "parse scene config") {
		t.Errorf("error = %q, want parse context with the file name", err)
	}
}
