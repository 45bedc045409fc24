// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/blur"
	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF8000", color.NRGBA{R: 255, G: 128, A: 255}, false},
		{"#ffffff40", color.NRGBA{R: 255, G: 255, B: 255, A: 64}, false},
		{"102030", color.NRGBA{R: 16, G: 32, B: 48, A: 255}, false},
		{"  #00000000 ", color.NRGBA{}, false},
		{"#FFF", color.NRGBA{}, true},
		{"#GG0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	for _, s := range []string{"#FF8000", "#FFFFFF40", "#10203000"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatColor(c); got != s {
			t.Errorf("FormatColor(ParseColor(%q)) = %q", s, got)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("radius: 4\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Default()
	want.Radius = 4
	if cfg != want {
		t.Errorf("Parse() = %+v, want %+v", cfg, want)
	}
}

func TestParseFull(t *testing.T) {
	data := []byte(`
algorithm: box
radius: 12
scale_factor: 8
overlay: "#FFFFFF40"
frame_clear: "#202020"
auto_update: false
enabled: false
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Algorithm != "box" || cfg.Radius != 12 || cfg.ScaleFactor != 8 {
		t.Errorf("Parse() = %+v", cfg)
	}
	if cfg.AutoUpdate || cfg.Enabled {
		t.Errorf("booleans not decoded: %+v", cfg)
	}

	alg, err := cfg.NewAlgorithm()
	if err != nil {
		t.Fatalf("NewAlgorithm() error = %v", err)
	}
	if _, ok := alg.(*blur.Box); !ok {
		t.Errorf("NewAlgorithm() = %T, want *blur.Box", alg)
	}
	if alg.ScaleFactor() != 8 {
		t.Errorf("ScaleFactor() = %v, want 8", alg.ScaleFactor())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"negative scale factor", func(c *Config) { c.ScaleFactor = -2 }},
		{"upscaling factor", func(c *Config) { c.ScaleFactor = 0.5 }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "kawase" }},
		{"bad overlay", func(c *Config) { c.Overlay = "white" }},
		{"bad frame clear", func(c *Config) { c.FrameClear = "#12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	cfg := Default()
	cfg.Algorithm = "kawase"
	if err := cfg.Validate(); !errors.Is(err, blur.ErrUnknownAlgorithm) {
		t.Errorf("Validate() error = %v, want wrapping ErrUnknownAlgorithm", err)
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("radius: [1, 2")); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
	if _, err := Parse([]byte("radius: -3")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frost.yaml")
	if err := os.WriteFile(path, []byte("algorithm: bild\nscale_factor: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Algorithm != "bild" || cfg.ScaleFactor != 4 {
		t.Errorf("Load() = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

// zeroView is an unmeasured view that is also its own root.
type zeroView struct{}

func (zeroView) ScreenPosition() image.Point { return image.Point{} }
func (zeroView) Size() (int, int)            { return 0, 0 }
func (zeroView) FrameSource() frame.Source   { return nil }
func (zeroView) DrawInto(surface.Canvas)     {}

func TestOptionsApply(t *testing.T) {
	cfg := Default()
	cfg.Radius = 7
	cfg.Overlay = "#00000080"
	cfg.AutoUpdate = false

	alg, err := cfg.NewAlgorithm()
	if err != nil {
		t.Fatal(err)
	}

	c := frost.New(zeroView{}, zeroView{}, alg, cfg.Options()...)
	if c.BlurRadius() != 7 {
		t.Errorf("BlurRadius() = %v, want 7", c.BlurRadius())
	}
	if c.OverlayColor() != (color.NRGBA{A: 128}) {
		t.Errorf("OverlayColor() = %v, want {0 0 0 128}", c.OverlayColor())
	}
	if c.AutoUpdate() {
		t.Error("AutoUpdate() = true, want false")
	}
	if !c.Enabled() {
		t.Error("Enabled() = false, want true")
	}
}

func TestAlgorithmNameNormalized(t *testing.T) {
	cfg := Default()
	cfg.Algorithm = "  Gaussian "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	cfg.Algorithm = ""
	alg, err := cfg.NewAlgorithm()
	if err != nil {
		t.Fatalf("NewAlgorithm() error = %v", err)
	}
	if _, ok := alg.(*blur.Gaussian); !ok {
		t.Errorf("empty algorithm selected %T, want *blur.Gaussian", alg)
	}
}
