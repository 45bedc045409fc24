// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads frost controller settings from YAML.
//
// A configuration file looks like:
//
//	algorithm: gaussian
//	radius: 12
//	scale_factor: 8
//	overlay: "#FFFFFF40"
//	frame_clear: "#202020"
//	auto_update: true
//	enabled: true
//
// Omitted keys keep their Default values.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/blur"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the settings of one blur-behind controller.
type Config struct {
	// Algorithm is a blur registry name ("gaussian", "box", "bild").
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`

	// Radius is the blur radius in capture-buffer pixels.
	Radius float64 `yaml:"radius" mapstructure:"radius"`

	// ScaleFactor is the capture downscale factor; 0 selects the
	// algorithm default.
	ScaleFactor float64 `yaml:"scale_factor" mapstructure:"scale_factor"`

	// Overlay is the tint drawn over the blurred content, "#RRGGBB[AA]".
	Overlay string `yaml:"overlay,omitempty" mapstructure:"overlay"`

	// FrameClear is the fill used before each capture, "#RRGGBB[AA]".
	// Empty clears to transparent.
	FrameClear string `yaml:"frame_clear,omitempty" mapstructure:"frame_clear"`

	AutoUpdate bool `yaml:"auto_update" mapstructure:"auto_update"`
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Algorithm:  "gaussian",
		Radius:     frost.DefaultBlurRadius,
		AutoUpdate: true,
		Enabled:    true,
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges, color syntax and the algorithm name.
func (c Config) Validate() error {
	if c.Radius < 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidConfig, c.Radius)
	}
	if c.ScaleFactor < 0 || math.IsNaN(c.ScaleFactor) || math.IsInf(c.ScaleFactor, 0) {
		return fmt.Errorf("%w: scale_factor %v", ErrInvalidConfig, c.ScaleFactor)
	}
	if c.ScaleFactor > 0 && c.ScaleFactor < 1 {
		return fmt.Errorf("%w: scale_factor %v upscales the capture", ErrInvalidConfig, c.ScaleFactor)
	}
	if _, ok := blur.Get(c.algorithm()); !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, blur.ErrUnknownAlgorithm, c.Algorithm)
	}
	if _, err := c.overlay(); err != nil {
		return fmt.Errorf("%w: overlay: %w", ErrInvalidConfig, err)
	}
	if _, err := c.frameClear(); err != nil {
		return fmt.Errorf("%w: frame_clear: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options translates the configuration into controller options.
// Call Validate first; invalid colors are skipped.
func (c Config) Options() []frost.Option {
	opts := []frost.Option{
		frost.WithBlurRadius(c.Radius),
		frost.WithAutoUpdate(c.AutoUpdate),
		frost.WithEnabled(c.Enabled),
	}
	if col, err := c.overlay(); err == nil && col != nil {
		opts = append(opts, frost.WithOverlayColor(col))
	}
	if col, err := c.frameClear(); err == nil && col != nil {
		opts = append(opts, frost.WithFrameClearColor(col))
	}
	return opts
}

// NewAlgorithm creates the configured algorithm from the blur registry.
func (c Config) NewAlgorithm() (frost.Algorithm, error) {
	return blur.New(c.algorithm(), blur.Options{ScaleFactor: c.ScaleFactor})
}

func (c Config) algorithm() string {
	name := strings.ToLower(strings.TrimSpace(c.Algorithm))
	if name == "" {
		return Default().Algorithm
	}
	return name
}

func (c Config) overlay() (color.Color, error)    { return optionalColor(c.Overlay) }
func (c Config) frameClear() (color.Color, error) { return optionalColor(c.FrameClear) }

func optionalColor(s string) (color.Color, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return ParseColor(s)
}
