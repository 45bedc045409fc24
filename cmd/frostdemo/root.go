// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/frost/config"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "frostdemo",
		Short: "Render a scene with a frosted glass panel",
		Long: `frostdemo draws a colorful scene, places a blur-behind panel over it
and writes the final frame to a PNG file. With --frames > 1 the panel slides
across the scene and is recaptured on every frame.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), v)
		},
	}

	def := config.Default()
	f := cmd.Flags()
	f.StringP("config", "c", "", "config file (YAML)")
	f.StringP("output", "o", "frost.png", "output PNG file")
	f.Int("width", 800, "image width")
	f.Int("height", 600, "image height")
	f.Int("frames", 1, "frames to render; the panel slides across the scene")
	f.String("algorithm", def.Algorithm, "blur algorithm (gaussian, box, bild, gpu)")
	f.Bool("gpu", false, `open the software wgpu device and register the "gpu" algorithm`)
	f.Float64("radius", def.Radius, "blur radius in capture-buffer pixels")
	f.Float64("scale-factor", 0, "capture downscale factor (0 = algorithm default)")
	f.String("overlay", "#FFFFFF30", "overlay tint, #RRGGBB[AA]")
	f.String("frame-clear", "", "capture fill color, #RRGGBB[AA]")
	f.BoolP("verbose", "v", false, "debug logging")

	for key, name := range map[string]string{
		"config":       "config",
		"output":       "output",
		"width":        "width",
		"height":       "height",
		"frames":       "frames",
		"algorithm":    "algorithm",
		"radius":       "radius",
		"scale_factor": "scale-factor",
		"overlay":      "overlay",
		"frame_clear":  "frame-clear",
		"verbose":      "verbose",
		"gpu":          "gpu",
	} {
		_ = v.BindPFlag(key, f.Lookup(name))
	}

	return cmd
}

// initConfig sets defaults, binds FROST_* variables and reads the config
// file if one was given.
func initConfig(v *viper.Viper) error {
	def := config.Default()
	v.SetDefault("algorithm", def.Algorithm)
	v.SetDefault("radius", def.Radius)
	v.SetDefault("scale_factor", def.ScaleFactor)
	v.SetDefault("overlay", "#FFFFFF30")
	v.SetDefault("frame_clear", "")
	v.SetDefault("auto_update", def.AutoUpdate)
	v.SetDefault("enabled", def.Enabled)

	v.SetEnvPrefix("FROST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("frostdemo: read config: %w", err)
		}
	}
	return nil
}

// loadConfig decodes the merged settings into a validated config.Config.
func loadConfig(v *viper.Viper) (config.Config, error) {
	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("frostdemo: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
