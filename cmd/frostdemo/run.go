// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/software"
	"github.com/spf13/viper"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/blur"
	"github.com/gogpu/frost/gpu"
	"github.com/gogpu/frost/surface"
	"github.com/gogpu/frost/view"
)

var errBadSize = errors.New("frostdemo: width and height must be positive")

func run(out io.Writer, v *viper.Viper) error {
	if v.GetBool("verbose") {
		frost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer frost.SetLogger(nil)
	}

	if v.GetBool("gpu") {
		dev, err := gpu.OpenDevice(gputypes.BackendEmpty)
		if err != nil {
			return fmt.Errorf("frostdemo: %w", err)
		}
		defer dev.Close()
		gpu.Register(dev.Device, dev.Queue)
		defer blur.Unregister(gpu.AlgorithmName)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	alg, err := cfg.NewAlgorithm()
	if err != nil {
		return err
	}

	width, height := v.GetInt("width"), v.GetInt("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", errBadSize, width, height)
	}
	frames := max(1, v.GetInt("frames"))

	win := view.NewWindow("main", image.Point{}, width, height)
	win.Root().Paint = paintImage(drawBackground(width, height))

	bounds := panelBounds(0, frames, width, height)
	panel := view.NewBlurPanel(win.Root(), bounds, win.Root(), alg, cfg.Options()...)
	defer panel.Destroy()
	panel.Paint = paintPanel(bounds.Dx(), bounds.Dy())

	canvas := surface.NewImageCanvas(width, height)
	for i := range frames {
		panel.SetBounds(panelBounds(i, frames, width, height))
		if !cfg.AutoUpdate {
			panel.Controller().UpdateBlur()
		}
		canvas.Erase()
		win.Frame(canvas)
	}

	output := v.GetString("output")
	if err := canvas.SavePNG(output); err != nil {
		return fmt.Errorf("frostdemo: save %s: %w", output, err)
	}

	if g, ok := alg.(*gpu.Blur); ok && g.Err() != nil {
		color.New(color.FgYellow).Fprintf(out, "! gpu blur fell back to cpu: %v\n", g.Err())
	}

	size := panel.Controller().CaptureSize()
	ok := color.New(color.FgGreen, color.Bold)
	ok.Fprintf(out, "✓ ")
	fmt.Fprintf(out, "wrote %s (%dx%d, %d frames)\n", output, width, height, frames)
	color.New(color.FgCyan).Fprintf(out, "  %s radius=%g capture=%dx%d\n",
		cfg.Algorithm, cfg.Radius, size.Width, size.Height)
	return nil
}
