// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu composites frost blur output onto GPU surfaces.
//
// Target adapts a gpucontext.TextureDrawer to the surface.Canvas interface so
// a Controller can draw its blurred buffer straight into a gogpu frame:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    target, err := gpu.NewTarget(dc.AsTextureDrawer(), w, h)
//	    if err != nil {
//	        return
//	    }
//	    defer target.Release()
//	    panel.Draw(target)
//	})
//
// Blur runs a separable box blur compute kernel on a wgpu/hal device. The
// kernel is written in WGSL and compiled to SPIR-V with naga. Register binds
// it to a device and adds it to the blur registry:
//
//	dev, err := gpu.OpenDevice(gputypes.BackendVulkan)
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//	gpu.Register(dev.Device, dev.Queue)
//	alg, err := blur.New(gpu.AlgorithmName, blur.Options{ScaleFactor: 8})
package gpu

import "errors"

// Errors.
var (
	// ErrNoTextureCreator is returned when a drawer cannot create textures.
	ErrNoTextureCreator = errors.New("gpu: drawer has no texture creator")

	// ErrShaderCompile is returned when the blur kernel fails to compile.
	ErrShaderCompile = errors.New("gpu: blur kernel compilation failed")

	// ErrNilDevice is returned when a shader module is requested without
	// a device.
	ErrNilDevice = errors.New("gpu: nil device")

	// ErrNoBackend is returned when the requested backend is not registered.
	ErrNoBackend = errors.New("gpu: backend not available")

	// ErrNoAdapter is returned when a backend exposes no adapter.
	ErrNoAdapter = errors.New("gpu: no adapter found")
)
