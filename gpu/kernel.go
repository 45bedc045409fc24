// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/box_blur.wgsl
var boxBlurShaderSource string

// BlurKernelEntryPoint is the compute entry point of the blur kernel.
const BlurKernelEntryPoint = "box_blur"

// BlurWorkgroupSize is the workgroup edge length declared by the kernel.
const BlurWorkgroupSize = 8

// Blur directions, matching BlurParams.direction in the kernel.
const (
	DirectionHorizontal uint32 = 0
	DirectionVertical   uint32 = 1
)

// BlurParams mirrors the kernel's uniform block.
type BlurParams struct {
	Width     uint32
	Height    uint32
	Radius    uint32
	Direction uint32
}

// Bytes encodes the parameters in uniform buffer layout (little-endian).
func (p BlurParams) Bytes() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:], p.Width)
	binary.LittleEndian.PutUint32(buf[4:], p.Height)
	binary.LittleEndian.PutUint32(buf[8:], p.Radius)
	binary.LittleEndian.PutUint32(buf[12:], p.Direction)
	return buf
}

// DispatchSize returns the workgroup counts covering a width x height buffer.
func DispatchSize(width, height int) (x, y uint32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x = uint32((width + BlurWorkgroupSize - 1) / BlurWorkgroupSize)
	y = uint32((height + BlurWorkgroupSize - 1) / BlurWorkgroupSize)
	return x, y
}

// BlurKernelSource returns the WGSL source of the blur kernel.
func BlurKernelSource() string {
	return boxBlurShaderSource
}

var (
	kernelOnce  sync.Once
	kernelSPIRV []uint32
	kernelErr   error
)

// CompileBlurKernel compiles the blur kernel to SPIR-V.
// Compilation runs once; later calls return the cached result.
func CompileBlurKernel() ([]uint32, error) {
	kernelOnce.Do(func() {
		kernelSPIRV, kernelErr = compileWGSL(boxBlurShaderSource)
	})
	return kernelSPIRV, kernelErr
}

// NewBlurKernelModule creates a shader module holding the blur kernel.
// The caller owns the module and destroys it with device.DestroyShaderModule.
func NewBlurKernelModule(device hal.Device) (hal.ShaderModule, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	code, err := CompileBlurKernel()
	if err != nil {
		return nil, err
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "frost_box_blur",
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create blur kernel module: %w", err)
	}
	return module, nil
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not word aligned", ErrShaderCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}
