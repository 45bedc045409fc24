// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"image"
	"slices"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/blur"
	"github.com/gogpu/frost/surface"
)

// AlgorithmName is the registry name of the GPU blur.
const AlgorithmName = "gpu"

// algorithmPriority ranks the GPU blur above the CPU algorithms.
const algorithmPriority = 200

const paramsSize = 16

// Blur is a frost.Algorithm that runs the box blur kernel on a wgpu/hal
// device: a horizontal pass into a second buffer, a vertical pass back, and
// a copy into a mappable staging buffer that is read into a new image.
//
// Storage buffers are sized to the capture buffer and recreated when it
// changes size. The first device failure is kept and returned by Err; from
// then on Blur runs the CPU box blur instead.
//
// Blur is NOT safe for concurrent use.
type Blur struct {
	device hal.Device
	queue  hal.Queue
	cpu    *blur.Box

	module     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	size    image.Point
	pixels  [2]hal.Buffer
	params  [2]hal.Buffer
	groups  [2]hal.BindGroup
	staging hal.Buffer

	err error
}

// NewBlur compiles the kernel and builds its compute pipeline on device.
func NewBlur(device hal.Device, queue hal.Queue, opts blur.Options) (*Blur, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	b := &Blur{device: device, queue: queue, cpu: blur.NewBox(opts)}
	if err := b.createPipeline(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// Register adds the GPU blur to the blur registry, bound to device and
// queue. It outranks the CPU algorithms, so blur.NewDefault picks it.
func Register(device hal.Device, queue hal.Queue) {
	blur.Register(AlgorithmName, algorithmPriority, func(opts blur.Options) (frost.Algorithm, error) {
		b, err := NewBlur(device, queue, opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

func (b *Blur) createPipeline() error {
	module, err := NewBlurKernelModule(b.device)
	if err != nil {
		return err
	}
	b.module = module

	b.layout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "frost_blur_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blur bind group layout: %w", err)
	}

	b.pipeLayout, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "frost_blur_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blur pipeline layout: %w", err)
	}

	b.pipeline, err = b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "frost_blur_pipeline",
		Layout:  b.pipeLayout,
		Compute: hal.ComputeState{Module: b.module, EntryPoint: BlurKernelEntryPoint},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blur pipeline: %w", err)
	}
	return nil
}

// ScaleFactor returns the configured downscale ratio.
func (b *Blur) ScaleFactor() float64 { return b.cpu.ScaleFactor() }

// PreferredFormat returns RGBA8, the layout the kernel packs.
func (b *Blur) PreferredFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// CanReuseInputBuffer reports false: the result is read back into a new
// image.
func (b *Blur) CanReuseInputBuffer() bool { return false }

// Render draws buf under the canvas transform.
func (b *Blur) Render(c surface.Canvas, buf *image.RGBA) { b.cpu.Render(c, buf) }

// Err returns the first device failure, or nil.
func (b *Blur) Err() error { return b.err }

// Blur blurs buf on the device and returns the result in a new image.
func (b *Blur) Blur(buf *image.RGBA, radius float64) *image.RGBA {
	if buf == nil {
		return nil
	}
	if b.err == nil {
		out, err := b.dispatch(buf, radius)
		if err == nil {
			return out
		}
		b.err = err
		frost.Logger().Warn("gpu: blur kernel failed, falling back to cpu", "error", err)
	}
	return b.cpu.Blur(cloneRGBA(buf), radius)
}

func (b *Blur) dispatch(buf *image.RGBA, radius float64) (*image.RGBA, error) {
	half := blur.Reach(radius, buf.Rect)
	if b.pipeline == nil || half == 0 {
		return cloneRGBA(buf), nil
	}

	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	if err := b.ensureBuffers(w, h); err != nil {
		return nil, err
	}
	size := uint64(w * h * 4)

	if err := b.queue.WriteBuffer(b.pixels[0], 0, packRows(buf)); err != nil {
		return nil, fmt.Errorf("gpu: upload pixels: %w", err)
	}
	for i, dir := range []uint32{DirectionHorizontal, DirectionVertical} {
		p := BlurParams{Width: uint32(w), Height: uint32(h), Radius: uint32(half), Direction: dir}
		if err := b.queue.WriteBuffer(b.params[i], 0, p.Bytes()); err != nil {
			return nil, fmt.Errorf("gpu: upload blur params: %w", err)
		}
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "frost_blur"})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frost_blur"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	x, y := DispatchSize(w, h)
	for _, group := range b.groups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "frost_blur_pass"})
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, group, nil)
		pass.Dispatch(x, y, 1)
		pass.End()
	}
	// The vertical pass writes back into the first buffer.
	encoder.CopyBufferToBuffer(b.pixels[0], b.staging, []hal.BufferCopy{{Size: size}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmd)

	if _, err := b.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("gpu: submit blur: %w", err)
	}
	if err := b.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("gpu: wait for blur: %w", err)
	}

	mapping, err := b.device.MapBuffer(b.staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gpu: map staging buffer: %w", err)
	}
	out := image.NewRGBA(buf.Rect)
	copy(out.Pix, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := b.device.UnmapBuffer(b.staging); err != nil {
		return nil, fmt.Errorf("gpu: unmap staging buffer: %w", err)
	}
	return out, nil
}

// ensureBuffers (re)creates the ping-pong buffers and their bind groups for
// a w x h buffer. Group 0 reads pixels[0] into pixels[1]; group 1 reads it
// back.
func (b *Blur) ensureBuffers(w, h int) error {
	if b.size == image.Pt(w, h) && b.staging != nil {
		return nil
	}
	b.releaseBuffers()

	size := uint64(w * h * 4)
	var err error
	for i := range b.pixels {
		b.pixels[i], err = b.createBuffer(fmt.Sprintf("frost_blur_pixels_%d", i), size,
			gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst|gputypes.BufferUsageCopySrc)
		if err != nil {
			return err
		}
		b.params[i], err = b.createBuffer(fmt.Sprintf("frost_blur_params_%d", i), paramsSize,
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
	}
	b.staging, err = b.createBuffer("frost_blur_staging", size,
		gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	for i := range b.groups {
		src, dst := b.pixels[i], b.pixels[1-i]
		b.groups[i], err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("frost_blur_group_%d", i),
			Layout: b.layout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: b.params[i].NativeHandle(), Size: paramsSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: src.NativeHandle(), Size: size}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dst.NativeHandle(), Size: size}},
			},
		})
		if err != nil {
			return fmt.Errorf("gpu: create blur bind group: %w", err)
		}
	}
	b.size = image.Pt(w, h)
	return nil
}

func (b *Blur) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	return buf, nil
}

func (b *Blur) releaseBuffers() {
	for i := range b.groups {
		if b.groups[i] != nil {
			b.device.DestroyBindGroup(b.groups[i])
			b.groups[i] = nil
		}
	}
	for _, bufs := range []*[2]hal.Buffer{&b.pixels, &b.params} {
		for i := range bufs {
			if bufs[i] != nil {
				b.device.DestroyBuffer(bufs[i])
				bufs[i] = nil
			}
		}
	}
	if b.staging != nil {
		b.device.DestroyBuffer(b.staging)
		b.staging = nil
	}
	b.size = image.Point{}
}

// Release destroys every device object. Idempotent.
func (b *Blur) Release() {
	b.releaseBuffers()
	if b.pipeline != nil {
		b.device.DestroyComputePipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.layout != nil {
		b.device.DestroyBindGroupLayout(b.layout)
		b.layout = nil
	}
	if b.module != nil {
		b.device.DestroyShaderModule(b.module)
		b.module = nil
	}
	b.cpu.Release()
}

// packRows returns the pixels of buf as tightly packed RGBA8 rows, which is
// the little-endian u32 layout the kernel reads.
func packRows(buf *image.RGBA) []byte {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	row := w * 4
	if buf.Stride == row {
		return buf.Pix[:row*h]
	}
	out := make([]byte, 0, row*h)
	for y := range h {
		off := y * buf.Stride
		out = append(out, buf.Pix[off:off+row]...)
	}
	return out
}

func cloneRGBA(buf *image.RGBA) *image.RGBA {
	return &image.RGBA{Pix: slices.Clone(buf.Pix), Stride: buf.Stride, Rect: buf.Rect}
}

var _ frost.Algorithm = (*Blur)(nil)
