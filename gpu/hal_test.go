// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Fakes for the wgpu/hal interfaces. Each embeds the interface it fakes;
// methods not overridden panic through the nil embedded value.

type mockResource struct{ destroyed bool }

func (r *mockResource) Destroy() { r.destroyed = true }

// mockBuffer keeps its contents in memory so MapBuffer can hand them out.
type mockBuffer struct {
	mockResource
	handle uintptr
	label  string
	usage  gputypes.BufferUsage
	data   []byte
}

func (b *mockBuffer) NativeHandle() uintptr { return b.handle }

// mockDevice counts live objects and records what it was asked to build.
type mockDevice struct {
	hal.Device

	desc   *hal.ShaderModuleDescriptor
	err    error // returned by CreateShaderModule
	mapErr error

	live     int
	buffers  map[uintptr]*mockBuffer
	groups   []*hal.BindGroupDescriptor
	pipeline *hal.ComputePipelineDescriptor
	encoders []*mockEncoder
	freed    int
	waits    int
	closed   bool
}

func (d *mockDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.desc = desc
	d.live++
	return &mockResource{}, nil
}

func (d *mockDevice) DestroyShaderModule(hal.ShaderModule) { d.live-- }

func (d *mockDevice) CreateBindGroupLayout(*hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	d.live++
	return &mockResource{}, nil
}

func (d *mockDevice) DestroyBindGroupLayout(hal.BindGroupLayout) { d.live-- }

func (d *mockDevice) CreatePipelineLayout(*hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	d.live++
	return &mockResource{}, nil
}

func (d *mockDevice) DestroyPipelineLayout(hal.PipelineLayout) { d.live-- }

func (d *mockDevice) CreateComputePipeline(desc *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error) {
	d.pipeline = desc
	d.live++
	return &mockResource{}, nil
}

func (d *mockDevice) DestroyComputePipeline(hal.ComputePipeline) { d.live-- }

func (d *mockDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.buffers == nil {
		d.buffers = make(map[uintptr]*mockBuffer)
	}
	b := &mockBuffer{
		handle: uintptr(len(d.buffers) + 1),
		label:  desc.Label,
		usage:  desc.Usage,
		data:   make([]byte, desc.Size),
	}
	d.buffers[b.handle] = b
	d.live++
	return b, nil
}

func (d *mockDevice) DestroyBuffer(b hal.Buffer) {
	b.Destroy()
	d.live--
}

func (d *mockDevice) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	d.groups = append(d.groups, desc)
	d.live++
	return &mockResource{}, nil
}

func (d *mockDevice) DestroyBindGroup(hal.BindGroup) { d.live-- }

func (d *mockDevice) CreateCommandEncoder(*hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	e := &mockEncoder{}
	d.encoders = append(d.encoders, e)
	return e, nil
}

func (d *mockDevice) FreeCommandBuffer(hal.CommandBuffer) { d.freed++ }

func (d *mockDevice) WaitIdle() error {
	d.waits++
	return nil
}

func (d *mockDevice) MapBuffer(b hal.Buffer, offset, size uint64) (hal.BufferMapping, error) {
	if d.mapErr != nil {
		return hal.BufferMapping{}, d.mapErr
	}
	data := b.(*mockBuffer).data[offset : offset+size]
	return hal.BufferMapping{Ptr: unsafe.Pointer(&data[0]), IsCoherent: true}, nil
}

func (d *mockDevice) UnmapBuffer(hal.Buffer) error { return nil }

func (d *mockDevice) Destroy() { d.closed = true }

// buffer returns the buffer created with label.
func (d *mockDevice) buffer(label string) *mockBuffer {
	for _, b := range d.buffers {
		if b.label == label && !b.destroyed {
			return b
		}
	}
	return nil
}

type bufferWrite struct {
	buf  *mockBuffer
	data []byte
}

// mockQueue applies writes to buffer memory and counts submissions.
type mockQueue struct {
	hal.Queue

	writes    []bufferWrite
	submits   int
	submitErr error
}

func (q *mockQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	b := buf.(*mockBuffer)
	copy(b.data[offset:], data)
	q.writes = append(q.writes, bufferWrite{buf: b, data: append([]byte(nil), data...)})
	return nil
}

func (q *mockQueue) Submit([]hal.CommandBuffer) (uint64, error) {
	if q.submitErr != nil {
		return 0, q.submitErr
	}
	q.submits++
	return uint64(q.submits), nil
}

// mockEncoder records compute passes. Buffer copies run immediately;
// dispatches do nothing.
type mockEncoder struct {
	hal.CommandEncoder

	passes []*mockPass
	copies int
	ended  bool
}

func (e *mockEncoder) BeginEncoding(string) error { return nil }

func (e *mockEncoder) EndEncoding() (hal.CommandBuffer, error) {
	e.ended = true
	return &mockResource{}, nil
}

func (e *mockEncoder) DiscardEncoding() {}

func (e *mockEncoder) CopyBufferToBuffer(src, dst hal.Buffer, regions []hal.BufferCopy) {
	s, d := src.(*mockBuffer), dst.(*mockBuffer)
	for _, r := range regions {
		copy(d.data[r.DstOffset:r.DstOffset+r.Size], s.data[r.SrcOffset:r.SrcOffset+r.Size])
	}
	e.copies++
}

func (e *mockEncoder) BeginComputePass(*hal.ComputePassDescriptor) hal.ComputePassEncoder {
	p := &mockPass{}
	e.passes = append(e.passes, p)
	return p
}

type mockPass struct {
	hal.ComputePassEncoder

	pipeline   hal.ComputePipeline
	group      hal.BindGroup
	dispatches [][3]uint32
	ended      bool
}

func (p *mockPass) SetPipeline(pl hal.ComputePipeline)                { p.pipeline = pl }
func (p *mockPass) SetBindGroup(_ uint32, g hal.BindGroup, _ []uint32) { p.group = g }
func (p *mockPass) Dispatch(x, y, z uint32)                           { p.dispatches = append(p.dispatches, [3]uint32{x, y, z}) }
func (p *mockPass) End()                                              { p.ended = true }

// mockBackend exposes a fixed adapter list.
type mockBackend struct {
	variant  gputypes.Backend
	adapters []hal.ExposedAdapter
	instance *mockInstance
}

func (b *mockBackend) Variant() gputypes.Backend { return b.variant }

func (b *mockBackend) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	b.instance = &mockInstance{adapters: b.adapters}
	return b.instance, nil
}

type mockInstance struct {
	hal.Instance

	adapters  []hal.ExposedAdapter
	destroyed bool
}

func (i *mockInstance) EnumerateAdapters(hal.Surface) []hal.ExposedAdapter { return i.adapters }
func (i *mockInstance) Destroy()                                          { i.destroyed = true }

type mockAdapter struct {
	hal.Adapter

	device *mockDevice
	err    error
}

func (a *mockAdapter) Open(gputypes.Features, gputypes.Limits) (hal.OpenDevice, error) {
	if a.err != nil {
		return hal.OpenDevice{}, a.err
	}
	return hal.OpenDevice{Device: a.device, Queue: &mockQueue{}}, nil
}
