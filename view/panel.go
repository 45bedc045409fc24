// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"image"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/surface"
)

// BlurPanel is a node that displays the blurred content of another node
// behind it, with its own Paint and children drawn on top.
type BlurPanel struct {
	*Node

	ctrl        *frost.Controller
	willNotDraw bool
	unwatch     []func()
}

// NewBlurPanel adds a panel with the given bounds to parent and starts
// blurring behind, which may live in another window. A nil parent creates a
// detached panel; the panel and behind may later move between windows and
// the blur follows them.
func NewBlurPanel(parent *Node, bounds image.Rectangle, behind *Node, alg frost.Algorithm, opts ...frost.Option) *BlurPanel {
	p := &BlurPanel{Node: NewNode(bounds, nil)}
	p.Node.draw = p.drawPanel
	if parent != nil {
		parent.Add(p.Node)
	}
	p.ctrl = frost.New(p, behind, alg, opts...)

	p.unwatch = append(p.unwatch, p.Node.WatchWindow(p.windowChanged))
	if behind != nil && behind != p.Node {
		p.unwatch = append(p.unwatch, behind.WatchWindow(p.windowChanged))
	}
	return p
}

func (p *BlurPanel) windowChanged() {
	frost.Logger().Debug("view: blur panel window changed", "attached", p.window != nil)
	p.ctrl.OnWindowChanged()
}

// Controller returns the panel's blur controller.
func (p *BlurPanel) Controller() *frost.Controller { return p.ctrl }

// SetWillNotDraw implements frost.WillNotDrawSetter.
func (p *BlurPanel) SetWillNotDraw(willNotDraw bool) { p.willNotDraw = willNotDraw }

// WillNotDraw reports whether the panel skips its own content.
func (p *BlurPanel) WillNotDraw() bool { return p.willNotDraw }

// SetBounds moves or resizes the panel. A size change reallocates the
// capture buffer.
func (p *BlurPanel) SetBounds(r image.Rectangle) {
	old := p.Bounds
	p.Bounds = r
	if old.Size() != r.Size() {
		frost.Logger().Debug("view: blur panel resized", "width", r.Dx(), "height", r.Dy())
		p.ctrl.OnSizeChanged()
	}
}

// Destroy stops blurring and detaches the panel from its parent.
func (p *BlurPanel) Destroy() {
	for _, unwatch := range p.unwatch {
		unwatch()
	}
	p.unwatch = nil
	p.ctrl.Destroy()
	if p.parent != nil {
		p.parent.Remove(p.Node)
	}
}

func (p *BlurPanel) drawPanel(c surface.Canvas) bool {
	status := p.ctrl.Draw(c)
	if !status.ShouldDrawChildren() {
		return false
	}
	if !p.willNotDraw && p.Paint != nil {
		p.Paint(c)
	}
	return true
}

var _ frost.WillNotDrawSetter = (*BlurPanel)(nil)
