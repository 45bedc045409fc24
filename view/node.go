// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view is a minimal retained-mode host for frost.
//
// A Window owns a tree of Nodes and a frame.Notifier. Window.Frame fires the
// pre-draw notification, then draws the tree into a canvas. BlurPanel is a
// node that shows the blurred content of another node behind it.
//
//	main := view.NewWindow("main", image.Pt(0, 0), 800, 600)
//	main.Root().Paint = drawBackground
//
//	panel := view.NewBlurPanel(main.Root(), image.Rect(100, 100, 500, 300),
//	    main.Root(), blur.NewGaussian(blur.Options{}))
//	panel.Paint = drawLabel
//
//	canvas := surface.NewImageCanvas(800, 600)
//	main.Frame(canvas)
package view

import (
	"image"
	"slices"

	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

// Node is a rectangle in a view tree.
//
// Bounds are relative to the parent. Paint draws the node's own content in
// local coordinates, with (0, 0) at the node's top-left corner. Children are
// drawn after the node, in insertion order.
type Node struct {
	Bounds image.Rectangle
	Paint  func(c surface.Canvas)
	Hidden bool

	parent   *Node
	window   *Window
	children []*Node
	watchers []*windowWatch

	// draw replaces Paint for specialized nodes. It returns whether the
	// children should be drawn.
	draw func(c surface.Canvas) bool
}

// NewNode creates a detached node.
func NewNode(bounds image.Rectangle, paint func(c surface.Canvas)) *Node {
	return &Node{Bounds: bounds, Paint: paint}
}

// Add appends child to n, detaching it from its previous parent. A child
// moving between windows notifies its window watchers once.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.unlink(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.setWindow(n.window)
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	if !n.unlink(child) {
		return
	}
	child.setWindow(nil)
}

func (n *Node) unlink(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Children returns the child nodes.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Window returns the window holding the node, or nil when detached.
func (n *Node) Window() *Window { return n.window }

// Size returns the node size.
func (n *Node) Size() (int, int) {
	return n.Bounds.Dx(), n.Bounds.Dy()
}

// ScreenPosition returns the node's top-left corner in screen coordinates.
func (n *Node) ScreenPosition() image.Point {
	p := image.Point{}
	for cur := n; cur != nil; cur = cur.parent {
		p = p.Add(cur.Bounds.Min)
	}
	if n.window != nil {
		p = p.Add(n.window.origin)
	}
	return p
}

// FrameSource returns the pre-draw stream of the node's window.
func (n *Node) FrameSource() frame.Source {
	if n.window == nil {
		return nil
	}
	return n.window.notifier
}

// DrawInto draws the node and its subtree into c, in the node's local
// coordinates.
func (n *Node) DrawInto(c surface.Canvas) {
	if n.Hidden {
		return
	}

	drawChildren := true
	if n.draw != nil {
		drawChildren = n.draw(c)
	} else if n.Paint != nil {
		n.Paint(c)
	}
	if !drawChildren {
		return
	}

	for _, child := range n.children {
		c.Push()
		c.Translate(float64(child.Bounds.Min.X), float64(child.Bounds.Min.Y))
		child.DrawInto(c)
		c.Pop()
	}
}

// windowWatch is a callback registered with WatchWindow.
type windowWatch struct {
	fn func()
}

// WatchWindow registers fn to run after the node, or one of its ancestors,
// moves to another window or is attached to or detached from one. The
// returned function unregisters fn.
func (n *Node) WatchWindow(fn func()) (cancel func()) {
	w := &windowWatch{fn: fn}
	n.watchers = append(n.watchers, w)
	return func() {
		if i := slices.Index(n.watchers, w); i >= 0 {
			n.watchers = slices.Delete(n.watchers, i, i+1)
		}
	}
}

// setWindow updates the whole subtree before running any watcher, so a
// watcher always sees consistent windows.
func (n *Node) setWindow(w *Window) {
	var fired []*windowWatch
	n.assignWindow(w, &fired)
	for _, watch := range fired {
		watch.fn()
	}
}

func (n *Node) assignWindow(w *Window, fired *[]*windowWatch) {
	if n.window != w {
		*fired = append(*fired, n.watchers...)
	}
	n.window = w
	for _, child := range n.children {
		child.assignWindow(w, fired)
	}
}
