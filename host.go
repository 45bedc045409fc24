// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"image"

	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

// Element is anything whose position can be queried in screen space.
// Root and view positions must be reported in the same coordinate space.
type Element interface {
	ScreenPosition() image.Point
}

// Root is the hierarchy whose content shows through the blurred view.
type Root interface {
	Element

	// DrawInto draws the full visual hierarchy into c.
	DrawInto(c surface.Canvas)

	// FrameSource returns the pre-draw stream of the window holding the root.
	FrameSource() frame.Source
}

// View is the element that displays the blurred content behind it.
type View interface {
	Element

	// Size returns the measured size of the view.
	Size() (width, height int)

	// FrameSource returns the pre-draw stream of the window holding the view.
	// It may differ from the root's, for example for a floating dialog.
	FrameSource() frame.Source
}

// WillNotDrawSetter is implemented by views that can skip their draw pass
// entirely while they have nothing to show.
type WillNotDrawSetter interface {
	SetWillNotDraw(willNotDraw bool)
}
