// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import "github.com/gogpu/frost/frame"

// RedrawTrigger runs a capture step before every frame of the windows it is
// attached to.
//
// A blurred view and its root may live in different windows (a floating
// dialog blurring the main window, for example); the window delivering the
// notification is then not the one holding the root content, so the trigger
// subscribes to every distinct source it is given, exactly once each.
type RedrawTrigger struct {
	update  func()
	sources []frame.Source
}

// NewRedrawTrigger creates a trigger that calls update on every pre-draw.
func NewRedrawTrigger(update func()) *RedrawTrigger {
	return &RedrawTrigger{update: update}
}

// OnPreDraw runs the capture step. The frame always proceeds.
func (t *RedrawTrigger) OnPreDraw() bool {
	if t.update != nil {
		t.update()
	}
	return true
}

// Attach subscribes to each distinct non-nil source. Sources already
// attached are skipped.
func (t *RedrawTrigger) Attach(sources ...frame.Source) {
	for _, s := range sources {
		if s == nil || t.isAttached(s) {
			continue
		}
		s.AddPreDrawListener(t)
		t.sources = append(t.sources, s)
	}
}

// Detach unsubscribes from every attached source. Calling Detach when
// nothing is attached is a no-op.
func (t *RedrawTrigger) Detach() {
	for _, s := range t.sources {
		s.RemovePreDrawListener(t)
	}
	t.sources = nil
}

// Sources returns the attached sources in attachment order.
func (t *RedrawTrigger) Sources() []frame.Source {
	out := make([]frame.Source, len(t.sources))
	copy(out, t.sources)
	return out
}

func (t *RedrawTrigger) isAttached(s frame.Source) bool {
	for _, existing := range t.sources {
		if existing == s {
			return true
		}
	}
	return false
}
