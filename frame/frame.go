// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame provides the per-surface "about to redraw" notification
// stream that drives blur capture.
//
// A host fires DispatchPreDraw once per frame, before it composites. Listeners
// run synchronously on the render goroutine, in subscription order. A listener
// returning false asks the host to skip the frame; blur capture always returns
// true.
package frame

import "sync"

// PreDrawListener is notified once per frame, before the draw pass.
//
// Listeners are compared by identity, so implementations must be comparable
// (pointer receivers are the norm).
type PreDrawListener interface {
	OnPreDraw() bool
}

// Source is a subscribable pre-draw notification stream.
// Adding a listener twice or removing an absent listener is a no-op.
type Source interface {
	AddPreDrawListener(l PreDrawListener)
	RemovePreDrawListener(l PreDrawListener)
}

// ListenerFunc adapts a function to PreDrawListener.
// Use NewListenerFunc; the pointer gives the adapter a stable identity.
type ListenerFunc struct {
	fn func() bool
}

// NewListenerFunc wraps fn as a listener.
func NewListenerFunc(fn func() bool) *ListenerFunc {
	return &ListenerFunc{fn: fn}
}

// OnPreDraw calls the wrapped function.
func (f *ListenerFunc) OnPreDraw() bool {
	if f.fn == nil {
		return true
	}
	return f.fn()
}

// Notifier is the reference Source implementation, one per window.
//
// Subscription is safe from any goroutine. Dispatch iterates a snapshot, so
// listeners may add or remove listeners (including themselves) while being
// notified; changes take effect on the next frame.
type Notifier struct {
	name string

	mu        sync.Mutex
	listeners []PreDrawListener
}

// NewNotifier creates an empty notifier. The name identifies the window in
// logs and tests.
func NewNotifier(name string) *Notifier {
	return &Notifier{name: name}
}

// Name returns the notifier name.
func (n *Notifier) Name() string {
	return n.name
}

// AddPreDrawListener subscribes l. Subscribing an already present listener
// does nothing.
func (n *Notifier) AddPreDrawListener(l PreDrawListener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.indexLocked(l) >= 0 {
		return
	}
	n.listeners = append(n.listeners, l)
}

// RemovePreDrawListener unsubscribes l. Removing an absent listener does
// nothing.
func (n *Notifier) RemovePreDrawListener(l PreDrawListener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	i := n.indexLocked(l)
	if i < 0 {
		return
	}
	n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
}

// Len returns the number of subscribed listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Has reports whether l is subscribed.
func (n *Notifier) Has(l PreDrawListener) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.indexLocked(l) >= 0
}

// DispatchPreDraw notifies every listener and reports whether the frame
// should proceed. All listeners are notified even if one of them vetoes.
func (n *Notifier) DispatchPreDraw() bool {
	n.mu.Lock()
	snapshot := make([]PreDrawListener, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	proceed := true
	for _, l := range snapshot {
		if !l.OnPreDraw() {
			proceed = false
		}
	}
	return proceed
}

func (n *Notifier) indexLocked(l PreDrawListener) int {
	for i, existing := range n.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}
