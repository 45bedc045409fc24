// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

// mockTexture records the uploaded pixels.
type mockTexture struct {
	width, height int
	data          []byte
	premultiplied bool
	destroyed     bool
}

func (m *mockTexture) Width() int              { return m.width }
func (m *mockTexture) Height() int             { return m.height }
func (m *mockTexture) SetPremultiplied(p bool) { m.premultiplied = p }
func (m *mockTexture) Destroy()                { m.destroyed = true }

func (m *mockTexture) at(x, y int) color.RGBA {
	i := (y*m.width + x) * 4
	return color.RGBA{R: m.data[i], G: m.data[i+1], B: m.data[i+2], A: m.data[i+3]}
}

// mockCreator creates mockTextures, optionally failing.
type mockCreator struct {
	textures []*mockTexture
	fail     bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.fail {
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: width, height: height, data: bytes.Clone(data)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

// drawCall is one DrawTexture invocation.
type drawCall struct {
	tex  *mockTexture
	x, y float32
}

// mockDrawer implements gpucontext.TextureDrawer.
type mockDrawer struct {
	creator *mockCreator
	draws   []drawCall
	failErr error
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator {
	if m.creator == nil {
		return nil
	}
	return m.creator
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.draws = append(m.draws, drawCall{tex: tex.(*mockTexture), x: x, y: y})
	return nil
}

func newMockDrawer() *mockDrawer {
	return &mockDrawer{creator: &mockCreator{}}
}

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name    string
		dc      gpucontext.TextureDrawer
		wantErr error
	}{
		{"valid", newMockDrawer(), nil},
		{"nil drawer", nil, ErrNoTextureCreator},
		{"no creator", &mockDrawer{}, ErrNoTextureCreator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewTarget(tt.dc, 80, 40)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTarget() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if target.Width() != 80 || target.Height() != 40 {
				t.Errorf("size = %dx%d, want 80x40", target.Width(), target.Height())
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.Tag() != surface.TagNone {
				t.Errorf("Tag() = %v, want none", target.Tag())
			}
		})
	}
}

func TestTargetTransformStack(t *testing.T) {
	target, _ := NewTarget(newMockDrawer(), 10, 10)

	target.Push()
	target.Translate(3, 4)
	target.Scale(2, 2)
	if x, y := target.Matrix().TransformPoint(1, 1); x != 5 || y != 6 {
		t.Errorf("TransformPoint(1,1) = (%v,%v), want (5,6)", x, y)
	}
	target.Pop()
	target.Pop()

	if target.Matrix() != surface.Identity() {
		t.Errorf("Matrix() after Pop = %+v, want identity", target.Matrix())
	}
}

func TestTargetFillRect(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 100, 100)

	target.Translate(10, 20)
	target.Scale(2, 2)
	target.FillRect(1, 1, 5, 3, color.RGBA{R: 255, A: 255})

	if len(dc.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dc.draws))
	}
	d := dc.draws[0]
	if d.x != 12 || d.y != 22 {
		t.Errorf("position = (%v,%v), want (12,22)", d.x, d.y)
	}
	if d.tex.width != 10 || d.tex.height != 6 {
		t.Errorf("texture = %dx%d, want 10x6", d.tex.width, d.tex.height)
	}
	if p := d.tex.at(5, 3); p != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("texel = %v, want opaque red", p)
	}
	if !d.tex.premultiplied {
		t.Error("texture not marked premultiplied")
	}
}

func TestTargetFillRectEmpty(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 10, 10)

	target.FillRect(0, 0, 0, 5, color.White)
	target.FillRect(0, 0, 5, -1, color.White)

	if len(dc.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(dc.draws))
	}
}

func TestTargetDrawImageScaled(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 80, 40)

	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+1], src.Pix[i+3] = 255, 255
	}

	target.Push()
	target.Scale(4, 4)
	target.DrawImage(src)
	target.Pop()

	if len(dc.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dc.draws))
	}
	d := dc.draws[0]
	if d.x != 0 || d.y != 0 || d.tex.width != 80 || d.tex.height != 40 {
		t.Fatalf("draw = %dx%d at (%v,%v), want 80x40 at (0,0)", d.tex.width, d.tex.height, d.x, d.y)
	}
	if p := d.tex.at(40, 20); p != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("interior texel = %v, want opaque green", p)
	}
}

func TestTargetDrawImageTranslated(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 50, 50)

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(1, 2, color.RGBA{B: 200, A: 255})

	target.Translate(7, 9)
	target.DrawImage(src)

	d := dc.draws[0]
	if d.x != 7 || d.y != 9 || d.tex.width != 4 || d.tex.height != 3 {
		t.Fatalf("draw = %dx%d at (%v,%v), want 4x3 at (7,9)", d.tex.width, d.tex.height, d.x, d.y)
	}
	if p := d.tex.at(1, 2); p != (color.RGBA{B: 200, A: 255}) {
		t.Errorf("texel = %v, want copied pixel", p)
	}
}

func TestTargetDrawImageNil(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 10, 10)
	target.DrawImage(nil)

	if len(dc.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(dc.draws))
	}
}

func TestTargetClear(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 6, 4)

	target.Scale(3, 3)
	target.Clear(color.RGBA{R: 10, G: 20, B: 30, A: 255})

	d := dc.draws[0]
	if d.tex.width != 6 || d.tex.height != 4 || d.x != 0 || d.y != 0 {
		t.Errorf("clear texture = %dx%d at (%v,%v), want 6x4 at origin", d.tex.width, d.tex.height, d.x, d.y)
	}
	if p := d.tex.at(5, 3); p != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("texel = %v", p)
	}
}

func TestTargetErrors(t *testing.T) {
	orig := frost.Logger()
	t.Cleanup(func() { frost.SetLogger(orig) })

	var logs bytes.Buffer
	frost.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	t.Run("upload", func(t *testing.T) {
		dc := newMockDrawer()
		dc.creator.fail = true
		target, _ := NewTarget(dc, 10, 10)

		target.FillRect(0, 0, 5, 5, color.White)
		target.FillRect(0, 0, 5, 5, color.Black)

		if target.Err() == nil || !strings.Contains(target.Err().Error(), "texture upload") {
			t.Errorf("Err() = %v, want upload error", target.Err())
		}
		if len(dc.draws) != 0 {
			t.Error("texture drawn after failed upload")
		}
	})

	t.Run("draw", func(t *testing.T) {
		drawErr := errors.New("device lost")
		dc := newMockDrawer()
		dc.failErr = drawErr
		target, _ := NewTarget(dc, 10, 10)

		target.FillRect(0, 0, 5, 5, color.White)
		if !errors.Is(target.Err(), drawErr) {
			t.Errorf("Err() = %v, want wrapping %v", target.Err(), drawErr)
		}
	})

	if !strings.Contains(logs.String(), "composite failed") {
		t.Errorf("failures not logged: %s", logs.String())
	}
}

func TestTargetRelease(t *testing.T) {
	dc := newMockDrawer()
	target, _ := NewTarget(dc, 10, 10)

	target.FillRect(0, 0, 2, 2, color.White)
	target.FillRect(4, 4, 2, 2, color.White)
	if target.Textures() != 2 {
		t.Fatalf("Textures() = %d, want 2", target.Textures())
	}

	target.Release()
	for i, tex := range dc.creator.textures {
		if !tex.destroyed {
			t.Errorf("texture %d not destroyed", i)
		}
	}
	if target.Textures() != 0 {
		t.Errorf("Textures() after Release = %d", target.Textures())
	}
}

// identityAlgorithm composites the capture buffer without blurring.
type identityAlgorithm struct{}

func (identityAlgorithm) ScaleFactor() float64                    { return 4 }
func (identityAlgorithm) PreferredFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (identityAlgorithm) Blur(b *image.RGBA, _ float64) *image.RGBA {
	return b
}
func (identityAlgorithm) CanReuseInputBuffer() bool { return true }
func (identityAlgorithm) Render(c surface.Canvas, b *image.RGBA) {
	c.DrawImage(b)
}
func (identityAlgorithm) Release() {}

// greenWindow is an 80x40 view that is also its own root.
type greenWindow struct{ n *frame.Notifier }

func (greenWindow) ScreenPosition() image.Point { return image.Point{} }
func (greenWindow) Size() (int, int)            { return 80, 40 }
func (w greenWindow) FrameSource() frame.Source { return w.n }

func (greenWindow) DrawInto(c surface.Canvas) {
	c.FillRect(0, 0, 80, 40, color.RGBA{G: 255, A: 255})
}

func TestTargetCompositesController(t *testing.T) {
	n := frame.NewNotifier("main")
	w := greenWindow{n: n}
	c := frost.New(w, w, identityAlgorithm{},
		frost.WithOverlayColor(color.NRGBA{R: 255, G: 255, B: 255, A: 64}))

	dc := newMockDrawer()
	target, _ := NewTarget(dc, 80, 40)
	defer target.Release()

	if got := c.Draw(target); got != frost.DrawComposited {
		t.Fatalf("Draw() = %v, want composited", got)
	}
	if len(dc.draws) != 2 {
		t.Fatalf("draws = %d, want blurred content and overlay", len(dc.draws))
	}

	content := dc.draws[0].tex
	if content.width != 80 || content.height != 40 {
		t.Errorf("content texture = %dx%d, want 80x40", content.width, content.height)
	}
	if p := content.at(40, 20); p != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("content texel = %v, want opaque green", p)
	}
	if overlay := dc.draws[1].tex.at(0, 0); overlay.A != 64 {
		t.Errorf("overlay alpha = %d, want 64", overlay.A)
	}
	if target.Err() != nil {
		t.Errorf("Err() = %v", target.Err())
	}
}
