// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"image"
	"sync"
)

// convolve blurs buf in place with a horizontal and a vertical kernel.
// The horizontal pass reads buf into a float buffer and the vertical pass
// writes back into buf, so in-place operation is safe.
// Edges are extended (clamped), which keeps a frosted panel from darkening
// towards its borders.
func convolve(buf *image.RGBA, kernelX, kernelY []float32) {
	b := buf.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return
	}
	if len(kernelX) <= 1 && len(kernelY) <= 1 {
		return
	}

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	blurHorizontal(buf, temp, width, height, kernelX)
	blurVertical(temp, buf, width, height, kernelY)
}

// blurHorizontal applies 1D horizontal convolution from buf to temp.
func blurHorizontal(buf *image.RGBA, temp []float32, width, height int, kernel []float32) {
	halfKernel := len(kernel) / 2
	b := buf.Bounds()

	for y := 0; y < height; y++ {
		row := buf.PixOffset(b.Min.X, b.Min.Y+y)

		for x := 0; x < width; x++ {
			var r, g, bl, a float32

			for k, weight := range kernel {
				kx := x + k - halfKernel
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}

				i := row + kx*4
				r += float32(buf.Pix[i+0]) * weight
				g += float32(buf.Pix[i+1]) * weight
				bl += float32(buf.Pix[i+2]) * weight
				a += float32(buf.Pix[i+3]) * weight
			}

			t := (y*width + x) * 4
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = bl
			temp[t+3] = a
		}
	}
}

// blurVertical applies 1D vertical convolution from temp to buf.
func blurVertical(temp []float32, buf *image.RGBA, width, height int, kernel []float32) {
	halfKernel := len(kernel) / 2
	b := buf.Bounds()

	for y := 0; y < height; y++ {
		row := buf.PixOffset(b.Min.X, b.Min.Y+y)

		for x := 0; x < width; x++ {
			var r, g, bl, a float32

			for k, weight := range kernel {
				ky := y + k - halfKernel
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}

				t := (ky*width + x) * 4
				r += temp[t+0] * weight
				g += temp[t+1] * weight
				bl += temp[t+2] * weight
				a += temp[t+3] * weight
			}

			i := row + x*4
			buf.Pix[i+0] = clampUint8(r)
			buf.Pix[i+1] = clampUint8(g)
			buf.Pix[i+2] = clampUint8(bl)
			buf.Pix[i+3] = clampUint8(a)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur passes. Capture buffers are small
// (the view size divided by the scale factor), so buffers start empty and
// grow on demand.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{}
	},
}

// getTempBuffer retrieves a temporary buffer with width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if cap(wrapper.data) < size {
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
