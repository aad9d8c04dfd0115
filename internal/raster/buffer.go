package raster

import (
	"image"
)

// Buffer is a flat, row-major RGBA pixel buffer.
//
// Pix holds 4 bytes per pixel (R, G, B, A) for a total length of
// 4*Width*Height. The pipeline treats the buffer as immutable input;
// only Despeckle mutates it, and only when the caller asks for it.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed (fully transparent black) buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// FromImage converts any image.Image into a Buffer.
//
// The image's bounds offset is discarded: pixel (Min.X, Min.Y) of the
// source becomes (0, 0) of the buffer. 16-bit color is scaled down to
// 8 bits per channel.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())

	// Fast path for the common decoded types.
	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < b.Height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*b.Width]
			copy(b.Pix[y*4*b.Width:], row)
		}
		return b
	case *image.NRGBA:
		// Floor plans are opaque in practice; treat NRGBA channels as
		// premultiplied-equivalent rather than paying per-pixel division.
		for y := 0; y < b.Height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*b.Width]
			copy(b.Pix[y*4*b.Width:], row)
		}
		return b
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := b.Index(x, y)
			b.Pix[i] = uint8(r >> 8)
			b.Pix[i+1] = uint8(g >> 8)
			b.Pix[i+2] = uint8(bl >> 8)
			b.Pix[i+3] = uint8(a >> 8)
		}
	}
	return b
}

// Index returns the offset of pixel (x, y) in Pix.
// The caller must ensure the coordinate is in bounds; see In.
func (b *Buffer) Index(x, y int) int {
	return (y*b.Width + x) * 4
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// RGB returns the 8-bit color components of pixel (x, y).
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := b.Index(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// LuminanceAt returns the ITU-R BT.601 luminance of pixel (x, y).
func (b *Buffer) LuminanceAt(x, y int) uint8 {
	r, g, bl := b.RGB(x, y)
	return Luminance(r, g, bl)
}

// Luminance converts RGB to luminance using ITU-R BT.601 weights.
// Formula: Y = 0.299*R + 0.587*G + 0.114*B
func Luminance(r, g, b uint8) uint8 {
	return uint8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// Despeckle clears isolated dark pixels in place.
//
// A pixel darker than threshold whose eight neighbors are all at or above
// threshold is scanner dust, not drawing: it is rewritten to opaque white.
// This is the one mutating preprocessing step of the pipeline; callers
// that need the original buffer afterwards must copy it first.
//
// Returns the number of pixels cleared.
func (b *Buffer) Despeckle(threshold uint8) int {
	cleared := 0
	for y := 1; y < b.Height-1; y++ {
		for x := 1; x < b.Width-1; x++ {
			if b.LuminanceAt(x, y) >= threshold {
				continue
			}
			isolated := true
			for dy := -1; dy <= 1 && isolated; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if b.LuminanceAt(x+dx, y+dy) < threshold {
						isolated = false
						break
					}
				}
			}
			if isolated {
				i := b.Index(x, y)
				b.Pix[i] = 255
				b.Pix[i+1] = 255
				b.Pix[i+2] = 255
				b.Pix[i+3] = 255
				cleared++
			}
		}
	}
	return cleared
}
