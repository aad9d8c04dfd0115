package raster

import (
	"github.com/lucasb-eyer/go-colorful"
)

// PixelClass is the three-state classification used by wall probing.
type PixelClass int

const (
	// ClassBackground marks open floor space or paper white.
	ClassBackground PixelClass = iota
	// ClassFill marks wall fill, which may be a saturated color.
	ClassFill
	// ClassEdge marks the dark outline strokes bounding a wall.
	ClassEdge
)

// Saturation thresholds for the mid-luminance bands. Wall fill can be
// colored while edge lines and room interiors are assumed near-neutral,
// which is why the rules below are asymmetric in saturation.
const (
	edgeBandMaxSaturation = 0.3
	fillBandHighSat       = 0.65 // at luminance 120
	fillBandLowSat        = 0.35 // at luminance 200
	brightFillMaxSat      = 0.2
)

// Classify assigns a pixel to edge, fill, or background.
//
// The decision is by luminance band, with saturation breaking ties:
//   - < 80: edge
//   - 80–119: edge if near-neutral, else fill
//   - 120–199: fill if saturation is under a threshold that falls
//     linearly from 0.65 at luminance 120 to 0.35 at 200, else background
//   - 200–219: fill only if saturation < 0.2
//   - ≥ 220: background
func Classify(r, g, b uint8) PixelClass {
	lum := Luminance(r, g, b)
	switch {
	case lum < 80:
		return ClassEdge
	case lum < 120:
		if Saturation(r, g, b) <= edgeBandMaxSaturation {
			return ClassEdge
		}
		return ClassFill
	case lum < 200:
		// Linear ramp between the two band endpoints.
		t := float64(lum-120) / 80.0
		limit := fillBandHighSat + t*(fillBandLowSat-fillBandHighSat)
		if Saturation(r, g, b) < limit {
			return ClassFill
		}
		return ClassBackground
	case lum < 220:
		if Saturation(r, g, b) < brightFillMaxSat {
			return ClassFill
		}
		return ClassBackground
	default:
		return ClassBackground
	}
}

// ClassifyAt classifies the pixel at (x, y) of the buffer.
func (b *Buffer) ClassifyAt(x, y int) PixelClass {
	r, g, bl := b.RGB(x, y)
	return Classify(r, g, bl)
}

// Saturation returns the HSV saturation (0..1) of an RGB triple.
func Saturation(r, g, b uint8) float64 {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	_, s, _ := c.Hsv()
	return s
}
