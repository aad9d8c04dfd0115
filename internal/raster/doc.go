// Package raster provides the pixel-level primitives of the floor-plan
// detection pipeline: the flat RGBA buffer abstraction, binary wall masks,
// pixel classification, morphological operators, connected-component
// filtering, and flood fills.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Masks
//
// A Mask is a width×height grid of 0/1 bytes over the same coordinate
// space as its source Buffer. By convention 1 marks a wall (ink) pixel and
// 0 marks open floor space. Every operator returns a freshly allocated
// mask; no operator aliases its input, so raw, opened, and closed variants
// of the same mask can coexist safely.
//
// # Performance
//
// Morphology uses separable sliding-window passes and runs in O(pixels)
// per operation regardless of kernel radius. Flood fills are breadth-first
// and accept a pixel budget so a fill that leaks through an unsealed gap
// terminates early instead of scanning the whole image.
//
// # Purity
//
// With the single exception of Despeckle, which the caller opts into,
// nothing in this package mutates the source Buffer. Each call allocates
// its own working memory and no state persists between calls.
package raster
