// Package geometry provides the polygon types and polyline algorithms of
// the detection pipeline: Douglas-Peucker simplification, standard-angle
// edge snapping, and cleanup of contour artifacts (micro-bumps, stacked
// wall faces).
//
// Polygons are ordered point sequences in pixel space and implicitly
// closed: the last vertex connects back to the first. Every function that
// returns a polygon guarantees at least 3 vertices or falls back to its
// input rather than producing a degenerate result.
package geometry
