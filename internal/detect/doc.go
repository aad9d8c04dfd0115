// Package detect turns masks and pixel buffers into architectural
// geometry: room outlines, the whole-building envelope, wall thickness,
// doorway openings, and full-span structural walls.
//
// # Pipeline
//
// Both orchestrators follow the same shape:
//
//  1. Mask construction: an auto-detected gray-fill luminance window
//     first, a fixed threshold sweep as fallback
//  2. Morphological cleanup: open to strip annotation noise, close to
//     seal doorway gaps
//  3. Region growing: a budgeted seeded flood fill (rooms) or a
//     border-seeded fill (building exterior)
//  4. Contour tracing, Douglas-Peucker simplification, standard-angle
//     snapping
//  5. Wall-thickness probing and opening detection
//
// # Failure Model
//
// Degenerate input never raises an error: every detector returns nil (or
// an empty slice) when no geometry can be derived — seed on a wall pixel,
// no mask candidate producing a bounded fill, a polygon collapsing below
// 3 vertices, a building mask failing the area sanity check. Budgets on
// flood fills, contour tracing, and probing make every call terminate on
// arbitrary input.
//
// # Concurrency
//
// Calls are pure functions of their inputs; no state is shared between
// invocations. Callers wanting parallelism run one detection per
// goroutine, each on its own buffer. A call is atomic — there is no
// cancellation mid-flight, so interactive callers run it off their UI
// loop.
package detect
