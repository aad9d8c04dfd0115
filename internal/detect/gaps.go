package detect

import (
	"math"

	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// DoorGap is a detected opening in a wall line.
type DoorGap struct {
	// Mid is the opening's midpoint in pixel space.
	Mid geometry.Point `json:"mid"`

	// SpanPixels is the opening extent in pixels.
	SpanPixels float64 `json:"span_pixels"`
}

// DetectDoorGaps finds openings by mask differencing: a pixel that was
// open in the raw mask but sealed by the morphological close is part of a
// gap the close bridged. Gap pixels are grouped 8-connected and each
// group is reported by centroid and bounding-box span, filtered to
// [minSpanPx, maxSpanPx].
func DetectDoorGaps(raw, closed *raster.Mask, minSpanPx, maxSpanPx float64) []DoorGap {
	if raw.Width != closed.Width || raw.Height != closed.Height {
		return nil
	}

	visited := make([]bool, len(raw.Pix))
	isGap := func(idx int) bool {
		return raw.Pix[idx] == 0 && closed.Pix[idx] != 0
	}

	var gaps []DoorGap
	queue := make([]int, 0, 256)

	for start := range raw.Pix {
		if visited[start] || !isGap(start) {
			continue
		}
		queue = append(queue[:0], start)
		visited[start] = true

		sumX, sumY, count := 0, 0, 0
		minX, minY := raw.Width, raw.Height
		maxX, maxY := 0, 0

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			x, y := idx%raw.Width, idx/raw.Width
			sumX += x
			sumY += y
			count++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if !raw.In(nx, ny) {
						continue
					}
					ni := raw.Index(nx, ny)
					if !visited[ni] && isGap(ni) {
						visited[ni] = true
						queue = append(queue, ni)
					}
				}
			}
		}

		span := math.Max(float64(maxX-minX+1), float64(maxY-minY+1))
		if span < minSpanPx || span > maxSpanPx {
			continue
		}
		gaps = append(gaps, DoorGap{
			Mid: geometry.Point{
				X: float64(sumX) / float64(count),
				Y: float64(sumY) / float64(count),
			},
			SpanPixels: span,
		})
	}
	return gaps
}

// GapScanOptions parameterizes the edge-walking opening detector.
type GapScanOptions struct {
	// StepPixels is the stride along each polygon edge.
	StepPixels float64

	// ProbeDepth is how far (pixels) to look perpendicular to the edge,
	// on both sides, for wall material.
	ProbeDepth int

	// DashPixels merges open runs separated by wall runs at most this
	// long — dashed door-swing symbols interrupt an opening without
	// closing it.
	DashPixels float64

	// MinGapPixels and MaxGapPixels bound reported openings.
	MinGapPixels float64
	MaxGapPixels float64
}

// DetectDoorGapsAlongEdges walks each polygon edge in fixed steps and
// probes a perpendicular window on both sides for wall pixels. Steps with
// no wall anywhere in the window are open; contiguous open runs, merged
// across short dashes, become door gaps when their span falls within the
// configured bounds.
func DetectDoorGapsAlongEdges(m *raster.Mask, pg geometry.Polygon, opts GapScanOptions) []DoorGap {
	if len(pg) < 3 || opts.StepPixels <= 0 {
		return nil
	}

	var gaps []DoorGap
	for i := range pg {
		seg := pg.Edge(i)
		d := seg.B.Sub(seg.A)
		length := d.Length()
		if length < opts.StepPixels {
			continue
		}
		d = d.Scale(1 / length)
		perp := geometry.Point{X: -d.Y, Y: d.X}

		steps := int(length / opts.StepPixels)
		open := make([]bool, steps+1)
		for s := 0; s <= steps; s++ {
			at := seg.A.Add(d.Scale(float64(s) * opts.StepPixels))
			open[s] = !wallNearby(m, at, perp, opts.ProbeDepth)
		}

		gaps = append(gaps, collectRuns(seg.A, d, open, opts)...)
	}
	return gaps
}

// wallNearby reports whether any wall pixel exists within depth pixels on
// either perpendicular side of at.
func wallNearby(m *raster.Mask, at, perp geometry.Point, depth int) bool {
	for o := -depth; o <= depth; o++ {
		x := int(math.Round(at.X + perp.X*float64(o)))
		y := int(math.Round(at.Y + perp.Y*float64(o)))
		if m.At(x, y) != 0 {
			return true
		}
	}
	return false
}

// collectRuns turns the per-step open flags of one edge into door gaps,
// merging runs separated by dashes shorter than DashPixels.
func collectRuns(origin, dir geometry.Point, open []bool, opts GapScanOptions) []DoorGap {
	maxDashSteps := int(opts.DashPixels / opts.StepPixels)

	type run struct{ start, end int }
	var runs []run
	for s := 0; s < len(open); s++ {
		if !open[s] {
			continue
		}
		start := s
		for s < len(open) && open[s] {
			s++
		}
		runs = append(runs, run{start: start, end: s - 1})
	}

	// Merge across short wall dashes.
	merged := runs[:0]
	for _, r := range runs {
		if n := len(merged); n > 0 && r.start-merged[n-1].end-1 <= maxDashSteps {
			merged[n-1].end = r.end
			continue
		}
		merged = append(merged, r)
	}

	var gaps []DoorGap
	for _, r := range merged {
		span := float64(r.end-r.start+1) * opts.StepPixels
		if span < opts.MinGapPixels || span > opts.MaxGapPixels {
			continue
		}
		center := float64(r.start+r.end) / 2 * opts.StepPixels
		gaps = append(gaps, DoorGap{
			Mid:        origin.Add(dir.Scale(center)),
			SpanPixels: span,
		})
	}
	return gaps
}
