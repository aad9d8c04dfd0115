package detect

import (
	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// TraceContour extracts the outer boundary of the foreground region in m
// as an ordered clockwise point sequence.
//
// Moore-neighbor tracing: starting from the topmost-leftmost foreground
// pixel, the eight neighbors are scanned clockwise beginning just past
// the backtrack (the last background pixel visited); the first foreground
// neighbor becomes the new current pixel. Jacob's stopping criterion
// terminates the walk when the start pixel is re-entered with the same
// backtrack it was first entered from, which avoids cutting the trace
// short on regions that touch the start pixel more than once. Iterations
// are capped at width*height+4 as a safety bound; a third arrival at the
// start pixel also stops the walk.
//
// Returns nil when the mask has no foreground pixel.
func TraceContour(m *raster.Mask) []geometry.Point {
	startX, startY := -1, -1
	for y := 0; y < m.Height && startX < 0; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[m.Index(x, y)] != 0 {
				startX, startY = x, y
				break
			}
		}
	}
	if startX < 0 {
		return nil
	}

	// Clockwise 8-neighborhood: E, SE, S, SW, W, NW, N, NE.
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirIndex := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	cx, cy := startX, startY
	// The start pixel is topmost-leftmost, so its left neighbor is
	// background and serves as the initial backtrack.
	bx, by := startX-1, startY
	firstBx, firstBy := bx, by

	points := []geometry.Point{{X: float64(cx), Y: float64(cy)}}
	maxSteps := m.Width*m.Height + 4
	startVisits := 0

	for step := 0; step < maxSteps; step++ {
		start := (dirIndex(bx-cx, by-cy) + 1) % 8
		found := false
		for k := 0; k < 8; k++ {
			i := (start + k) % 8
			tx, ty := cx+ndx[i], cy+ndy[i]
			if m.At(tx, ty) != 0 {
				cx, cy = tx, ty
				found = true
				break
			}
			bx, by = tx, ty
		}
		if !found {
			// Single isolated pixel.
			break
		}

		if cx == startX && cy == startY {
			if bx == firstBx && by == firstBy {
				break
			}
			startVisits++
			if startVisits >= 2 {
				break
			}
		}

		last := points[len(points)-1]
		if last.X != float64(cx) || last.Y != float64(cy) {
			points = append(points, geometry.Point{X: float64(cx), Y: float64(cy)})
		}
	}

	// Drop a duplicated closing vertex if the walk ended back at start.
	if len(points) > 1 {
		first, last := points[0], points[len(points)-1]
		if first == last {
			points = points[:len(points)-1]
		}
	}
	return points
}
