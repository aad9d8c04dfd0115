package geometry

import "math"

// Post-merge tolerance is looser than the snap pass: collapsing a bump
// shifts the surviving vertices slightly off their original lines.
const cleanupCollinearTolerance = 0.1

// RemoveMicroBumps collapses rectangular notches shorter than maxDepth
// from the polygon outline.
//
// The pattern is four consecutive vertices A→B→C→D where B→C is shorter
// than maxDepth and the flanking legs A→B and C→D are axis-aligned on the
// same axis but point in opposite directions — a "U" dent left by a
// radiator nook, annotation, or contour artifact. B and C are removed and
// D is pulled onto A's axis line. The scan repeats until no bump matches,
// then near-collinear vertices are re-merged.
func RemoveMicroBumps(pg Polygon, maxDepth float64) Polygon {
	if len(pg) < 5 {
		return pg
	}

	out := make(Polygon, len(pg))
	copy(out, pg)

	for changed := true; changed && len(out) >= 5; {
		changed = false
		n := len(out)
		for i := 0; i < n; i++ {
			a := out[i]
			b := out[(i+1)%n]
			c := out[(i+2)%n]
			d := out[(i+3)%n]

			if b.Distance(c) >= maxDepth {
				continue
			}
			axisAB, dirAB := axisDirection(b.Sub(a))
			axisCD, dirCD := axisDirection(d.Sub(c))
			if axisAB == axisNone || axisAB != axisCD || dirAB == dirCD {
				continue
			}

			// Pull D back onto A's axis line, then drop B and C.
			if axisAB == axisHorizontal {
				d.Y = a.Y
			} else {
				d.X = a.X
			}
			out[(i+3)%n] = d
			out = removeVertices(out, (i+1)%n, (i+2)%n)
			changed = true
			break
		}
	}

	return MergeCollinear(out, cleanupCollinearTolerance)
}

// RemoveStackedEdges removes contour spikes where the outline doubles
// back on itself along both faces of the same wall: a vertex whose two
// edges are anti-parallel and closer together than maxGap.
func RemoveStackedEdges(pg Polygon, maxGap float64) Polygon {
	if len(pg) < 4 {
		return pg
	}

	out := make(Polygon, len(pg))
	copy(out, pg)

	for changed := true; changed && len(out) >= 4; {
		changed = false
		n := len(out)
		for i := 0; i < n; i++ {
			prev := out[(i+n-1)%n]
			cur := out[i]
			next := out[(i+1)%n]
			d1 := cur.Sub(prev)
			d2 := next.Sub(cur)
			if d1.Length() == 0 || d2.Length() == 0 {
				out = removeVertices(out, i)
				changed = true
				break
			}
			// Anti-parallel edges with endpoints nearly coincident
			// trace both faces of one wall.
			angle := angleDiffModPi(math.Atan2(d1.Y, d1.X), math.Atan2(d2.Y, d2.X))
			reversed := d1.Dot(d2) < 0
			if angle < cleanupCollinearTolerance && reversed && prev.Distance(next) < maxGap {
				out = removeVertices(out, i)
				changed = true
				break
			}
		}
	}

	return MergeCollinear(out, cleanupCollinearTolerance)
}

type axis int

const (
	axisNone axis = iota
	axisHorizontal
	axisVertical
)

// axisDirection classifies a vector as axis-aligned and returns the sign
// of travel along that axis. Non-axis-aligned vectors return axisNone.
func axisDirection(v Point) (axis, int) {
	const slack = 1e-6
	switch {
	case math.Abs(v.Y) <= slack && v.X != 0:
		if v.X > 0 {
			return axisHorizontal, 1
		}
		return axisHorizontal, -1
	case math.Abs(v.X) <= slack && v.Y != 0:
		if v.Y > 0 {
			return axisVertical, 1
		}
		return axisVertical, -1
	default:
		return axisNone, 0
	}
}

// removeVertices returns the polygon without the vertices at the given
// indices.
func removeVertices(pg Polygon, indices ...int) Polygon {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	out := pg[:0]
	for i, p := range pg {
		if !drop[i] {
			out = append(out, p)
		}
	}
	return out
}
