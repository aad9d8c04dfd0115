package geometry

import "math"

// edgeLine is an infinite line through a point with a direction, used
// while re-intersecting snapped edges.
type edgeLine struct {
	p   Point
	dir Point
}

// SnapEdges aligns polygon edges to the nearest of the eight standard
// 45°-multiple directions and rebuilds every vertex as the intersection
// of its two adjacent snapped edge lines.
//
// An edge whose direction is farther than tolerance (radians) from every
// standard direction keeps its original direction. Vertices whose
// adjacent edges end up collinear (same direction modulo π) are dropped;
// if that would leave fewer than 3 vertices, the pre-merge vertex set is
// returned instead so the result is never degenerate.
func SnapEdges(pg Polygon, tolerance float64) Polygon {
	n := len(pg)
	if n < 3 {
		return pg
	}

	lines := make([]edgeLine, n)
	for i := 0; i < n; i++ {
		a := pg[i]
		b := pg[(i+1)%n]
		d := b.Sub(a)
		angle := math.Atan2(d.Y, d.X)
		snapped := snapAngle(angle, tolerance)
		mid := a.Add(b).Scale(0.5)
		lines[i] = edgeLine{
			p:   mid,
			dir: Point{X: math.Cos(snapped), Y: math.Sin(snapped)},
		}
	}

	// Vertex i sits between edge i-1 and edge i.
	verts := make(Polygon, n)
	parallel := make([]bool, n)
	for i := 0; i < n; i++ {
		prev := lines[(i+n-1)%n]
		cur := lines[i]
		if pt, ok := intersectLines(prev, cur); ok {
			verts[i] = pt
		} else {
			// Adjacent edges are collinear after snapping; the original
			// vertex stands in until the merge pass drops it.
			verts[i] = pg[i]
			parallel[i] = true
		}
	}

	merged := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		if !parallel[i] {
			merged = append(merged, verts[i])
		}
	}
	if len(merged) < 3 {
		return verts
	}
	return merged
}

// snapAngle returns the nearest multiple of π/4 when the angular
// difference (modulo π/4 wrap) is within tolerance, else the input angle.
func snapAngle(angle, tolerance float64) float64 {
	step := math.Pi / 4
	nearest := math.Round(angle/step) * step
	diff := math.Abs(angle - nearest)
	if diff <= tolerance {
		return nearest
	}
	return angle
}

// intersectLines solves a.p + t*a.dir == b.p + u*b.dir. Returns false for
// parallel (or near-parallel) lines.
func intersectLines(a, b edgeLine) (Point, bool) {
	denom := a.dir.Cross(b.dir)
	if math.Abs(denom) < 1e-9 {
		return Point{}, false
	}
	t := b.p.Sub(a.p).Cross(b.dir) / denom
	return a.p.Add(a.dir.Scale(t)), true
}

// MergeCollinear removes vertices whose adjacent edges are within
// tolerance (radians) of the same direction modulo π. Returns the input
// unchanged when merging would drop below 3 vertices.
func MergeCollinear(pg Polygon, tolerance float64) Polygon {
	n := len(pg)
	if n < 4 {
		return pg
	}
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := pg[(i+n-1)%n]
		next := pg[(i+1)%n]
		d1 := pg[i].Sub(prev)
		d2 := next.Sub(pg[i])
		a1 := math.Atan2(d1.Y, d1.X)
		a2 := math.Atan2(d2.Y, d2.X)
		if angleDiffModPi(a1, a2) > tolerance {
			out = append(out, pg[i])
		}
	}
	if len(out) < 3 {
		return pg
	}
	return out
}

// angleDiffModPi returns the absolute angular difference of two
// directions treating opposite directions as equal.
func angleDiffModPi(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), math.Pi)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}
