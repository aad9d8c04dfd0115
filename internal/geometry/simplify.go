package geometry

// Simplify reduces a polyline with the Douglas-Peucker algorithm.
//
// The point of maximum perpendicular distance from the chord between the
// first and last point is found; if it deviates more than epsilon it is
// kept and both halves are simplified recursively, otherwise the whole
// span collapses to its two endpoints. Recursion depth is logarithmic in
// the input length for typical contours because every split removes the
// farthest point from both halves' chords.
func Simplify(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	chord := LineSegment{A: points[0], B: points[len(points)-1]}
	dmax := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		if d := chord.Distance(points[i]); d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax <= epsilon {
		return []Point{chord.A, chord.B}
	}

	left := Simplify(points[:index+1], epsilon)
	right := Simplify(points[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// SimplifyClosed simplifies a closed contour. The chord endpoints of a
// closed ring are arbitrary, so the ring is split at its two mutually
// farthest-ish vertices (first vertex and the vertex farthest from it)
// and each half is simplified as an open polyline.
func SimplifyClosed(points []Point, epsilon float64) Polygon {
	if len(points) < 4 {
		out := make(Polygon, len(points))
		copy(out, points)
		return out
	}

	far := 0
	dmax := 0.0
	for i, p := range points {
		if d := points[0].Distance(p); d > dmax {
			dmax = d
			far = i
		}
	}
	if far == 0 {
		// All points coincide.
		return Polygon{points[0]}
	}

	firstHalf := Simplify(points[:far+1], epsilon)
	secondHalf := Simplify(append(points[far:len(points):len(points)], points[0]), epsilon)

	// Join, dropping the duplicated split vertices.
	out := make(Polygon, 0, len(firstHalf)+len(secondHalf)-2)
	out = append(out, firstHalf...)
	if len(secondHalf) > 2 {
		out = append(out, secondHalf[1:len(secondHalf)-1]...)
	}
	return out
}
