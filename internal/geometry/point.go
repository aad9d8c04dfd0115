package geometry

import "math"

// Point is a 2D point or vector in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point  { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point  { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Length returns the vector magnitude.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the distance to another point.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Cross returns the Z component of the cross product p × q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Dot returns the dot product p · q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// LineSegment is the segment from A to B.
type LineSegment struct {
	A Point
	B Point
}

// Distance returns the distance from p to the segment. Points whose
// projection falls outside the segment measure to the nearest endpoint.
func (s LineSegment) Distance(p Point) float64 {
	ab := s.B.Sub(s.A)
	lenAB := ab.Length()
	if lenAB == 0 {
		return p.Distance(s.A)
	}
	t := p.Sub(s.A).Dot(ab) / (lenAB * lenAB)
	if t < 0 {
		return p.Distance(s.A)
	}
	if t > 1 {
		return p.Distance(s.B)
	}
	return math.Abs(p.Sub(s.A).Cross(ab)) / lenAB
}

// Polygon is an ordered vertex sequence, implicitly closed.
type Polygon []Point

// Centroid returns the vertex average. For the convex-ish room and
// envelope outlines this pipeline produces, the vertex mean is a good
// enough interior reference for inside/outside tests.
func (pg Polygon) Centroid() Point {
	var c Point
	if len(pg) == 0 {
		return c
	}
	for _, p := range pg {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pg)))
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// BoundingBox returns the polygon's axis-aligned bounds.
func (pg Polygon) BoundingBox() Rect {
	if len(pg) == 0 {
		return Rect{}
	}
	r := Rect{Min: pg[0], Max: pg[0]}
	for _, p := range pg[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Edge returns the edge from vertex i to vertex i+1 (wrapping).
func (pg Polygon) Edge(i int) LineSegment {
	return LineSegment{A: pg[i], B: pg[(i+1)%len(pg)]}
}
