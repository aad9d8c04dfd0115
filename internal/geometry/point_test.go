package geometry

import (
	"math"
	"testing"
)

func TestLineSegmentDistance(t *testing.T) {
	seg := LineSegment{A: Point{X: 0, Y: 0}, B: Point{X: 10, Y: 0}}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above midpoint", Point{X: 5, Y: 3}, 3},
		{"on the segment", Point{X: 7, Y: 0}, 0},
		{"beyond B", Point{X: 13, Y: 4}, 5},
		{"before A", Point{X: -3, Y: 4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Distance(tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance to %v: got %f, want %f", tt.p, got, tt.want)
			}
		})
	}
}

func TestLineSegmentDistance_DegenerateSegment(t *testing.T) {
	seg := LineSegment{A: Point{X: 2, Y: 2}, B: Point{X: 2, Y: 2}}
	if got := seg.Distance(Point{X: 5, Y: 6}); math.Abs(got-5) > 1e-9 {
		t.Errorf("distance to zero-length segment: got %f, want 5", got)
	}
}

func TestPolygonCentroid(t *testing.T) {
	pg := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	c := pg.Centroid()
	if c.X != 5 || c.Y != 5 {
		t.Errorf("centroid: got %v, want (5, 5)", c)
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	pg := Polygon{{X: 3, Y: 7}, {X: -1, Y: 2}, {X: 8, Y: 4}}
	r := pg.BoundingBox()
	if r.Min.X != -1 || r.Min.Y != 2 || r.Max.X != 8 || r.Max.Y != 7 {
		t.Errorf("bounding box: got %v", r)
	}
}

func TestPolygonEdgeWraps(t *testing.T) {
	pg := Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	last := pg.Edge(2)
	if last.A != (Point{X: 1, Y: 1}) || last.B != (Point{X: 0, Y: 0}) {
		t.Errorf("last edge must close the ring, got %v -> %v", last.A, last.B)
	}
}
