package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRemoveMicroBumps(t *testing.T) {
	// A rectangle with a 1px-deep notch in the bottom edge.
	pg := Polygon{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 1},
		{X: 6, Y: 1},
		{X: 6, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}

	got := RemoveMicroBumps(pg, 3)
	want := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(want, got, approxPoints); diff != "" {
		t.Errorf("notch should collapse (-want +got):\n%s", diff)
	}
}

func TestRemoveMicroBumps_DeepNotchKept(t *testing.T) {
	// The same shape with a notch wider than maxDepth is a real recess.
	pg := Polygon{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 5},
		{X: 6, Y: 5},
		{X: 6, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}

	got := RemoveMicroBumps(pg, 1)
	if len(got) != 8 {
		t.Errorf("deep recess must survive, got %d vertices", len(got))
	}
}

func TestRemoveStackedEdges(t *testing.T) {
	// A contour spike where the trace ran down and back up both faces of
	// an interior wall stub.
	pg := Polygon{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 6, Y: 10},
		{X: 6, Y: 3},
		{X: 5.9, Y: 10},
		{X: 0, Y: 10},
	}

	got := RemoveStackedEdges(pg, 2)
	want := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(want, got, approxPoints); diff != "" {
		t.Errorf("spike should be removed (-want +got):\n%s", diff)
	}
}

func TestRemoveStackedEdges_WideGapKept(t *testing.T) {
	// Anti-parallel edges far apart are two distinct walls, not a spike.
	pg := Polygon{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 7, Y: 10},
		{X: 7, Y: 3},
		{X: 3, Y: 3},
		{X: 3, Y: 10},
		{X: 0, Y: 10},
	}

	got := RemoveStackedEdges(pg, 2)
	if len(got) != 8 {
		t.Errorf("a 4-wide recess must survive, got %d vertices", len(got))
	}
}
