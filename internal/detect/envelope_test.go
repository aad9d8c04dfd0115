package detect

import (
	"math"
	"testing"

	"planscan/internal/geometry"
)

func ringEnvelopeOptions() EnvelopeOptions {
	return EnvelopeOptions{
		PixelsPerUnit: 1,
		Rules: Rules{
			SnapTolerance:     0.26,
			MinThicknessUnits: 1,
			MaxThicknessUnits: 10,
		},
		MaxOpeningUnits:     12,
		Thresholds:          []uint8{128},
		MinComponentSqUnits: 4,
		NoiseOpenRadius:     1,
		SimplifyEpsilonPx:   2,
		MicroBumpDepthUnits: 5,
		Spanning:            DefaultSpanningWallOptions(1),
	}
}

func TestDetectEnvelope(t *testing.T) {
	b := ringPlan()

	result := DetectEnvelope(b, ringEnvelopeOptions())
	if result == nil {
		t.Fatal("expected a building outline")
	}

	box := result.Polygon.BoundingBox()
	if math.Abs(box.Min.X-20) > 3 || math.Abs(box.Min.Y-20) > 3 ||
		math.Abs(box.Max.X-69) > 3 || math.Abs(box.Max.Y-69) > 3 {
		t.Errorf("outline bounds: got %+v, want ~(20,20)-(69,69)", box)
	}

	if result.Thickness == nil {
		t.Fatal("expected a thickness summary")
	}
	if result.Thickness.MedianPixels < 2 || result.Thickness.MedianPixels > 5 {
		t.Errorf("wall thickness: got %f, want ~3", result.Thickness.MedianPixels)
	}

	// The ring's own walls hug the footprint boundary; none may be
	// reported as interior spanning walls.
	if len(result.SpanningWalls) != 0 {
		t.Errorf("spanning walls: got %d, want 0", len(result.SpanningWalls))
	}

	if result.BuildingMask == nil || result.WallMask == nil {
		t.Fatal("masks must be returned for reuse")
	}
	if result.BuildingMask.At(45, 45) != 1 {
		t.Error("interior must be part of the building mask")
	}
	if result.BuildingMask.At(5, 5) != 0 {
		t.Error("exterior must stay outside the building mask")
	}
	if result.BuildingMask.At(44, 21) != 1 {
		t.Error("the doorway is enclosed and belongs to the footprint")
	}
}

func TestDetectEnvelope_EmptyImage(t *testing.T) {
	b := whiteBuffer(50, 50)
	if result := DetectEnvelope(b, ringEnvelopeOptions()); result != nil {
		t.Error("a blank page should yield nil")
	}
}

func TestDetectEnvelope_FullBlackImage(t *testing.T) {
	// An all-wall mask leaves a footprint over 99% of the image; the
	// sanity check must reject it.
	b := whiteBuffer(50, 50)
	paintRect(b, 0, 0, 49, 49, 0)
	if result := DetectEnvelope(b, ringEnvelopeOptions()); result != nil {
		t.Error("an all-dark scan should yield nil")
	}
}

func TestDetectEnvelope_BoundingBoxFiltersAnnotation(t *testing.T) {
	b := ringPlan()
	// A title block far outside the building would otherwise survive the
	// component filter.
	paintRect(b, 80, 80, 95, 95, 0)

	opts := ringEnvelopeOptions()
	opts.BoundingBox = &geometry.Rect{
		Min: geometry.Point{X: 15, Y: 15},
		Max: geometry.Point{X: 75, Y: 75},
	}

	result := DetectEnvelope(b, opts)
	if result == nil {
		t.Fatal("expected a building outline")
	}
	if result.WallMask.At(85, 85) != 0 {
		t.Error("wall pixels outside the bounding box must be dropped")
	}
	box := result.Polygon.BoundingBox()
	if box.Max.X > 72 || box.Max.Y > 72 {
		t.Errorf("outline leaked toward the title block: %+v", box)
	}
}

func TestDetectEnvelope_BadScale(t *testing.T) {
	opts := ringEnvelopeOptions()
	opts.PixelsPerUnit = 0
	if result := DetectEnvelope(ringPlan(), opts); result != nil {
		t.Error("non-positive scale must yield nil")
	}
}
