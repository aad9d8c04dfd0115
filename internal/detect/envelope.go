package detect

import (
	"math"

	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// EnvelopeOptions configures DetectEnvelope.
type EnvelopeOptions struct {
	// PixelsPerUnit converts between pixel and length-unit space.
	PixelsPerUnit float64

	// Rules supplies angle and thickness policy.
	Rules Rules

	// MaxOpeningUnits is the widest opening the close must seal — a
	// double entrance door, typically. The close radius is derived from
	// it.
	MaxOpeningUnits float64

	// Thresholds is the luminance sweep fallback.
	Thresholds []uint8

	// MinComponentSqUnits is the connected-component area floor applied
	// to every candidate wall mask; an 8-unit square survives, text
	// glyphs do not.
	MinComponentSqUnits float64

	// NoiseOpenRadius is the stricter secondary opening applied when a
	// prior bounding box is supplied.
	NoiseOpenRadius int

	// SimplifyEpsilonPx is the Douglas-Peucker tolerance in pixels.
	SimplifyEpsilonPx float64

	// MicroBumpDepthUnits bounds the notch depth collapsed by cleanup.
	MicroBumpDepthUnits float64

	// BoundingBox, when non-nil, is a rough prior envelope (pixel
	// space). It enables the two-pass strategy: wall pixels outside the
	// box are ignored and the stricter noise opening is applied inside,
	// which keeps title blocks and dimension chains from bridging into
	// the building outline.
	BoundingBox *geometry.Rect

	// Spanning configures structural-wall discovery on the final masks.
	Spanning SpanningWallOptions
}

// DefaultEnvelopeOptions returns envelope defaults for a plan scaled at
// pixelsPerUnit pixels per length unit.
func DefaultEnvelopeOptions(pixelsPerUnit float64) EnvelopeOptions {
	return EnvelopeOptions{
		PixelsPerUnit:       pixelsPerUnit,
		Rules:               DefaultRules(),
		MaxOpeningUnits:     200,
		Thresholds:          []uint8{180, 200, 220, 240},
		MinComponentSqUnits: 64,
		NoiseOpenRadius:     2,
		SimplifyEpsilonPx:   3,
		MicroBumpDepthUnits: 20,
		Spanning:            DefaultSpanningWallOptions(pixelsPerUnit),
	}
}

// EnvelopeResult is the terminal artifact of envelope detection.
//
// WallMask and BuildingMask are returned so a follow-up interior-room
// pass can reuse them without recomputation; they are owned by the caller
// from here on.
type EnvelopeResult struct {
	// Polygon traces the building's outer boundary.
	Polygon geometry.Polygon `json:"polygon"`

	// Thickness summarizes inward wall probes around the boundary.
	Thickness *ThicknessSummary `json:"thickness,omitempty"`

	// SpanningWalls lists detected full-span structural walls.
	SpanningWalls []SpanningWall `json:"spanning_walls"`

	// WallMask is the component-filtered wall mask the envelope was
	// derived from.
	WallMask *raster.Mask `json:"-"`

	// BuildingMask marks every pixel of the building footprint
	// (walls included, holes filled).
	BuildingMask *raster.Mask `json:"-"`
}

// DetectEnvelope finds the whole-building outline of a floor plan, or
// returns nil when none can be derived.
//
// A whole-image wall mask is built (auto-detected gray range first, then
// the threshold sweep) and component-filtered. One large close — sized so
// that half its diameter covers the worst-case opening — seals doorways
// and windows, a border-seeded flood separates exterior from building,
// and the building mask is everything the border flood could not reach,
// hole-filled. A candidate whose building footprint covers less than 1%
// or more than 99% of the image is rejected as degenerate (all-wall or
// all-open mask) and the next candidate is tried.
func DetectEnvelope(b *raster.Buffer, opts EnvelopeOptions) *EnvelopeResult {
	if opts.PixelsPerUnit <= 0 {
		return nil
	}
	minComponentPx := int(opts.MinComponentSqUnits * opts.PixelsPerUnit * opts.PixelsPerUnit)
	closeRadius := int(math.Ceil(opts.MaxOpeningUnits*opts.PixelsPerUnit/2)) + 1

	try := func(wall *raster.Mask) *EnvelopeResult {
		raster.FilterSmallComponents(wall, minComponentPx)
		wall = applyBoundingBox(wall, opts)

		closed := raster.Close(wall, closeRadius)
		exterior := raster.FloodFillFromBorder(closed)
		building := exterior.Clone().Invert()
		raster.FillHoles(building)

		area := building.Count()
		total := building.Width * building.Height
		if area < total/100 || area > total*99/100 {
			return nil
		}

		contour := TraceContour(building)
		if len(contour) < 3 {
			return nil
		}
		polygon := geometry.SimplifyClosed(contour, opts.SimplifyEpsilonPx)
		if len(polygon) < 3 {
			return nil
		}
		polygon = geometry.SnapEdges(polygon, opts.Rules.SnapTolerance)
		polygon = geometry.RemoveMicroBumps(polygon, opts.MicroBumpDepthUnits*opts.PixelsPerUnit)
		if len(polygon) < 3 {
			return nil
		}

		thickOpts := RoomOptions{PixelsPerUnit: opts.PixelsPerUnit, Rules: opts.Rules}.thicknessOptions(true)
		return &EnvelopeResult{
			Polygon:       polygon,
			Thickness:     DetectWallThickness(b, polygon, opts.PixelsPerUnit, thickOpts),
			SpanningWalls: DetectSpanningWalls(wall, building, opts.Spanning),
			WallMask:      wall,
			BuildingMask:  building,
		}
	}

	if r := raster.AutoDetectWallRange(b); r != nil {
		if res := try(raster.GrayFillMask(b, r.Low, r.High)); res != nil {
			return res
		}
	}
	for _, t := range opts.Thresholds {
		if res := try(raster.ThresholdMask(b, t)); res != nil {
			return res
		}
	}
	return nil
}

// applyBoundingBox implements the two-pass protected-mask strategy: with
// a prior rough envelope available, wall pixels outside it are dropped
// and the stricter noise opening runs inside, so annotation around the
// drawing cannot bridge into the outline on the second pass.
func applyBoundingBox(wall *raster.Mask, opts EnvelopeOptions) *raster.Mask {
	if opts.BoundingBox == nil {
		return wall
	}
	box := *opts.BoundingBox
	for y := 0; y < wall.Height; y++ {
		for x := 0; x < wall.Width; x++ {
			if float64(x) < box.Min.X || float64(x) > box.Max.X ||
				float64(y) < box.Min.Y || float64(y) > box.Max.Y {
				wall.Pix[wall.Index(x, y)] = 0
			}
		}
	}
	if opts.NoiseOpenRadius > 0 {
		wall = raster.Open(wall, opts.NoiseOpenRadius)
	}
	return wall
}
