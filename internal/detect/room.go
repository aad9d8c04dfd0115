package detect

import (
	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// RoomResult is the terminal artifact of room detection. It is pure
// geometric data in pixel space; the caller converts to its own
// coordinate system and persists it.
type RoomResult struct {
	// Polygon is the simplified, angle-snapped room outline.
	Polygon geometry.Polygon `json:"polygon"`

	// DoorGaps lists detected wall openings, unordered.
	DoorGaps []DoorGap `json:"door_gaps"`

	// PixelsPerUnit echoes the scale the result was computed at.
	PixelsPerUnit float64 `json:"pixels_per_unit"`

	// Thickness summarizes the per-edge wall thickness probes. May be
	// nil when no edge produced a valid measurement.
	Thickness *ThicknessSummary `json:"thickness,omitempty"`
}

// attemptStatus tags the outcome of one mask/radius candidate, keeping
// the retry chain auditable instead of collapsing it to booleans.
type attemptStatus int

const (
	attemptOK attemptStatus = iota
	// attemptRejected: the seed landed on a wall pixel of this mask.
	attemptRejected
	// attemptExhausted: no close radius produced a bounded fill.
	attemptExhausted
)

// maskAttempt is the result of driving one candidate wall mask through
// the close-radius ladder.
type maskAttempt struct {
	status      attemptStatus
	opened      *raster.Mask // candidate after optional noise opening
	closed      *raster.Mask // candidate at the accepted close radius
	region      *raster.Mask // flood-filled room region
	closeRadius int
	pixels      int
}

// DetectRoomAtPixel finds the room containing the seed pixel and returns
// its outline, wall thickness, and door openings, or nil when no room can
// be derived.
//
// Candidate wall masks are tried in priority order: the auto-detected
// gray-fill range first (with a noise-removal opening applied), then a
// fixed luminance threshold sweep for black-line-only plans. Each
// candidate is closed at ascending radii until a flood fill from the seed
// stays within the area budget; the largest successful fill across all
// candidates wins. The winning region is hole-filled, traced, simplified,
// angle-snapped, cleaned of contour artifacts, and measured.
//
// Nil is returned when the seed is out of bounds or on a wall pixel, when
// the area budget rounds below one pixel, when every candidate exhausts
// its radii, or when any stage leaves fewer than 3 polygon vertices.
func DetectRoomAtPixel(b *raster.Buffer, seedX, seedY int, opts RoomOptions) *RoomResult {
	if !b.In(seedX, seedY) || opts.PixelsPerUnit <= 0 {
		return nil
	}
	budget := int(opts.MaxAreaSqUnits * opts.PixelsPerUnit * opts.PixelsPerUnit)
	if budget < 1 {
		return nil
	}

	var best *maskAttempt
	consider := func(a *maskAttempt) {
		if a.status != attemptOK {
			return
		}
		if best == nil || a.pixels > best.pixels {
			best = a
		}
	}

	if r := raster.AutoDetectWallRange(b); r != nil {
		mask := raster.GrayFillMask(b, r.Low, r.High)
		consider(tryMask(mask, seedX, seedY, budget, opts, true))
	}
	for _, t := range opts.Thresholds {
		mask := raster.ThresholdMask(b, t)
		consider(tryMask(mask, seedX, seedY, budget, opts, false))
	}
	if best == nil {
		return nil
	}

	raster.FillHoles(best.region)
	contour := TraceContour(best.region)
	if len(contour) < 3 {
		return nil
	}
	polygon := geometry.SimplifyClosed(contour, opts.SimplifyEpsilonPx)
	if len(polygon) < 3 {
		return nil
	}
	polygon = geometry.SnapEdges(polygon, opts.Rules.SnapTolerance)
	polygon = geometry.RemoveStackedEdges(polygon, opts.Rules.MaxThicknessUnits*opts.PixelsPerUnit)
	polygon = geometry.RemoveMicroBumps(polygon, opts.MicroBumpDepthUnits*opts.PixelsPerUnit)
	if len(polygon) < 3 {
		return nil
	}

	result := &RoomResult{
		Polygon:       polygon,
		PixelsPerUnit: opts.PixelsPerUnit,
		Thickness:     DetectWallThickness(b, polygon, opts.PixelsPerUnit, opts.thicknessOptions(false)),
	}

	// Openings are scanned on the pre-close mask: the close radius that
	// made the fill possible is exactly what seals real doorways.
	result.DoorGaps = DetectDoorGapsAlongEdges(best.opened, polygon, opts.gapScanOptions())
	if len(result.DoorGaps) == 0 {
		result.DoorGaps = DetectDoorGaps(best.opened, best.closed,
			opts.MinGapUnits*opts.PixelsPerUnit, opts.MaxGapUnits*opts.PixelsPerUnit)
	}
	return result
}

// tryMask drives one candidate mask through the close-radius ladder and
// reports the first bounded, non-empty fill.
func tryMask(mask *raster.Mask, seedX, seedY, budget int, opts RoomOptions, noiseOpen bool) *maskAttempt {
	opened := mask
	if noiseOpen && opts.NoiseOpenRadius > 0 {
		opened = raster.Open(mask, opts.NoiseOpenRadius)
	}
	if opened.At(seedX, seedY) != 0 {
		return &maskAttempt{status: attemptRejected, opened: opened}
	}

	for _, radius := range opts.CloseRadii {
		closed := raster.Close(opened, radius)
		fill := raster.FloodFill(closed, seedX, seedY, budget)
		if fill.Count > 0 && fill.Count <= budget {
			return &maskAttempt{
				status:      attemptOK,
				opened:      opened,
				closed:      closed,
				region:      fill.Region,
				closeRadius: radius,
				pixels:      fill.Count,
			}
		}
	}
	return &maskAttempt{status: attemptExhausted, opened: opened}
}
