package detect

// Rules carries the policy inputs the pipeline consumes but does not
// compute: the standard-angle snap tolerance and the plausible range of
// wall thickness. A drawing-convention collaborator supplies these; the
// defaults below match common architectural plans at centimeter scale.
type Rules struct {
	// SnapTolerance is the maximum angular deviation (radians) for an
	// edge to be snapped onto a 45°-multiple direction.
	SnapTolerance float64

	// MinThicknessUnits and MaxThicknessUnits bound believable wall
	// thickness in length units.
	MinThicknessUnits float64
	MaxThicknessUnits float64
}

// DefaultRules returns the standard drawing rules.
func DefaultRules() Rules {
	return Rules{
		SnapTolerance:     0.26, // ~15°
		MinThicknessUnits: 5,
		MaxThicknessUnits: 60,
	}
}

// RoomOptions configures DetectRoomAtPixel.
type RoomOptions struct {
	// PixelsPerUnit converts between pixel and length-unit space.
	PixelsPerUnit float64

	// MaxAreaSqUnits is the largest believable room area; the flood-fill
	// pixel budget is MaxAreaSqUnits * PixelsPerUnit².
	MaxAreaSqUnits float64

	// Rules supplies angle and thickness policy.
	Rules Rules

	// CloseRadii is the ascending list of morphological close radii
	// tried per candidate mask. Smaller radii first: a radius just large
	// enough to seal the doorways distorts narrow rooms the least.
	CloseRadii []int

	// Thresholds is the luminance sweep used when no gray wall fill is
	// auto-detected.
	Thresholds []uint8

	// NoiseOpenRadius is the opening radius applied to the auto-range
	// mask to strip annotation strokes. The threshold-sweep fallback
	// assumes black-line-only plans and skips it.
	NoiseOpenRadius int

	// SimplifyEpsilonPx is the Douglas-Peucker tolerance in pixels.
	SimplifyEpsilonPx float64

	// MicroBumpDepthUnits bounds the notch depth collapsed by polygon
	// cleanup.
	MicroBumpDepthUnits float64

	// MinGapUnits and MaxGapUnits bound reported door openings.
	MinGapUnits float64
	MaxGapUnits float64

	// GapDashUnits merges openings across dashed door symbols.
	GapDashUnits float64
}

// DefaultRoomOptions returns room-detection defaults for a plan scaled at
// pixelsPerUnit pixels per length unit (e.g. per centimeter).
func DefaultRoomOptions(pixelsPerUnit float64) RoomOptions {
	return RoomOptions{
		PixelsPerUnit:       pixelsPerUnit,
		MaxAreaSqUnits:      2_000_000, // 200 m² at cm units
		Rules:               DefaultRules(),
		CloseRadii:          []int{2, 4, 6, 9, 12},
		Thresholds:          []uint8{180, 200, 220, 240},
		NoiseOpenRadius:     1,
		SimplifyEpsilonPx:   2,
		MicroBumpDepthUnits: 15,
		MinGapUnits:         50,
		MaxGapUnits:         300,
		GapDashUnits:        12,
	}
}

// gapScanOptions converts the unit-space gap bounds to pixel space.
func (o RoomOptions) gapScanOptions() GapScanOptions {
	ppu := o.PixelsPerUnit
	probe := int(o.Rules.MaxThicknessUnits * ppu / 2)
	if probe < 2 {
		probe = 2
	}
	return GapScanOptions{
		StepPixels:   maxf(1, ppu),
		ProbeDepth:   probe,
		DashPixels:   o.GapDashUnits * ppu,
		MinGapPixels: o.MinGapUnits * ppu,
		MaxGapPixels: o.MaxGapUnits * ppu,
	}
}

// thicknessOptions converts the rules' unit-space bounds to pixel space.
func (o RoomOptions) thicknessOptions(inward bool) ThicknessOptions {
	ppu := o.PixelsPerUnit
	maxPx := o.Rules.MaxThicknessUnits * ppu
	return ThicknessOptions{
		MaxProbe:    int(2*maxPx) + 4,
		ProbeInward: inward,
		MinPixels:   o.Rules.MinThicknessUnits * ppu,
		MaxPixels:   maxPx,
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
