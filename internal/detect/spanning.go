package detect

import (
	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// Orientation distinguishes the two axis-aligned wall directions.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// SpanningWall is a structural wall crossing the full building footprint.
type SpanningWall struct {
	Orientation Orientation `json:"orientation"`

	// Start and End are the wall centerline endpoints at the building
	// extents, in pixel space.
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`

	// ThicknessPixels is the median of the perpendicular probe runs.
	ThicknessPixels float64 `json:"thickness_pixels"`

	// ThicknessUnits is ThicknessPixels converted by the pixel scale.
	ThicknessUnits float64 `json:"thickness_units"`
}

// RejectReason labels why a candidate wall band was discarded.
type RejectReason string

const (
	// RejectThickness: band height outside the believable thickness range.
	RejectThickness RejectReason = "thickness"
	// RejectBuildingWidth: footprint too narrow at the band to call
	// anything a spanning wall.
	RejectBuildingWidth RejectReason = "building-width"
	// RejectBoundary: band too close to the building edge; that is the
	// envelope wall, not an interior one.
	RejectBoundary RejectReason = "boundary"
	// RejectContinuity: the band's largest interruption is wider than a
	// doorway could explain.
	RejectContinuity RejectReason = "continuity"
	// RejectReach: wall material does not reach both building edges.
	RejectReach RejectReason = "reach"
	// RejectSpan: the wall's extent is shorter than the minimum span.
	RejectSpan RejectReason = "span"
	// RejectProbes: too few perpendicular probes confirmed wall-like
	// thickness.
	RejectProbes RejectReason = "probes"
)

// RejectedBand describes one discarded candidate, for diagnostics.
type RejectedBand struct {
	Orientation Orientation
	// From and To are the band's inclusive scan-line range (rows for
	// horizontal candidates, columns for vertical).
	From, To int
	Reason   RejectReason
}

// SpanningWallOptions configures DetectSpanningWalls.
type SpanningWallOptions struct {
	// PixelsPerUnit converts between pixel and length-unit space.
	PixelsPerUnit float64

	// Rules supplies the thickness bounds.
	Rules Rules

	// MinDensity is the minimum fraction of wall pixels across the
	// building width for a scan line to qualify.
	MinDensity float64

	// MinSpanFraction is the minimum fraction of the building width the
	// line's wall extent must cover.
	MinSpanFraction float64

	// MergeGapLines joins qualifying bands separated by at most this
	// many non-qualifying scan lines.
	MergeGapLines int

	// MinBuildingWidthUnits rejects bands where the footprint is too
	// narrow for a spanning wall to mean anything.
	MinBuildingWidthUnits float64

	// BoundaryMarginUnits is the minimum distance from the building's
	// edge along the scan axis; closer bands are the envelope itself.
	BoundaryMarginUnits float64

	// MinSpanUnits is the minimum wall extent in length units.
	MinSpanUnits float64

	// Diagnostics, when non-nil, receives every rejected band.
	Diagnostics func(RejectedBand)
}

// DefaultSpanningWallOptions returns spanning-wall defaults for a plan
// scaled at pixelsPerUnit pixels per length unit.
func DefaultSpanningWallOptions(pixelsPerUnit float64) SpanningWallOptions {
	return SpanningWallOptions{
		PixelsPerUnit:         pixelsPerUnit,
		Rules:                 DefaultRules(),
		MinDensity:            0.4,
		MinSpanFraction:       0.7,
		MergeGapLines:         2,
		MinBuildingWidthUnits: 120,
		BoundaryMarginUnits:   30,
		MinSpanUnits:          200,
	}
}

// Probes per candidate band in the final verification criterion, and the
// fraction of them that must land inside the thickness bounds.
const (
	spanningProbes       = 5
	spanningProbeMinPass = 0.8
)

// DetectSpanningWalls finds axis-aligned structural walls that cross the
// full building footprint.
//
// Rows (then columns) are profiled for wall density and span fraction
// within the building extent of that line; qualifying lines are grouped
// into bands, with bands separated by a couple of lines merged — the
// density dip of a door frame should not split one wall in two. Each band
// then runs a rejection cascade: thickness bounds, building width,
// boundary margin, continuity, edge reach, span length, and finally
// perpendicular probe verification. Bands surviving all criteria are
// reported with centerline endpoints at the building extents.
//
// Probe verification reads the wall mask rather than the source raster:
// the mask is exactly the classified wall set the caller derived from the
// raster, so a probe run through it equals the classified run through the
// pixels.
func DetectSpanningWalls(wall, building *raster.Mask, opts SpanningWallOptions) []SpanningWall {
	if wall == nil || building == nil ||
		wall.Width != building.Width || wall.Height != building.Height ||
		opts.PixelsPerUnit <= 0 {
		return nil
	}
	walls := detectSpanningAxis(wall, building, Horizontal, opts)
	walls = append(walls, detectSpanningAxis(wall, building, Vertical, opts)...)
	return walls
}

// lineProfile is the wall/building census of one scan line.
type lineProfile struct {
	bMin, bMax int // building extent across the line, inclusive
	wMin, wMax int // wall extent across the line, inclusive
	wallCount  int
	qualifies  bool
}

// profileLine censuses scan line i of the given orientation. Horizontal
// candidates profile rows, vertical ones profile columns.
func profileLine(wall, building *raster.Mask, o Orientation, i int, opts SpanningWallOptions) lineProfile {
	p := lineProfile{bMin: -1, wMin: -1}
	n := crossLen(wall, o)
	for c := 0; c < n; c++ {
		x, y := crossToXY(o, i, c)
		if building.At(x, y) != 0 {
			if p.bMin < 0 {
				p.bMin = c
			}
			p.bMax = c
		}
		if wall.At(x, y) != 0 {
			if p.wMin < 0 {
				p.wMin = c
			}
			p.wMax = c
			p.wallCount++
		}
	}
	if p.bMin < 0 || p.wMin < 0 {
		return p
	}
	width := float64(p.bMax - p.bMin + 1)
	density := float64(p.wallCount) / width
	spanFrac := float64(p.wMax-p.wMin+1) / width
	p.qualifies = density >= opts.MinDensity && spanFrac >= opts.MinSpanFraction
	return p
}

func crossLen(m *raster.Mask, o Orientation) int {
	if o == Horizontal {
		return m.Width
	}
	return m.Height
}

func lineCount(m *raster.Mask, o Orientation) int {
	if o == Horizontal {
		return m.Height
	}
	return m.Width
}

// crossToXY maps (scan line, cross offset) to pixel coordinates.
func crossToXY(o Orientation, line, cross int) (x, y int) {
	if o == Horizontal {
		return cross, line
	}
	return line, cross
}

func detectSpanningAxis(wall, building *raster.Mask, o Orientation, opts SpanningWallOptions) []SpanningWall {
	lines := lineCount(wall, o)
	profiles := make([]lineProfile, lines)
	firstBuilding, lastBuilding := -1, -1
	for i := 0; i < lines; i++ {
		profiles[i] = profileLine(wall, building, o, i, opts)
		if profiles[i].bMin >= 0 {
			if firstBuilding < 0 {
				firstBuilding = i
			}
			lastBuilding = i
		}
	}
	if firstBuilding < 0 {
		return nil
	}

	type band struct{ from, to int }
	var bands []band
	for i := 0; i < lines; i++ {
		if !profiles[i].qualifies {
			continue
		}
		if n := len(bands); n > 0 && i-bands[n-1].to-1 <= opts.MergeGapLines {
			bands[n-1].to = i
			continue
		}
		bands = append(bands, band{from: i, to: i})
	}

	ppu := opts.PixelsPerUnit
	minThickPx := opts.Rules.MinThicknessUnits * ppu
	maxThickPx := opts.Rules.MaxThicknessUnits * ppu
	minWidthPx := opts.MinBuildingWidthUnits * ppu
	marginPx := opts.BoundaryMarginUnits * ppu
	minSpanPx := opts.MinSpanUnits * ppu

	reject := func(b band, r RejectReason) {
		if opts.Diagnostics != nil {
			opts.Diagnostics(RejectedBand{Orientation: o, From: b.from, To: b.to, Reason: r})
		}
	}

	var walls []SpanningWall
	for _, bd := range bands {
		height := bd.to - bd.from + 1

		// Aggregate extents over the band's lines.
		bMin, bMax := -1, -1
		wMin, wMax := -1, -1
		for i := bd.from; i <= bd.to; i++ {
			p := profiles[i]
			if p.bMin < 0 {
				continue
			}
			if bMin < 0 || p.bMin < bMin {
				bMin = p.bMin
			}
			if p.bMax > bMax {
				bMax = p.bMax
			}
			if p.wMin >= 0 && (wMin < 0 || p.wMin < wMin) {
				wMin = p.wMin
			}
			if p.wMax > wMax {
				wMax = p.wMax
			}
		}
		if bMin < 0 || wMin < 0 {
			continue
		}
		width := bMax - bMin + 1

		if float64(height) < minThickPx || float64(height) > maxThickPx {
			reject(bd, RejectThickness)
			continue
		}
		if float64(width) < minWidthPx {
			reject(bd, RejectBuildingWidth)
			continue
		}
		center := float64(bd.from+bd.to) / 2
		if center-float64(firstBuilding) < marginPx || float64(lastBuilding)-center < marginPx {
			reject(bd, RejectBoundary)
			continue
		}
		if maxInterruption(wall, o, bd.from, bd.to, wMin, wMax) > allowedInterruption(height, width) {
			reject(bd, RejectContinuity)
			continue
		}
		reach := allowedInterruption(height, width)
		if float64(wMin-bMin) > reach || float64(bMax-wMax) > reach {
			reject(bd, RejectReach)
			continue
		}
		if float64(wMax-wMin+1) < minSpanPx {
			reject(bd, RejectSpan)
			continue
		}
		thickness, ok := probeBand(wall, o, bd.from, bd.to, wMin, wMax, minThickPx, maxThickPx)
		if !ok {
			reject(bd, RejectProbes)
			continue
		}

		// Endpoints stretch to the building extents: the reach criterion
		// already tolerates a short shortfall of wall material, and the
		// structural wall runs edge to edge regardless.
		sx, sy := crossToXY(o, bd.from, bMin)
		ex, ey := crossToXY(o, bd.from, bMax)
		if o == Horizontal {
			sy, ey = int(center), int(center)
		} else {
			sx, ex = int(center), int(center)
		}
		walls = append(walls, SpanningWall{
			Orientation:     o,
			Start:           geometry.Point{X: float64(sx), Y: float64(sy)},
			End:             geometry.Point{X: float64(ex), Y: float64(ey)},
			ThicknessPixels: thickness,
			ThicknessUnits:  thickness / ppu,
		})
	}
	return walls
}

// allowedInterruption is the widest break a spanning wall may have across
// the footprint: a doorway, scaled with the band so thick walls tolerate
// proportionally wider openings.
func allowedInterruption(bandHeight, width int) float64 {
	doorway := float64(2 * bandHeight)
	quarter := float64(width) / 4
	if doorway > quarter {
		return doorway
	}
	return quarter
}

// maxInterruption finds the longest run of cross positions in [wMin, wMax]
// where no band line carries a wall pixel.
func maxInterruption(wall *raster.Mask, o Orientation, from, to, wMin, wMax int) float64 {
	longest, run := 0, 0
	for c := wMin; c <= wMax; c++ {
		hit := false
		for i := from; i <= to; i++ {
			x, y := crossToXY(o, i, c)
			if wall.At(x, y) != 0 {
				hit = true
				break
			}
		}
		if hit {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return float64(longest)
}

// probeBand drops perpendicular probes through the band at evenly spaced
// cross positions and measures the contiguous wall run through each. The
// band passes when at least 80% of probes land inside the thickness
// bounds; the reported thickness is the median of the passing runs.
func probeBand(wall *raster.Mask, o Orientation, from, to, wMin, wMax int, minPx, maxPx float64) (float64, bool) {
	center := (from + to) / 2
	var passing []float64
	for j := 0; j < spanningProbes; j++ {
		c := wMin + (wMax-wMin)*(j+1)/(spanningProbes+1)
		if x, y := crossToXY(o, center, c); wall.At(x, y) == 0 {
			continue
		}

		// Expand from the band center until the wall run ends.
		lo, hi := center, center
		for {
			x, y := crossToXY(o, lo-1, c)
			if !wall.In(x, y) || wall.At(x, y) == 0 {
				break
			}
			lo--
		}
		for {
			x, y := crossToXY(o, hi+1, c)
			if !wall.In(x, y) || wall.At(x, y) == 0 {
				break
			}
			hi++
		}
		run := float64(hi - lo + 1)
		if run >= minPx && run <= maxPx {
			passing = append(passing, run)
		}
	}
	if float64(len(passing)) < spanningProbeMinPass*spanningProbes {
		return 0, false
	}
	return median(passing), true
}
