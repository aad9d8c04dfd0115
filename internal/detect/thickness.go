package detect

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"planscan/internal/geometry"
	"planscan/internal/raster"
)

// EdgeThickness is the measured wall thickness along one polygon edge.
type EdgeThickness struct {
	// Edge is the index of the polygon edge (vertex i to i+1).
	Edge int `json:"edge"`

	// Pixels is the center-to-center wall thickness in pixels.
	Pixels float64 `json:"pixels"`

	// Units is the thickness converted by the caller's pixel scale.
	Units float64 `json:"units"`
}

// ThicknessSummary aggregates per-edge measurements.
type ThicknessSummary struct {
	// Edges holds one record per edge with at least two valid probes.
	Edges []EdgeThickness `json:"edges"`

	// MedianPixels is the median of the per-edge medians.
	MedianPixels float64 `json:"median_pixels"`

	// MedianUnits is MedianPixels converted by the pixel scale.
	MedianUnits float64 `json:"median_units"`
}

// ThicknessOptions bounds the perpendicular wall probes.
type ThicknessOptions struct {
	// MaxProbe is the probe depth in pixels.
	MaxProbe int

	// ProbeInward probes toward the centroid instead of away from it.
	// Envelope polygons trace the outer wall face, so their walls lie
	// inward.
	ProbeInward bool

	// MinPixels and MaxPixels bound acceptable thickness samples;
	// samples outside the range are discarded as misreads.
	MinPixels float64
	MaxPixels float64
}

// Background steps tolerated inside a wall band before it is considered
// ended; anti-aliasing at wall boundaries produces short bright runs.
const probeBackgroundSlack = 2

// Samples taken along each polygon edge.
const probesPerEdge = 7

// ProbeWallThickness walks from start along dir (a unit vector), up to
// maxProbe steps, classifying each pixel, and returns the wall thickness
// in pixels.
//
// The walk tracks the contiguous wall band (edge and fill pixels,
// tolerating up to 2 consecutive background pixels) and the edge-class
// sub-runs inside it. With two or more edge runs the thickness is the
// distance between the centers of the first and last run — the inner and
// outer wall line. With a band but fewer edge runs it is the band width.
// No band at all returns 0.
func ProbeWallThickness(b *raster.Buffer, start, dir geometry.Point, maxProbe int) float64 {
	bandStart, bandEnd := -1, -1
	bgRun := 0

	type edgeRun struct{ start, end int }
	var runs []edgeRun
	inEdgeRun := false

	for s := 0; s <= maxProbe; s++ {
		x := int(math.Round(start.X + dir.X*float64(s)))
		y := int(math.Round(start.Y + dir.Y*float64(s)))
		if !b.In(x, y) {
			break
		}
		class := b.ClassifyAt(x, y)

		if class == raster.ClassBackground {
			inEdgeRun = false
			if bandStart >= 0 {
				bgRun++
				if bgRun > probeBackgroundSlack {
					break
				}
			}
			continue
		}

		bgRun = 0
		if bandStart < 0 {
			bandStart = s
		}
		bandEnd = s

		if class == raster.ClassEdge {
			if inEdgeRun {
				runs[len(runs)-1].end = s
			} else {
				runs = append(runs, edgeRun{start: s, end: s})
				inEdgeRun = true
			}
		} else {
			inEdgeRun = false
		}
	}

	if bandStart < 0 {
		return 0
	}
	if len(runs) >= 2 {
		first := runs[0]
		last := runs[len(runs)-1]
		c1 := float64(first.start+first.end) / 2
		c2 := float64(last.start+last.end) / 2
		return c2 - c1
	}
	return float64(bandEnd - bandStart + 1)
}

// DetectWallThickness probes the wall thickness along every polygon edge
// and aggregates the results.
//
// Each edge is sampled at 7 evenly spaced points, probed perpendicular to
// the edge on the side facing away from the polygon centroid (or toward
// it with ProbeInward). Samples outside [MinPixels, MaxPixels] are
// discarded; an edge needs at least 2 valid samples to produce a record.
// The per-edge value is the median of its samples, and the summary median
// is the median of the per-edge medians. Returns nil when no edge
// produced a valid measurement.
func DetectWallThickness(b *raster.Buffer, pg geometry.Polygon, pixelsPerUnit float64, opts ThicknessOptions) *ThicknessSummary {
	if len(pg) < 3 || pixelsPerUnit <= 0 {
		return nil
	}
	centroid := pg.Centroid()

	summary := &ThicknessSummary{}
	var edgeMedians []float64

	for i := range pg {
		seg := pg.Edge(i)
		d := seg.B.Sub(seg.A)
		length := d.Length()
		if length == 0 {
			continue
		}
		d = d.Scale(1 / length)
		perp := geometry.Point{X: -d.Y, Y: d.X}

		mid := seg.A.Add(seg.B).Scale(0.5)
		outward := mid.Sub(centroid)
		if perp.Dot(outward) < 0 {
			perp = perp.Scale(-1)
		}
		if opts.ProbeInward {
			perp = perp.Scale(-1)
		}

		var samples []float64
		for j := 0; j < probesPerEdge; j++ {
			t := float64(j+1) / float64(probesPerEdge+1)
			at := seg.A.Add(seg.B.Sub(seg.A).Scale(t))
			px := ProbeWallThickness(b, at, perp, opts.MaxProbe)
			if px >= opts.MinPixels && px <= opts.MaxPixels {
				samples = append(samples, px)
			}
		}
		if len(samples) < 2 {
			continue
		}
		med := median(samples)
		summary.Edges = append(summary.Edges, EdgeThickness{
			Edge:   i,
			Pixels: med,
			Units:  med / pixelsPerUnit,
		})
		edgeMedians = append(edgeMedians, med)
	}

	if len(edgeMedians) == 0 {
		return nil
	}
	summary.MedianPixels = median(edgeMedians)
	summary.MedianUnits = summary.MedianPixels / pixelsPerUnit
	return summary
}

// median returns the empirical median of xs. xs is reordered.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	return stat.Quantile(0.5, stat.Empirical, xs, nil)
}
