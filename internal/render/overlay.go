package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"planscan/internal/detect"
	"planscan/internal/geometry"
)

// Style configures overlay colors and sizing. Colors are hex strings
// ("#RRGGBB" or "#RRGGBBAA"); an unparsable color falls back to
// semi-transparent red.
type Style struct {
	PolygonColor string
	GapColor     string
	WallColor    string

	// LineWidth is the stroke width in pixels.
	LineWidth int

	// Labels enables per-feature text labels.
	Labels bool

	// MaxDimension, when positive, downscales the final image so its
	// longest side does not exceed it.
	MaxDimension int
}

// DefaultStyle returns the standard overlay style.
func DefaultStyle() Style {
	return Style{
		PolygonColor: "#00C000",
		GapColor:     "#0060FF",
		WallColor:    "#FF8000",
		LineWidth:    3,
		Labels:       true,
	}
}

// Overlay accumulates drawing operations on a copy of the base image.
type Overlay struct {
	img   *image.RGBA
	style Style
}

// NewOverlay copies base into a drawable image.
func NewOverlay(base image.Image, style Style) *Overlay {
	bounds := base.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, base, bounds.Min, draw.Src)
	if style.LineWidth < 1 {
		style.LineWidth = 1
	}
	return &Overlay{img: img, style: style}
}

// DrawRoom draws a room result: outline, door-gap markers, and a label
// at the polygon centroid.
func (o *Overlay) DrawRoom(r *detect.RoomResult, label string) {
	if r == nil {
		return
	}
	o.DrawPolygon(r.Polygon, o.style.PolygonColor)
	o.DrawGaps(r.DoorGaps)
	if o.style.Labels && label != "" {
		c := r.Polygon.Centroid()
		o.Label(int(c.X), int(c.Y), label)
	}
}

// DrawEnvelope draws an envelope result: outline and spanning-wall
// centerlines.
func (o *Overlay) DrawEnvelope(r *detect.EnvelopeResult) {
	if r == nil {
		return
	}
	o.DrawPolygon(r.Polygon, o.style.PolygonColor)
	o.DrawSpanningWalls(r.SpanningWalls)
}

// DrawPolygon strokes a closed polygon outline.
func (o *Overlay) DrawPolygon(pg geometry.Polygon, hex string) {
	c := parseHexColor(hex)
	for i := range pg {
		seg := pg.Edge(i)
		o.drawLine(seg.A, seg.B, c)
	}
}

// DrawGaps marks each door gap with a filled dot sized by its span.
func (o *Overlay) DrawGaps(gaps []detect.DoorGap) {
	c := parseHexColor(o.style.GapColor)
	for i, g := range gaps {
		radius := int(g.SpanPixels / 8)
		if radius < o.style.LineWidth+1 {
			radius = o.style.LineWidth + 1
		}
		o.fillCircle(int(g.Mid.X), int(g.Mid.Y), radius, c)
		if o.style.Labels {
			o.Label(int(g.Mid.X)+radius+2, int(g.Mid.Y), fmt.Sprintf("gap %d", i+1))
		}
	}
}

// DrawSpanningWalls strokes each wall centerline, distinct hues per wall
// so adjacent walls stay tellable apart.
func (o *Overlay) DrawSpanningWalls(walls []detect.SpanningWall) {
	base := parseHexColor(o.style.WallColor)
	palette := wallPalette(base, len(walls))
	for i, w := range walls {
		o.drawLine(w.Start, w.End, palette[i])
		if o.style.Labels {
			mid := w.Start.Add(w.End).Scale(0.5)
			o.Label(int(mid.X), int(mid.Y)-10, fmt.Sprintf("%s %.0f", w.Orientation, w.ThicknessUnits))
		}
	}
}

// Label draws text at (x, y) with a dark backing box.
func (o *Overlay) Label(x, y int, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	bg := color.RGBA{0, 0, 0, 180}
	for dy := -face.Ascent - 1; dy <= face.Descent; dy++ {
		for dx := -2; dx < width+2; dx++ {
			o.set(x+dx, y+dy, bg)
		}
	}
	d := font.Drawer{
		Dst:  o.img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Image returns the rendered overlay, downscaled to MaxDimension when
// configured.
func (o *Overlay) Image() image.Image {
	bounds := o.img.Bounds()
	longest := bounds.Dx()
	if bounds.Dy() > longest {
		longest = bounds.Dy()
	}
	if o.style.MaxDimension > 0 && longest > o.style.MaxDimension {
		scale := float64(o.style.MaxDimension) / float64(longest)
		return imaging.Resize(o.img,
			int(float64(bounds.Dx())*scale), int(float64(bounds.Dy())*scale),
			imaging.Lanczos)
	}
	return o.img
}

// Save writes the overlay to path; the format follows the extension.
func (o *Overlay) Save(path string) error {
	if err := imaging.Save(o.Image(), path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// drawLine strokes from a to b at the configured width.
func (o *Overlay) drawLine(a, b geometry.Point, c color.RGBA) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		o.fillCircle(int(a.X), int(a.Y), o.style.LineWidth/2, c)
		return
	}
	steps := int(length) + 1
	half := o.style.LineWidth / 2
	for s := 0; s <= steps; s++ {
		p := a.Add(d.Scale(float64(s) / float64(steps)))
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				o.set(x+dx, y+dy, c)
			}
		}
	}
}

func (o *Overlay) fillCircle(cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				o.set(cx+dx, cy+dy, c)
			}
		}
	}
}

// set blends c over the pixel, honoring c's alpha.
func (o *Overlay) set(x, y int, c color.RGBA) {
	bounds := o.img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if c.A == 255 {
		o.img.SetRGBA(x, y, c)
		return
	}
	old := o.img.RGBAAt(x, y)
	a := uint32(c.A)
	blend := func(n, old uint8) uint8 {
		return uint8((uint32(n)*a + uint32(old)*(255-a)) / 255)
	}
	o.img.SetRGBA(x, y, color.RGBA{
		R: blend(c.R, old.R),
		G: blend(c.G, old.G),
		B: blend(c.B, old.B),
		A: 255,
	})
}

// wallPalette spreads n hues around the base color's hue.
func wallPalette(base color.RGBA, n int) []color.RGBA {
	if n == 0 {
		return nil
	}
	h, s, v := colorful.Color{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
	}.Hsv()
	out := make([]color.RGBA, n)
	for i := range out {
		hue := math.Mod(h+float64(i)*360/float64(n)/2, 360)
		c := colorful.Hsv(hue, s, v)
		out[i] = color.RGBA{
			R: uint8(c.R * 255),
			G: uint8(c.G * 255),
			B: uint8(c.B * 255),
			A: base.A,
		}
	}
	return out
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA"; invalid input yields
// semi-transparent red.
func parseHexColor(hex string) color.RGBA {
	fallback := color.RGBA{255, 0, 0, 200}
	if len(hex) == 0 {
		return fallback
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	switch len(hex) {
	case 6:
		return color.RGBA{uint8(val >> 16), uint8(val >> 8), uint8(val), 255}
	case 8:
		return color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}
	}
	return fallback
}
