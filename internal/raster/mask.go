package raster

// Mask is a binary width×height grid over the same coordinate space as
// its source Buffer. 1 marks a wall pixel, 0 marks open space.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates an all-open mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Index returns the offset of (x, y) in Pix.
func (m *Mask) Index(x, y int) int {
	return y*m.Width + x
}

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the value at (x, y). Out-of-bounds reads return 0.
func (m *Mask) At(x, y int) uint8 {
	if !m.In(x, y) {
		return 0
	}
	return m.Pix[m.Index(x, y)]
}

// Set writes v at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if m.In(x, y) {
		m.Pix[m.Index(x, y)] = v
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width, m.Height)
	copy(c.Pix, m.Pix)
	return c
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Invert flips every pixel in place and returns the mask.
func (m *Mask) Invert() *Mask {
	for i, v := range m.Pix {
		if v == 0 {
			m.Pix[i] = 1
		} else {
			m.Pix[i] = 0
		}
	}
	return m
}

// ThresholdMask marks every pixel with luminance strictly below threshold
// as wall. A pixel with luminance exactly equal to the threshold is open.
func ThresholdMask(b *Buffer, threshold uint8) *Mask {
	m := NewMask(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.LuminanceAt(x, y) < threshold {
				m.Pix[m.Index(x, y)] = 1
			}
		}
	}
	return m
}

// GrayFillMask marks pixels whose luminance lies within [low, high] as
// wall. Dark pixels below the window are additionally treated as wall
// when they are clearly colored (saturation > 0.3 with a max channel
// above 40): colored wall fills can have lower luminance than the
// neutral grays the window was detected from.
func GrayFillMask(b *Buffer, low, high uint8) *Mask {
	m := NewMask(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.RGB(x, y)
			lum := Luminance(r, g, bl)
			wall := lum >= low && lum <= high
			if !wall && lum < low {
				maxC := r
				if g > maxC {
					maxC = g
				}
				if bl > maxC {
					maxC = bl
				}
				if maxC > 40 && Saturation(r, g, bl) > 0.3 {
					wall = true
				}
			}
			if wall {
				m.Pix[m.Index(x, y)] = 1
			}
		}
	}
	return m
}

// WallRange is a detected luminance window covering gray wall fill.
type WallRange struct {
	Low  uint8
	High uint8
}

// AutoDetectWallRange inspects the luminance histogram of the buffer and
// returns the window covering the dominant gray wall fill, or nil when no
// significant mid-luminance fill exists (black-line-only plans).
//
// The white level is the lowest luminance that, together with everything
// brighter, accounts for the top 20% of pixel mass. The tallest histogram
// peak is searched in [10, whiteLevel-20]; a peak holding less than 0.3%
// of all pixels is rejected. The returned window is peak±80, clamped to
// stay below whiteLevel-15 and above 5.
func AutoDetectWallRange(b *Buffer) *WallRange {
	total := b.Width * b.Height
	if total == 0 {
		return nil
	}

	var hist [256]int
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			hist[b.LuminanceAt(x, y)]++
		}
	}

	// White level: walk down from 255 until 20% of the mass is covered.
	whiteLevel := 255
	acc := 0
	for v := 255; v >= 0; v-- {
		acc += hist[v]
		if acc >= total/5 {
			whiteLevel = v
			break
		}
	}

	hi := whiteLevel - 20
	if hi < 10 {
		return nil
	}
	peak, peakCount := -1, 0
	for v := 10; v <= hi; v++ {
		if hist[v] > peakCount {
			peak = v
			peakCount = hist[v]
		}
	}
	if peak < 0 || float64(peakCount) < float64(total)*0.003 {
		return nil
	}

	low := peak - 80
	high := peak + 80
	if high > whiteLevel-15 {
		high = whiteLevel - 15
	}
	if low < 5 {
		low = 5
	}
	if low > high {
		return nil
	}
	return &WallRange{Low: uint8(low), High: uint8(high)}
}
