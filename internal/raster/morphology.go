package raster

// Morphological operators over binary masks.
//
// Dilation is a separable "any-set" max filter: a horizontal sliding
// window pass followed by a vertical one, each keeping a running count of
// set pixels inside the window. Cost is O(pixels) per pass for any
// radius. Erosion is dilation of the complement; open and close are the
// usual compositions.

// Dilate returns a new mask where every pixel within Chebyshev distance
// radius of a set pixel is set. radius <= 0 returns a plain copy.
func Dilate(m *Mask, radius int) *Mask {
	return DilateRect(m, radius, radius)
}

// Erode returns a new mask keeping only pixels whose full
// (2*radius+1)-square neighborhood is set.
func Erode(m *Mask, radius int) *Mask {
	return ErodeRect(m, radius, radius)
}

// Open erodes then dilates, removing protrusions thinner than the kernel
// (text strokes, stray annotation marks).
func Open(m *Mask, radius int) *Mask {
	return Dilate(Erode(m, radius), radius)
}

// Close dilates then erodes, sealing gaps narrower than the kernel
// (doorway breaks in a wall line).
func Close(m *Mask, radius int) *Mask {
	return Erode(Dilate(m, radius), radius)
}

// DilateRect dilates with independent horizontal and vertical radii,
// i.e. a (2*rx+1)×(2*ry+1) rectangular structuring element.
func DilateRect(m *Mask, rx, ry int) *Mask {
	out := m.Clone()
	if rx > 0 {
		out = dilateAxis(out, rx, true)
	}
	if ry > 0 {
		out = dilateAxis(out, ry, false)
	}
	return out
}

// ErodeRect erodes with independent horizontal and vertical radii.
func ErodeRect(m *Mask, rx, ry int) *Mask {
	return DilateRect(m.Clone().Invert(), rx, ry).Invert()
}

// OpenRect requires a minimum extent of 2*r+1 on each axis independently;
// with rx != ry it keeps long thin features on one axis while removing
// isotropic noise.
func OpenRect(m *Mask, rx, ry int) *Mask {
	return DilateRect(ErodeRect(m, rx, ry), rx, ry)
}

// CloseRect seals gaps with an anisotropic kernel.
func CloseRect(m *Mask, rx, ry int) *Mask {
	return ErodeRect(DilateRect(m, rx, ry), rx, ry)
}

// dilateAxis runs one separable pass. horizontal selects the axis.
func dilateAxis(m *Mask, radius int, horizontal bool) *Mask {
	out := NewMask(m.Width, m.Height)
	outer, inner := m.Height, m.Width
	if !horizontal {
		outer, inner = m.Width, m.Height
	}

	at := func(line, i int) uint8 {
		if horizontal {
			return m.Pix[m.Index(i, line)]
		}
		return m.Pix[m.Index(line, i)]
	}
	set := func(line, i int) {
		if horizontal {
			out.Pix[out.Index(i, line)] = 1
		} else {
			out.Pix[out.Index(line, i)] = 1
		}
	}

	for line := 0; line < outer; line++ {
		// Running count of set pixels in [i-radius, i+radius].
		window := 0
		for i := 0; i < radius && i < inner; i++ {
			window += int(at(line, i))
		}
		for i := 0; i < inner; i++ {
			if lead := i + radius; lead < inner {
				window += int(at(line, lead))
			}
			if trail := i - radius - 1; trail >= 0 {
				window -= int(at(line, trail))
			}
			if window > 0 {
				set(line, i)
			}
		}
	}
	return out
}
