package raster

// FillResult is the outcome of a seeded flood fill.
//
// Count is the number of pixels filled. When the fill exceeded its
// budget, Count is greater than the budget and Region holds the partial
// fill reached so far; the caller decides whether partial results are
// usable.
type FillResult struct {
	Region *Mask
	Count  int
}

// FloodFill grows a 4-connected region of open (0) pixels from the seed.
//
// Seeding outside the mask or on a wall pixel yields Count == 0. The fill
// stops as soon as Count exceeds maxPixels, which guards against a seed
// leaking into exterior space through an unsealed gap: a run that blows
// the budget returns quickly instead of scanning the whole image.
func FloodFill(m *Mask, seedX, seedY, maxPixels int) FillResult {
	region := NewMask(m.Width, m.Height)
	if !m.In(seedX, seedY) || m.Pix[m.Index(seedX, seedY)] != 0 {
		return FillResult{Region: region}
	}

	queue := make([]int, 0, 1024)
	start := m.Index(seedX, seedY)
	queue = append(queue, start)
	region.Pix[start] = 1
	count := 0

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		count++
		if count > maxPixels {
			return FillResult{Region: region, Count: count}
		}
		x, y := idx%m.Width, idx/m.Width
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if !m.In(nx, ny) {
				continue
			}
			ni := m.Index(nx, ny)
			if m.Pix[ni] == 0 && region.Pix[ni] == 0 {
				region.Pix[ni] = 1
				queue = append(queue, ni)
			}
		}
	}
	return FillResult{Region: region, Count: count}
}

// FloodFillFromBorder marks every open pixel reachable from any open
// border pixel. The returned mask is the exterior set; an open pixel left
// unmarked is enclosed by walls.
func FloodFillFromBorder(m *Mask) *Mask {
	reached := NewMask(m.Width, m.Height)
	queue := make([]int, 0, 2*(m.Width+m.Height))

	seed := func(x, y int) {
		idx := m.Index(x, y)
		if m.Pix[idx] == 0 && reached.Pix[idx] == 0 {
			reached.Pix[idx] = 1
			queue = append(queue, idx)
		}
	}
	for x := 0; x < m.Width; x++ {
		seed(x, 0)
		seed(x, m.Height-1)
	}
	for y := 0; y < m.Height; y++ {
		seed(0, y)
		seed(m.Width-1, y)
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x, y := idx%m.Width, idx/m.Width
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if !m.In(nx, ny) {
				continue
			}
			ni := m.Index(nx, ny)
			if m.Pix[ni] == 0 && reached.Pix[ni] == 0 {
				reached.Pix[ni] = 1
				queue = append(queue, ni)
			}
		}
	}
	return reached
}

// FillHoles flips every enclosed background pixel of a foreground region
// to foreground, in place, and returns the region.
//
// A background pixel is enclosed when the border flood over the region's
// complement cannot reach it — a text label sitting inside a room, for
// example. After this pass the region has no interior holes.
func FillHoles(region *Mask) *Mask {
	outside := FloodFillFromBorder(region)
	for i, v := range region.Pix {
		if v == 0 && outside.Pix[i] == 0 {
			region.Pix[i] = 1
		}
	}
	return region
}
