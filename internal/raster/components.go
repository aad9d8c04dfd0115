package raster

// FilterSmallComponents removes connected wall regions smaller than
// minArea pixels from the mask, in place, and returns the mask.
//
// Components are 4-connected and labeled breadth-first; the transient
// label grid is discarded on return. The area floor is what strips text
// glyphs and dimension annotations while leaving wall segments intact.
func FilterSmallComponents(m *Mask, minArea int) *Mask {
	if minArea <= 1 {
		return m
	}

	labels := make([]int32, len(m.Pix))
	var areas []int // areas[label-1] = pixel count
	queue := make([]int, 0, 256)

	next := int32(0)
	for start, v := range m.Pix {
		if v == 0 || labels[start] != 0 {
			continue
		}
		next++
		label := next
		area := 0
		queue = append(queue[:0], start)
		labels[start] = label
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			area++
			x, y := idx%m.Width, idx/m.Width
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if !m.In(nx, ny) {
					continue
				}
				ni := m.Index(nx, ny)
				if m.Pix[ni] != 0 && labels[ni] == 0 {
					labels[ni] = label
					queue = append(queue, ni)
				}
			}
		}
		areas = append(areas, area)
	}

	for i, label := range labels {
		if label != 0 && areas[label-1] < minArea {
			m.Pix[i] = 0
		}
	}
	return m
}
