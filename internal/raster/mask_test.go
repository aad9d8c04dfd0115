package raster

import (
	"testing"
)

func TestThresholdMask_Boundary(t *testing.T) {
	// One pixel per luminance value around the threshold.
	b := NewBuffer(3, 1)
	setGray(b, 0, 0, 119)
	setGray(b, 1, 0, 120)
	setGray(b, 2, 0, 121)

	m := ThresholdMask(b, 120)

	if m.At(0, 0) != 1 {
		t.Error("luminance 119 should be wall at threshold 120")
	}
	if m.At(1, 0) != 0 {
		t.Error("luminance exactly 120 should be open (strict comparison)")
	}
	if m.At(2, 0) != 0 {
		t.Error("luminance 121 should be open")
	}
}

func TestGrayFillMask(t *testing.T) {
	b := NewBuffer(4, 1)
	setGray(b, 0, 0, 150) // inside window
	setGray(b, 1, 0, 250) // bright background
	setGray(b, 2, 0, 30)  // dark neutral below window
	setRGB(b, 3, 0, 180, 40, 40) // dark but saturated red fill

	m := GrayFillMask(b, 100, 200)

	if m.At(0, 0) != 1 {
		t.Error("mid-gray inside window should be wall")
	}
	if m.At(1, 0) != 0 {
		t.Error("bright background should be open")
	}
	if m.At(2, 0) != 0 {
		t.Error("dark neutral below window should be open")
	}
	if m.At(3, 0) != 1 {
		t.Error("saturated color below window should be wall")
	}
}

func TestAutoDetectWallRange(t *testing.T) {
	// 70% white background, 30% gray fill at luminance 140.
	b := NewBuffer(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if y < 30 {
				setGray(b, x, y, 140)
			} else {
				setGray(b, x, y, 255)
			}
		}
	}

	r := AutoDetectWallRange(b)
	if r == nil {
		t.Fatal("expected a wall range for a plan with 30% gray fill")
	}
	if 140 < int(r.Low) || 140 > int(r.High) {
		t.Errorf("window [%d, %d] should contain the fill luminance 140", r.Low, r.High)
	}
	if r.High >= 240 {
		t.Errorf("window high %d should stay clear of the white level", r.High)
	}
}

func TestAutoDetectWallRange_BlackLinePlan(t *testing.T) {
	// Thin black lines on white: no dominant mid-luminance fill.
	b := NewBuffer(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			setGray(b, x, y, 255)
		}
	}
	for x := 0; x < 100; x++ {
		setGray(b, x, 50, 0)
	}

	// The line pixels sit at luminance 0, below the peak search floor.
	if r := AutoDetectWallRange(b); r != nil {
		t.Errorf("black-line-only plan should yield no range, got [%d, %d]", r.Low, r.High)
	}
}

func TestMask_AtOutOfBounds(t *testing.T) {
	m := NewMask(2, 2)
	m.Set(0, 0, 1)

	if m.At(-1, 0) != 0 || m.At(0, -1) != 0 || m.At(2, 0) != 0 || m.At(0, 2) != 0 {
		t.Error("out-of-bounds reads must return 0")
	}
	m.Set(5, 5, 1) // ignored
	if m.Count() != 1 {
		t.Errorf("Count: got %d, want 1", m.Count())
	}
}

func TestMask_CloneIsIndependent(t *testing.T) {
	m := NewMask(2, 2)
	m.Set(1, 1, 1)
	c := m.Clone()
	c.Set(0, 0, 1)

	if m.At(0, 0) != 0 {
		t.Error("writing the clone must not affect the original")
	}
	if c.At(1, 1) != 1 {
		t.Error("clone must carry the original's pixels")
	}
}

func TestMask_Invert(t *testing.T) {
	m := NewMask(2, 1)
	m.Set(0, 0, 1)
	m.Invert()

	if m.At(0, 0) != 0 || m.At(1, 0) != 1 {
		t.Error("invert must flip every pixel")
	}
}

// Helper functions

// setGray writes an opaque neutral gray pixel.
func setGray(b *Buffer, x, y int, v uint8) {
	setRGB(b, x, y, v, v, v)
}

func setRGB(b *Buffer, x, y int, r, g, bl uint8) {
	i := b.Index(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = 255
}
