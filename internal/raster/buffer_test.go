package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_DiscardsBoundsOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))
	img.Set(10, 20, color.RGBA{1, 2, 3, 255})

	b := FromImage(img)
	if b.Width != 4 || b.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", b.Width, b.Height)
	}
	r, g, bl := b.RGB(0, 0)
	if r != 1 || g != 2 || bl != 3 {
		t.Errorf("pixel (Min.X, Min.Y) should land at (0,0), got (%d,%d,%d)", r, g, bl)
	}
}

func TestFromImage_GenericPath(t *testing.T) {
	// Gray16 exercises the slow path and the 16-to-8 bit scaling.
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 0xFFFF})
	img.SetGray16(1, 0, color.Gray16{Y: 0x8080})

	b := FromImage(img)
	if r, _, _ := b.RGB(0, 0); r != 255 {
		t.Errorf("full-white 16-bit pixel: got channel %d, want 255", r)
	}
	if r, _, _ := b.RGB(1, 0); r != 128 {
		t.Errorf("mid-gray 16-bit pixel: got channel %d, want 128", r)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 0, 0, 76},
		{0, 255, 0, 149},
		{0, 0, 255, 29},
	}
	for _, tt := range tests {
		got := Luminance(tt.r, tt.g, tt.b)
		if got != tt.want {
			t.Errorf("Luminance(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestDespeckle(t *testing.T) {
	b := NewBuffer(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			setGray(b, x, y, 255)
		}
	}
	setGray(b, 2, 2, 0) // isolated dust
	setGray(b, 0, 2, 0) // border pixel, never touched

	cleared := b.Despeckle(128)
	if cleared != 1 {
		t.Errorf("cleared: got %d, want 1", cleared)
	}
	if r, g, bl := b.RGB(2, 2); r != 255 || g != 255 || bl != 255 {
		t.Error("isolated dark pixel should be rewritten to white")
	}
	if b.LuminanceAt(0, 2) != 0 {
		t.Error("border pixels are out of despeckle scope")
	}
}

func TestDespeckle_KeepsConnectedStrokes(t *testing.T) {
	b := NewBuffer(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			setGray(b, x, y, 255)
		}
	}
	// A 2px stroke: each pixel has a dark neighbor.
	setGray(b, 2, 2, 0)
	setGray(b, 3, 2, 0)

	if cleared := b.Despeckle(128); cleared != 0 {
		t.Errorf("connected stroke pixels must survive, cleared %d", cleared)
	}
}
