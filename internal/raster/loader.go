package raster

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// LoadImage decodes an image file into a Buffer.
//
// PNG, JPEG, GIF, TIFF, and BMP are supported. JPEG files with EXIF
// orientation are rotated upright before conversion.
func LoadImage(path string) (*Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// LoadImageSmoothed decodes an image and applies a Gaussian blur before
// conversion. Useful for dithered or heavily compressed scans where
// single-pixel noise would otherwise survive despeckling.
func LoadImageSmoothed(path string, sigma float64) (*Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if sigma > 0 {
		img = blur.Gaussian(img, sigma)
	}
	return FromImage(img), nil
}

// ToImage converts the buffer back to a standard image, sharing no memory
// with the buffer. Used by overlay rendering and debug output.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+4*b.Width], b.Pix[y*4*b.Width:])
	}
	return img
}
