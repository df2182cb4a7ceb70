package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds 8-bit RGB triples, row-major from the top row down
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Set stores the pixel at column i, row j (row 0 is the top)
func (fb *Framebuffer) Set(i, j int, rgb [3]uint8) {
	offset := (j*fb.Width + i) * 3
	fb.Pix[offset] = rgb[0]
	fb.Pix[offset+1] = rgb[1]
	fb.Pix[offset+2] = rgb[2]
}

// At returns the pixel at column i, row j
func (fb *Framebuffer) At(i, j int) [3]uint8 {
	offset := (j*fb.Width + i) * 3
	return [3]uint8{fb.Pix[offset], fb.Pix[offset+1], fb.Pix[offset+2]}
}

// RGBA converts the framebuffer to an opaque image
func (fb *Framebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			p := fb.At(i, j)
			img.SetRGBA(i, j, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return img
}

// ToRGB8 converts a linear colour to 8 bits per channel with gamma 2.
// NaN channels become black.
func ToRGB8(c core.Vec3) [3]uint8 {
	c = c.GammaCorrect(2.0)
	return [3]uint8{channel(c.X), channel(c.Y), channel(c.Z)}
}

func channel(x float64) uint8 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		x = 1
	}
	return uint8(255.99 * x)
}
