package texture

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Image provides color from a 2D image
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImage creates a new image texture
func NewImage(width, height int, pixels []core.Vec3) (*Image, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("image texture: %dx%d does not match %d pixels", width, height, len(pixels))
	}
	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// Value samples the texture using nearest-neighbor filtering with UV clamped to [0, 1]
func (t *Image) Value(u, v float64, point core.Vec3) core.Vec3 {
	if math.IsNaN(u) {
		u = 0
	}
	if math.IsNaN(v) {
		v = 0
	}
	u = max(0, min(1, u))
	// V=0 is bottom, V=1 is top; image rows start at the top
	v = 1.0 - max(0, min(1, v))

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
