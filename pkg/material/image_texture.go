package material

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image mapped through surface UV coordinates
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromImage copies img into a texture, converting channels to [0,1]
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 0xffff)
		}
	}
	return NewImageTexture(width, height, pixels)
}

// LoadImageTexture decodes a PNG or JPEG file into a texture
func LoadImageTexture(path string) (*ImageTexture, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load image texture %q: %w", path, err)
	}
	return NewImageTextureFromImage(img), nil
}

// Value samples the texture at the given UV coordinates using nearest-neighbor filtering.
// UVs are clamped to [0,1]; v=0 is the bottom row of the image.
func (t *ImageTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		// Cyan makes a missing image obvious
		return core.NewVec3(0, 1, 1)
	}

	u = max(0.0, min(1.0, u))
	v = 1.0 - max(0.0, min(1.0, v))

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
