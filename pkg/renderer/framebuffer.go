package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// PackRGB packs 8-bit channels as r<<16 | g<<8 | b
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackRGB splits a packed pixel into its channels
func UnpackRGB(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// QuantizeColor applies the square-root tone curve to a linear color and packs it
func QuantizeColor(c core.Vec3) uint32 {
	c = core.NewVec3(nonNegative(c.X), nonNegative(c.Y), nonNegative(c.Z)).Sqrt().Clamp(0, 1)
	return PackRGB(uint8(c.X*255.99), uint8(c.Y*255.99), uint8(c.Z*255.99))
}

// nonNegative maps negative and NaN channels to 0
func nonNegative(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	return value
}

// Framebuffer holds width*height packed RGB pixels in row-major order, row 0 at the top.
// Pixels are loaded and stored atomically, so a reader running concurrently with a render
// sees each pixel either before or after its write, never a mix.
type Framebuffer struct {
	width  int
	height int
	pixels []atomic.Uint32
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]atomic.Uint32, width*height),
	}
}

// Width returns the framebuffer width in pixels
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels
func (fb *Framebuffer) Height() int { return fb.height }

// Bounds returns the full pixel rectangle
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// At returns the packed pixel at (x, y)
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.pixels[y*fb.width+x].Load()
}

// Snapshot copies the current pixels in row-major order
func (fb *Framebuffer) Snapshot() []uint32 {
	out := make([]uint32, len(fb.pixels))
	for i := range fb.pixels {
		out[i] = fb.pixels[i].Load()
	}
	return out
}

// Image converts the current pixels to an opaque RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b := UnpackRGB(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Clear resets every pixel to zero
func (fb *Framebuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i].Store(0)
	}
}

// View returns a writer restricted to bounds, which must lie inside the framebuffer
func (fb *Framebuffer) View(bounds image.Rectangle) *TileView {
	if !bounds.In(fb.Bounds()) {
		panic(fmt.Sprintf("renderer: tile bounds %v outside framebuffer %v", bounds, fb.Bounds()))
	}
	return &TileView{fb: fb, bounds: bounds}
}

// TileView is the only way tiles write into the framebuffer. Tiles never overlap, so each
// view owns its pixels exclusively.
type TileView struct {
	fb     *Framebuffer
	bounds image.Rectangle
}

// Bounds returns the rectangle this view may write
func (tv *TileView) Bounds() image.Rectangle {
	return tv.bounds
}

// Set stores a packed pixel. Writing outside the view's bounds is a programming error.
func (tv *TileView) Set(x, y int, rgb uint32) {
	if !(image.Point{X: x, Y: y}).In(tv.bounds) {
		panic(fmt.Sprintf("renderer: pixel (%d,%d) outside tile %v", x, y, tv.bounds))
	}
	tv.fb.pixels[y*tv.fb.width+x].Store(rgb)
}
