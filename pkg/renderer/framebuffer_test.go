package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestPackRGB(t *testing.T) {
	tests := []struct {
		r, g, b  uint8
		expected uint32
	}{
		{0, 0, 0, 0x000000},
		{255, 0, 0, 0xff0000},
		{0, 255, 0, 0x00ff00},
		{0, 0, 255, 0x0000ff},
		{0x12, 0x34, 0x56, 0x123456},
	}

	for _, tt := range tests {
		packed := PackRGB(tt.r, tt.g, tt.b)
		if packed != tt.expected {
			t.Errorf("PackRGB(%d,%d,%d) = %#06x, want %#06x", tt.r, tt.g, tt.b, packed, tt.expected)
		}
		r, g, b := UnpackRGB(packed)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("UnpackRGB(%#06x) = %d,%d,%d", packed, r, g, b)
		}
	}
}

func TestQuantizeColor(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected uint32
	}{
		{"black", core.NewVec3(0, 0, 0), 0x000000},
		{"white", core.NewVec3(1, 1, 1), 0xffffff},
		{"over-bright clamps", core.NewVec3(4, 1.5, 1), 0xffffff},
		{"square root tone curve", core.NewVec3(0.25, 0.25, 0.25), PackRGB(127, 127, 127)},
		{"negative and NaN are black", core.NewVec3(-1, math.NaN(), 0), 0x000000},
		{"channels stay separate", core.NewVec3(1, 0, 0.25), PackRGB(255, 0, 127)},
		{"infinity clamps to white", core.NewVec3(math.Inf(1), 0, 0), PackRGB(255, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuantizeColor(tt.color); got != tt.expected {
				t.Errorf("QuantizeColor(%v) = %#06x, want %#06x", tt.color, got, tt.expected)
			}
		})
	}
}

func TestFramebuffer_ViewWritesOnlyItsTile(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	view := fb.View(image.Rect(1, 1, 3, 3))

	view.Set(1, 1, 0x0000ff)
	view.Set(2, 2, 0x00ff00)

	snapshot := fb.Snapshot()
	for i, p := range snapshot {
		x, y := i%4, i/4
		var want uint32
		switch {
		case x == 1 && y == 1:
			want = 0x0000ff
		case x == 2 && y == 2:
			want = 0x00ff00
		}
		if p != want {
			t.Errorf("pixel (%d,%d) = %#06x, want %#06x", x, y, p, want)
		}
	}

	if fb.At(2, 2) != 0x00ff00 {
		t.Errorf("At(2,2) = %#06x", fb.At(2, 2))
	}
}

func TestFramebuffer_ViewRejectsOutsideWrites(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	view := fb.View(image.Rect(0, 0, 2, 2))

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic when writing outside the tile")
		}
		if fb.At(2, 2) != 0 {
			t.Error("Outside write must not reach the framebuffer")
		}
	}()
	view.Set(2, 2, 0xffffff)
}

func TestFramebuffer_ViewOutsideFramebufferPanics(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for a view outside the framebuffer")
		}
	}()
	fb.View(image.Rect(2, 2, 5, 4))
}

func TestFramebuffer_Image(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.View(fb.Bounds()).Set(1, 0, PackRGB(10, 20, 30))

	img := fb.Image()
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Pixel (1,0) = %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("Unwritten pixel should be opaque black, got %v", got)
	}

	fb.Clear()
	for _, p := range fb.Snapshot() {
		if p != 0 {
			t.Fatal("Clear should zero every pixel")
		}
	}
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name                  string
		width, height         int
		tileWidth, tileHeight int
		expectedTiles         int
	}{
		{"exact fit", 100, 50, 50, 50, 2},
		{"clipped right and bottom", 37, 23, 8, 5, 5 * 5},
		{"tile larger than image", 10, 10, 64, 64, 1},
		{"non-square tiles", 800, 600, 50, 25, 16 * 24},
		{"single pixel", 1, 1, 50, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileWidth, tt.tileHeight)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel is covered by exactly one tile
			coverage := make([]int, tt.width*tt.height)
			imageBounds := image.Rect(0, 0, tt.width, tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				if !tile.Bounds.In(imageBounds) || tile.Bounds.Empty() {
					t.Fatalf("Tile %d bounds %v invalid for %v", i, tile.Bounds, imageBounds)
				}
				if tile.Bounds.Dx() > tt.tileWidth || tile.Bounds.Dy() > tt.tileHeight {
					t.Errorf("Tile %d larger than requested: %v", i, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y*tt.width+x]++
					}
				}
			}
			for i, c := range coverage {
				if c != 1 {
					t.Fatalf("Pixel %d covered %d times", i, c)
				}
			}
		})
	}
}

func TestTileSeedsAreDistinct(t *testing.T) {
	seen := make(map[int64]bool)
	for _, base := range []int64{1, 2, 42} {
		for id := 0; id < 500; id++ {
			seed := tileSeed(base, id)
			if seen[seed] {
				t.Fatalf("Duplicate seed %d (base %d, tile %d)", seed, base, id)
			}
			seen[seed] = true
		}
	}
}
