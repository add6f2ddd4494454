package renderer

import (
	"fmt"
	"runtime"
)

// Config contains the image and sampling parameters for a tiled render
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	TileWidth       int   // Tile width in pixels; edge tiles are clipped to the image
	TileHeight      int   // Tile height in pixels
	SamplesPerPixel int   // Primary rays averaged per pixel
	MaxDepth        int   // Maximum number of scattering events per path
	NumWorkers      int   // Parallel workers (0 = use CPU count)
	Seed            int64 // Base seed for per-tile random streams (0 = seed from the clock)
}

// DefaultConfig returns the standard render settings
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		TileWidth:       50,
		TileHeight:      50,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      10,
		Seed:            0,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.TileWidth <= 0:
		return fmt.Errorf("%w: tile width must be positive, got %d", ErrInvalidConfig, c.TileWidth)
	case c.TileHeight <= 0:
		return fmt.Errorf("%w: tile height must be positive, got %d", ErrInvalidConfig, c.TileHeight)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// AspectRatio is width over height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// workerCount resolves NumWorkers, substituting the CPU count for non-positive values
func (c Config) workerCount() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}
