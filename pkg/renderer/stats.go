package renderer

import (
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalTiles   int           // Number of tiles in the grid
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of primary rays traced
	Elapsed      time.Duration // Wall time from dispatch to the last tile
	Seed         int64         // Base seed actually used
	Workers      []WorkerStats // Per worker breakdown, indexed by worker ID
}

// WorkerStats describes the share of the render done by one worker
type WorkerStats struct {
	ID       int
	Tiles    int
	Pixels   int
	BusyTime time.Duration
}

// TileStats is the work done for a single tile
type TileStats struct {
	Pixels   int
	Samples  int
	Duration time.Duration
}

// SamplesPerSecond is the primary ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// addTile folds a finished tile into the totals for workerID
func (s *RenderStats) addTile(workerID int, tile TileStats) {
	s.TotalPixels += tile.Pixels
	s.TotalSamples += tile.Samples

	w := &s.Workers[workerID]
	w.Tiles++
	w.Pixels += tile.Pixels
	w.BusyTime += tile.Duration
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
