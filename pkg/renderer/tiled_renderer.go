package renderer

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// TileCompletion reports that one tile has been written to the framebuffer. It is a
// progress notification only.
type TileCompletion struct {
	TileID    int
	Bounds    image.Rectangle
	WorkerID  int
	Completed int // Tiles finished so far, including this one
	Total     int // Tiles in the grid
	Duration  time.Duration
}

// TiledRenderer renders a world through a camera into a shared framebuffer, one tile per
// worker task
type TiledRenderer struct {
	world       core.Hittable
	camera      *Camera
	config      Config
	integrator  integrator.Integrator
	framebuffer *Framebuffer
	tiles       []*Tile
	running     atomic.Bool
	statsMu     sync.Mutex
	stats       RenderStats
}

// NewTiledRenderer validates config and prepares the tile grid and framebuffer. The world
// and camera must not be modified while a render is running.
func NewTiledRenderer(world core.Hittable, camera *Camera, config Config) (*TiledRenderer, error) {
	return NewTiledRendererWithIntegrator(world, camera, config, integrator.NewPathTracingIntegrator(config.MaxDepth))
}

// NewTiledRendererWithIntegrator is NewTiledRenderer with a caller-supplied integrator
func NewTiledRendererWithIntegrator(world core.Hittable, camera *Camera, config Config, integratorInst integrator.Integrator) (*TiledRenderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &TiledRenderer{
		world:       world,
		camera:      camera,
		config:      config,
		integrator:  integratorInst,
		framebuffer: NewFramebuffer(config.Width, config.Height),
		tiles:       NewTileGrid(config.Width, config.Height, config.TileWidth, config.TileHeight),
	}, nil
}

// Framebuffer returns the output buffer. It may be read at any time; pixels not yet
// rendered are zero.
func (r *TiledRenderer) Framebuffer() *Framebuffer {
	return r.framebuffer
}

// Tiles returns the tile grid in dispatch order
func (r *TiledRenderer) Tiles() []*Tile {
	return r.tiles
}

// Config returns the render configuration
func (r *TiledRenderer) Config() Config {
	return r.config
}

// Stats returns the statistics of the most recent finished render
func (r *TiledRenderer) Stats() RenderStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

// Render dispatches every tile to the worker pool and blocks until all of them finish.
// progress, if not nil, is called from the calling goroutine once per completed tile.
// A panic while rendering any tile aborts the render and is returned as ErrWorkerPanic.
func (r *TiledRenderer) Render(progress func(TileCompletion)) (RenderStats, error) {
	if !r.running.CompareAndSwap(false, true) {
		return RenderStats{}, ErrRenderInProgress
	}
	defer r.running.Store(false)

	return r.render(progress)
}

// Start runs Render in a new goroutine. Tile completions are delivered on the first channel,
// which is closed when the render ends; a failure is delivered on the second, which is
// closed afterwards. Both channels are buffered for the whole render, so a caller that stops
// reading and polls the framebuffer instead does not stall the workers.
func (r *TiledRenderer) Start() (<-chan TileCompletion, <-chan error) {
	tileChan := make(chan TileCompletion, len(r.tiles))
	errChan := make(chan error, 1)

	if !r.running.CompareAndSwap(false, true) {
		close(tileChan)
		errChan <- ErrRenderInProgress
		close(errChan)
		return tileChan, errChan
	}

	go func() {
		defer close(errChan)
		defer r.running.Store(false)

		_, err := r.render(func(tc TileCompletion) {
			tileChan <- tc
		})
		close(tileChan)
		if err != nil {
			errChan <- err
		}
	}()

	return tileChan, errChan
}

func (r *TiledRenderer) render(progress func(TileCompletion)) (RenderStats, error) {
	seed := r.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	numWorkers := r.config.workerCount()
	tileRenderer := NewTileRenderer(r.world, r.camera, r.integrator, r.config.Width, r.config.Height, r.config.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, r.framebuffer, numWorkers, len(r.tiles))

	stats := RenderStats{
		TotalTiles: len(r.tiles),
		Seed:       seed,
		Workers:    make([]WorkerStats, pool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	logger.Infof("rendering %dx%d: %d tiles, %d workers, %d spp, max depth %d, seed %d",
		r.config.Width, r.config.Height, len(r.tiles), numWorkers, r.config.SamplesPerPixel, r.config.MaxDepth, seed)

	start := time.Now()
	pool.Start()
	for _, tile := range r.tiles {
		pool.SubmitTask(TileTask{Tile: tile, Seed: tileSeed(seed, tile.ID)})
	}

	var firstErr error
	completed := 0
	for range r.tiles {
		result, _ := pool.GetResult()

		if result.Error != nil {
			logger.Errorf("worker %d failed: %v", result.WorkerID, result.Error)
			if firstErr == nil {
				firstErr = result.Error
				pool.Abort()
			}
			continue
		}
		if result.Skipped {
			continue
		}

		completed++
		stats.addTile(result.WorkerID, result.Stats)
		logger.Debugf("tile %d %v done by worker %d in %v (%d/%d)",
			result.Tile.ID, result.Tile.Bounds, result.WorkerID, result.Stats.Duration, completed, len(r.tiles))

		if progress != nil {
			progress(TileCompletion{
				TileID:    result.Tile.ID,
				Bounds:    result.Tile.Bounds,
				WorkerID:  result.WorkerID,
				Completed: completed,
				Total:     len(r.tiles),
				Duration:  result.Stats.Duration,
			})
		}
	}
	pool.Stop()
	stats.Elapsed = time.Since(start)

	if firstErr != nil {
		return stats, firstErr
	}

	logger.Infof("render finished in %v (%.0f samples/s)", stats.Elapsed, stats.SamplesPerSecond())

	r.statsMu.Lock()
	r.stats = stats
	r.statsMu.Unlock()

	return stats, nil
}
