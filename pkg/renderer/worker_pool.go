package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
	Seed int64 // Seed for this tile's private random stream
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile     *Tile
	WorkerID int
	Stats    TileStats
	Skipped  bool // The render was aborted before this tile started
	Error    error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	aborted     atomic.Bool
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	framebuffer  *Framebuffer
	pool         *WorkerPool // Parent pool, consulted for the abort flag
}

// NewWorkerPool creates a worker pool with queues sized for maxTiles so that submitting all
// tasks up front and collecting results later never blocks
func NewWorkerPool(tileRenderer *TileRenderer, framebuffer *Framebuffer, numWorkers, maxTiles int) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			tileRenderer: tileRenderer,
			framebuffer:  framebuffer,
			pool:         wp,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue and waits for workers to drain it
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Abort makes workers skip every task they have not started yet. Tiles already being
// rendered run to completion.
func (wp *WorkerPool) Abort() {
	wp.aborted.Store(true)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.pool.taskQueue {
		if w.pool.aborted.Load() {
			w.pool.resultQueue <- TileResult{Tile: task.Tile, WorkerID: w.ID, Skipped: true}
			continue
		}
		w.pool.resultQueue <- w.render(task)
	}
}

// render renders one tile, converting a panic into an ErrWorkerPanic result
func (w *Worker) render(task TileTask) (result TileResult) {
	result = TileResult{Tile: task.Tile, WorkerID: w.ID}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("%w: tile %d %v: %v", ErrWorkerPanic, task.Tile.ID, task.Tile.Bounds, r)
		}
	}()

	view := w.framebuffer.View(task.Tile.Bounds)
	sampler := core.NewSeededSampler(task.Seed)
	result.Stats = w.tileRenderer.RenderTile(view, sampler)
	return result
}
