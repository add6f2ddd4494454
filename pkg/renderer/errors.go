package renderer

import "errors"

var (
	ErrInvalidConfig    = errors.New("renderer: invalid configuration")
	ErrWorkerPanic      = errors.New("renderer: worker panicked while rendering a tile")
	ErrRenderInProgress = errors.New("renderer: a render is already in progress")
)
