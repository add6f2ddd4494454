package core

import "errors"

var (
	ErrNoBoundingBox = errors.New("core: primitive has no bounding box over the requested interval")
	ErrEmptyScene    = errors.New("core: cannot build a BVH from an empty primitive set")
)
