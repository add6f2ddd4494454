package scene

import (
	"fmt"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Objects      []core.Hittable       // Primitives in the scene
	CameraConfig renderer.CameraConfig // Default view; the renderer supplies the aspect ratio
	World        core.Hittable         // BVH over Objects, built by Preprocess
}

// Preprocess builds the BVH over the camera's shutter interval so moving primitives are
// bounded for every ray time the camera can produce
func (s *Scene) Preprocess(sampler core.Sampler) error {
	bvh, err := core.NewBVH(s.Objects, s.CameraConfig.ShutterOpen, s.CameraConfig.ShutterClose, sampler)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.World = bvh
	return nil
}

// NewCamera creates the scene camera for an image with the given aspect ratio, applying
// overrides on top of the scene's default view. The shutter interval always stays the one
// the world was built for.
func (s *Scene) NewCamera(aspectRatio float64, overrides ...renderer.CameraOverride) *renderer.Camera {
	config := s.CameraConfig
	for _, override := range overrides {
		config = renderer.MergeCameraConfig(config, override)
	}
	config.AspectRatio = aspectRatio
	return renderer.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// add appends primitives to the scene
func (s *Scene) add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}
