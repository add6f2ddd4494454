package integrator

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance carried back along ray from world
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3
}
