package integrator

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// HitEpsilon is the minimum ray parameter accepted for a hit. Continuation rays start on the
// surface they left, so accepting smaller t would re-hit it (shadow acne).
const HitEpsilon = 0.001

var (
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a hard depth cap.
// Reaching the cap is treated as absorption.
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single primary ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, 0)
}

// rayColor follows one path segment. Scattering is only attempted while depth < MaxDepth,
// so MaxDepth bounds the number of bounces; a ray that still hits something beyond it
// contributes black.
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, HitEpsilon, math.MaxFloat64)
	if !isHit {
		return SkyColor(ray)
	}

	if depth >= pt.MaxDepth || hit.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, sampler, depth+1))
}

// SkyColor is the background: a vertical blend from white at the horizon-down direction to
// sky blue straight up
func SkyColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Lerp(skyZenith, t)
}
