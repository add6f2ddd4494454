package material

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material, clamping fuzz to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0.0, min(1.0, fuzz))}
}

// Scatter reflects the ray about the normal, perturbed by fuzz. Perturbed directions that
// end up below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
