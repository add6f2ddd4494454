package material

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewConstantTexture(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo core.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter aims the continuation ray at a random point in the unit sphere tangent to the
// surface, which approximates a cosine-weighted hemisphere sample
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	scattered := core.NewRayAtTime(hit.Point, target.Subtract(hit.Point), rayIn.Time)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
