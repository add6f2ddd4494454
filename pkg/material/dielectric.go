package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter either reflects or refracts. Total internal reflection always reflects; otherwise
// reflection is chosen with the Schlick reflectance as probability, which averages to
// Fresnel-weighted glass over many samples.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	reflected := Reflect(direction, hit.Normal)

	// The normal always points out of the medium: a positive dot means the ray is leaving it
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if dot := direction.Dot(hit.Normal); dot > 0 {
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * dot / direction.Length()
	} else {
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -dot / direction.Length()
	}

	scatterDirection := reflected
	if refracted, ok := Refract(direction, outwardNormal, refractionRatio); ok {
		if sampler.Get1D() >= Reflectance(cosine, d.RefractiveIndex) {
			scatterDirection = refracted
		}
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends v through a surface with normal n (facing against v) using Snell's law with
// ratio = n_incident / n_transmitted. The second return is false on total internal reflection.
func Refract(v, n core.Vec3, ratio float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - ratio*ratio*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	return uv.Subtract(n.Multiply(dt)).Multiply(ratio).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
