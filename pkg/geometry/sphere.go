package geometry

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Sphere represents a static sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return hitSphere(s.Center, s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// hitSphere solves |o + t*d - center|² = r² and keeps the nearest root strictly inside
// (tMin, tMax). A root exactly on the boundary does not count, so a scattered ray starting at
// tMin from a surface never re-hits it.
func hitSphere(center core.Vec3, radius float64, material core.Material, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	// Tangent rays (zero discriminant) count as misses
	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(center).Divide(radius)
	u, v := sphereUV(normal)

	return &core.HitRecord{
		T:        root,
		Point:    point,
		Normal:   normal,
		U:        u,
		V:        v,
		Material: material,
	}, true
}

// sphereBox returns the box of a sphere at a fixed center
func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}

// sphereUV maps a unit outward normal to spherical texture coordinates in [0,1]²
func sphereUV(normal core.Vec3) (float64, float64) {
	theta := math.Acos(max(-1, min(1, -normal.Y)))
	phi := math.Atan2(-normal.Z, normal.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}
