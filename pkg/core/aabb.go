package core

import "math"

// parallelEpsilon is the direction magnitude below which a ray is treated as parallel to a slab
const parallelEpsilon = 1e-12

// AABB represents an axis-aligned bounding box. Min <= Max componentwise; a box may have
// zero extent on any axis.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]
	for _, point := range points[1:] {
		lo = Vec3{math.Min(lo.X, point.X), math.Min(lo.Y, point.Y), math.Min(lo.Z, point.Z)}
		hi = Vec3{math.Max(hi.X, point.X), math.Max(hi.Y, point.Y), math.Max(hi.Z, point.Z)}
	}

	return AABB{Min: lo, Max: hi}
}

// Hit tests if a ray intersects with this AABB using the slab method.
// The running [tMin, tMax] window is clipped against each axis slab; the box is missed as
// soon as the window becomes empty.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Axis(axis)
		hi := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// A ray parallel to the slab never crosses its planes: it is either inside for its
		// whole length or never
		if math.Abs(direction) < parallelEpsilon {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (lo - origin) * invDirection
		t1 := (hi - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)

		// Inclusive test: a zero-extent box collapses the window to one point, which still hits
		if tMax < tMin {
			return false
		}
	}

	return true
}

// SurroundingBox returns the smallest AABB containing both boxes
func SurroundingBox(a, b AABB) AABB {
	return a.Union(b)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	lo := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	hi := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: lo, Max: hi}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
