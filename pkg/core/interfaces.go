package core

// Hittable is anything a ray can be intersected with: primitives, flat lists and BVH nodes
type Hittable interface {
	// Hit returns the closest intersection with t strictly inside (tMin, tMax)
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object for every instant in [time0, time1].
	// The second return is false for objects that cannot be bounded.
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// Material turns a surface hit into an attenuation and a continuation ray
type Material interface {
	// Scatter returns false when the ray is absorbed
	Scatter(rayIn Ray, hit *HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Texture supplies a color for a surface point. Implementations are immutable.
type Texture interface {
	Value(u, v float64, point Vec3) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The continuation ray
	Attenuation Vec3 // Color attenuation applied to the light gathered along Scattered
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64  // Parameter t along the ray
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Unit outward surface normal
	U, V     float64  // Surface coordinates for textures
	Material Material // Material of the hit object, shared with every other user
}
