package core

// HittableList is a flat scene: every query scans all objects
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list over the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of every object's box. An empty list, or one containing an
// unbounded object, has no box.
func (l *HittableList) BoundingBox(time0, time1 float64) (AABB, bool) {
	if len(l.Objects) == 0 {
		return AABB{}, false
	}

	var result AABB
	for i, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = SurroundingBox(result, box)
		}
	}

	return result, true
}
