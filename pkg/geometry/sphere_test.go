package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	// Perpendicular distance 2 > radius
	ray := core.NewRay(core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_ThroughCenter(t *testing.T) {
	tests := []struct {
		name     string
		center   core.Vec3
		radius   float64
		origin   core.Vec3
		distance float64
	}{
		{"Unit sphere from 5 away", core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 0, 5), 5},
		{"Offset sphere", core.NewVec3(3, -2, 1), 0.5, core.NewVec3(3, -2, 11), 10},
		{"Large sphere", core.NewVec3(0, -1000, 0), 1000, core.NewVec3(0, 2, 0), 1002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, nil)
			direction := tt.center.Subtract(tt.origin).Normalize()
			ray := core.NewRay(tt.origin, direction)

			near, isHit := sphere.Hit(ray, 0.001, math.MaxFloat64)
			if !isHit {
				t.Fatal("Expected hit through center")
			}
			if math.Abs(near.T-(tt.distance-tt.radius)) > 1e-6 {
				t.Errorf("Expected near root %f, got %f", tt.distance-tt.radius, near.T)
			}

			// Excluding the near root exposes the far one
			far, isHit := sphere.Hit(ray, near.T+1e-6, math.MaxFloat64)
			if !isHit {
				t.Fatal("Expected far root hit")
			}
			if math.Abs(far.T-(tt.distance+tt.radius)) > 1e-6 {
				t.Errorf("Expected far root %f, got %f", tt.distance+tt.radius, far.T)
			}

			expectedNormal := direction.Negate()
			if near.Normal.Subtract(expectedNormal).Length() > 1e-6 {
				t.Errorf("Expected outward normal %v, got %v", expectedNormal, near.Normal)
			}
			if math.Abs(far.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", far.Normal.Length())
			}
		})
	}
}

func TestSphere_Hit_OpenInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Roots at t=1 and t=3; an interval bounded exactly by them contains neither
	if _, isHit := sphere.Hit(ray, 1, 3); isHit {
		t.Error("Expected boundary roots to be excluded")
	}
	if hit, isHit := sphere.Hit(ray, 0.5, 3.5); !isHit || math.Abs(hit.T-1) > 1e-12 {
		t.Errorf("Expected hit at t=1, got %v", hit)
	}
}

func TestSphere_Hit_InsideNormalStaysOutward(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit from inside")
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Normal.Dot(ray.Direction) <= 0 {
		t.Error("Outward normal should point along an exiting ray")
	}
}

func TestSphere_Hit_TangentRayMisses(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected tangent ray (zero discriminant) to miss")
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	// Hitting the top of the sphere gives v=1
	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), 0.001, 100)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.V-1) > 1e-9 {
		t.Errorf("Expected v=1 at the north pole, got %f", hit.V)
	}
	if hit.U < 0 || hit.U > 1 {
		t.Errorf("Expected u in [0,1], got %f", hit.U)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil)
	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}

	expected := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
}
