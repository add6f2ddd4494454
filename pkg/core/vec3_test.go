package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel", NewVec3(2, 0, 0), NewVec3(3, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.a.Cross(tt.b); !result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if result := (Vec3{}).Normalize(); result != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", result)
	}
	if length := NewVec3(3, 4, 12).Normalize().Length(); math.Abs(length-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", length)
	}
}

func TestVec3_SqrtAndLerp(t *testing.T) {
	if result := NewVec3(0.25, 1, 0).Sqrt(); !result.Equals(NewVec3(0.5, 1, 0)) {
		t.Errorf("Expected (0.5, 1, 0), got %v", result)
	}

	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)
	if result := white.Lerp(blue, 0.5); !result.Equals(NewVec3(0.75, 0.85, 1.0)) {
		t.Errorf("Expected midpoint, got %v", result)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(1, 0, -1), 0.5)
	if p := ray.At(2); !p.Equals(NewVec3(3, 2, 1)) {
		t.Errorf("Expected (3, 2, 1), got %v", p)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %f", ray.Time)
	}
}
