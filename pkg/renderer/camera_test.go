package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func newPinholeConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        90.0,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(newPinholeConfig())

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if !forward.Equals(expected) {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraBasisIsOrthonormal(t *testing.T) {
	configs := []CameraConfig{
		newPinholeConfig(),
		DefaultCameraConfig(),
		{Center: core.NewVec3(278, 278, -800), LookAt: core.NewVec3(278, 278, 0), Up: core.NewVec3(0, 1, 0), VFov: 40, AspectRatio: 1},
	}

	for i, config := range configs {
		u, v, w := NewCamera(config).Basis()
		for name, vec := range map[string]core.Vec3{"u": u, "v": v, "w": w} {
			if math.Abs(vec.Length()-1) > 1e-9 {
				t.Errorf("config %d: %s has length %f", i, name, vec.Length())
			}
		}
		if math.Abs(u.Dot(v)) > 1e-9 || math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 {
			t.Errorf("config %d: basis not orthogonal: u=%v v=%v w=%v", i, u, v, w)
		}
		// Right-handed: u x v = w
		if !u.Cross(v).Equals(w) {
			t.Errorf("config %d: basis not right-handed", i)
		}
	}
}

func TestCameraGetRay_Pinhole(t *testing.T) {
	camera := NewCamera(newPinholeConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// 90 degree fov at focus distance 1 spans [-1,1] in both axes
	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(1, 1, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.Equals(core.Vec3{}) {
				t.Errorf("Pinhole ray should start at the camera center, got %v", ray.Origin)
			}
			if !ray.Direction.Equals(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCameraGetRay_AutoFocusDistance(t *testing.T) {
	config := newPinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -5)
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(1)

	ray := camera.GetRay(0.5, 0.5, sampler)
	if !ray.Direction.Equals(core.NewVec3(0, 0, -5)) {
		t.Errorf("Center ray should reach the look-at point at t=1, got direction %v", ray.Direction)
	}
}

func TestCameraGetRay_ThinLens(t *testing.T) {
	config := newPinholeConfig()
	config.Aperture = 0.5
	config.FocusDistance = 4
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7)

	focusPoint := core.NewVec3(0, 0, -4)
	sawOffset := false
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Length() >= 0.25 {
			t.Fatalf("Lens sample %v outside lens radius 0.25", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens sample should lie in the lens plane, got %v", ray.Origin)
		}
		if ray.Origin.Length() > 1e-6 {
			sawOffset = true
		}

		// Every lens sample for the same pixel converges on the focus plane
		if !ray.At(1).Equals(focusPoint) {
			t.Fatalf("Ray from %v misses focus point: %v", ray.Origin, ray.At(1))
		}
	}

	if !sawOffset {
		t.Error("Expected lens samples away from the center")
	}
}

func TestCameraGetRay_ShutterTime(t *testing.T) {
	config := newPinholeConfig()
	config.ShutterOpen = 0.25
	config.ShutterClose = 0.75
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(3)

	minTime, maxTime := math.Inf(1), math.Inf(-1)
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("Ray time %f outside shutter interval", ray.Time)
		}
		minTime = math.Min(minTime, ray.Time)
		maxTime = math.Max(maxTime, ray.Time)
	}

	if maxTime-minTime < 0.4 {
		t.Errorf("Ray times should spread over the shutter interval, got [%f, %f]", minTime, maxTime)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	vfov, aperture := 45.0, 0.0
	lookAt := core.NewVec3(1, 2, 3)

	tests := []struct {
		name     string
		override CameraOverride
		check    func(merged CameraConfig) bool
	}{
		{"empty override keeps base", CameraOverride{}, func(m CameraConfig) bool { return m == base }},
		{"vfov", CameraOverride{VFov: &vfov}, func(m CameraConfig) bool { return m.VFov == 45 && m.Aperture == base.Aperture }},
		{"zero aperture gives pinhole", CameraOverride{Aperture: &aperture}, func(m CameraConfig) bool { return m.Aperture == 0 }},
		{"look at", CameraOverride{LookAt: &lookAt}, func(m CameraConfig) bool { return m.LookAt == lookAt && m.Center == base.Center }},
		{"shutter untouched", CameraOverride{VFov: &vfov, Aperture: &aperture}, func(m CameraConfig) bool {
			return m.ShutterOpen == base.ShutterOpen && m.ShutterClose == base.ShutterClose
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if merged := MergeCameraConfig(base, tt.override); !tt.check(merged) {
				t.Errorf("Unexpected merge result: %+v", merged)
			}
		})
	}
}
