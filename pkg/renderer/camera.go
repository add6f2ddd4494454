package renderer

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the plane in focus (0 = distance to LookAt)
	ShutterOpen   float64   // Start of the exposure interval
	ShutterClose  float64   // End of the exposure interval
}

// DefaultCameraConfig returns the camera used by the random spheres scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   4.0 / 3.0,
		Aperture:      0.1,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  1,
	}
}

// CameraOverride replaces selected view and lens parameters of a CameraConfig. Nil fields
// keep the base value. The shutter interval is not overridable: the scene's BVH is bounded
// over it.
type CameraOverride struct {
	Center        *core.Vec3
	LookAt        *core.Vec3
	Up            *core.Vec3
	VFov          *float64
	Aperture      *float64 // 0 gives a pinhole camera
	FocusDistance *float64
}

// MergeCameraConfig returns base with every non-nil field of override applied
func MergeCameraConfig(base CameraConfig, override CameraOverride) CameraConfig {
	result := base

	if override.Center != nil {
		result.Center = *override.Center
	}
	if override.LookAt != nil {
		result.LookAt = *override.LookAt
	}
	if override.Up != nil {
		result.Up = *override.Up
	}
	if override.VFov != nil {
		result.VFov = *override.VFov
	}
	if override.Aperture != nil {
		result.Aperture = *override.Aperture
	}
	if override.FocusDistance != nil {
		result.FocusDistance = *override.FocusDistance
	}

	return result
}

// Camera generates primary rays through a thin lens over a shutter interval
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis: u right, v up, w backwards
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera creates a camera from config
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    config.ShutterClose,
	}
}

// GetRay generates a ray for normalized image coordinates (s, t) where s runs left to right
// and t bottom to top. The origin is jittered over the lens and the time over the shutter.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	time := c.shutterOpen + sampler.Get1D()*(c.shutterClose-c.shutterOpen)

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayAtTime(origin, direction, time)
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
