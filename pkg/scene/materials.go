package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewMaterialsScene lines up one sphere per material on a checker ground, plus a diffuse
// sphere moving during the shutter to show motion blur
func NewMaterialsScene(sampler core.Sampler, opts Options) (*Scene, error) {
	s := &Scene{CameraConfig: renderer.CameraConfig{
		Center:        core.NewVec3(0, 1.5, 7),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35,
		AspectRatio:   4.0 / 3.0,
		Aperture:      0.0, // No depth of field
		FocusDistance: 0.0, // Auto-calculate focus distance
		ShutterOpen:   0,
		ShutterClose:  1,
	}}

	ground := material.NewTexturedLambertian(
		material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(material.NewPerlin(sampler), 6))

	s.add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(-2.2, 0.5, 0), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, 0), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, 0), 0.5, marble),
		geometry.NewMovingSphere(core.NewVec3(2.2, 0.5, 0), core.NewVec3(2.2, 0.9, 0), 0, 1, 0.5,
			material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
	)

	return s, nil
}
