package scene

import (
	"image"
	"image/color"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewTwoPerlinSpheresScene creates a marble ground sphere and a marble sphere resting on it.
// Both share one Perlin generator.
func NewTwoPerlinSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	s := &Scene{CameraConfig: pinholeCameraConfig()}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(material.NewPerlin(sampler), 4))
	s.add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	return s, nil
}

// NewTwoCheckerSpheresScene creates two large spheres cut by the same 3D checker pattern
func NewTwoCheckerSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	s := &Scene{CameraConfig: pinholeCameraConfig()}

	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s, nil
}

// NewTexturedSphereScene maps an image onto a sphere. Without a texture path a generated
// UV test grid is used.
func NewTexturedSphereScene(sampler core.Sampler, opts Options) (*Scene, error) {
	s := &Scene{CameraConfig: pinholeCameraConfig()}

	var texture *material.ImageTexture
	if opts.TexturePath != "" {
		var err error
		if texture, err = material.LoadImageTexture(opts.TexturePath); err != nil {
			return nil, err
		}
	} else {
		texture = material.NewImageTextureFromImage(uvGridImage(256, 128, 16))
	}

	s.add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(texture)),
	)

	return s, nil
}

// uvGridImage draws a hue ramp along u, a brightness ramp along v and white grid lines every
// cell pixels
func uvGridImage(width, height, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x%cell == 0 || y%cell == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				continue
			}
			u := float64(x) / float64(width)
			v := 1 - float64(y)/float64(height)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * u),
				G: uint8(255 * v),
				B: uint8(255 * (1 - u)),
				A: 255,
			})
		}
	}
	return img
}

// pinholeCameraConfig is the default view with depth of field disabled
func pinholeCameraConfig() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	config.Aperture = 0
	return config
}
