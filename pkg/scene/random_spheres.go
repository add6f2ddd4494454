package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewRandomSpheresScene creates the classic cover scene: a huge ground sphere, a 22x22 grid of
// small spheres with random materials, and large glass, diffuse and metal spheres
func NewRandomSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	s := &Scene{CameraConfig: renderer.DefaultCameraConfig()}

	var groundTexture core.Texture = material.NewConstantTexture(core.NewVec3(0.5, 0.5, 0.5))
	if opts.CheckerGround {
		groundTexture = material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	}
	s.add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundTexture)))

	rnd := sampler.Get1D
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := rnd()
			center := core.NewVec3(float64(a)+0.9*rnd(), 0.2, float64(b)+0.9*rnd())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(rnd()*rnd(), rnd()*rnd(), rnd()*rnd())
				diffuse := material.NewLambertian(albedo)
				if opts.MovingSpheres {
					center1 := center.Add(core.NewVec3(0, 0.5*rnd(), 0))
					s.add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, diffuse))
				} else {
					s.add(geometry.NewSphere(center, 0.2, diffuse))
				}
			case chooseMat < 0.95:
				albedo := core.NewVec3(0.5*(1+rnd()), 0.5*(1+rnd()), 0.5*(1+rnd()))
				s.add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*(1+rnd()))))
			default:
				s.add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s, nil
}
