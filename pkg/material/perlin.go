package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// perlinPointCount is the size of the gradient table and of each permutation table
const perlinPointCount = 256

// Perlin is a gradient noise generator. Its tables are filled once at construction and only
// read afterwards, so one generator can be shared by any number of textures and goroutines.
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = randomUnitVector(sampler)
	}
	generatePermutation(&p.permX, sampler)
	generatePermutation(&p.permY, sampler)
	generatePermutation(&p.permZ, sampler)
	return p
}

// randomUnitVector draws a vector in [-1,1]³ and normalizes it, redrawing the (vanishingly
// unlikely) zero vector
func randomUnitVector(sampler core.Sampler) core.Vec3 {
	for {
		v := sampler.Get3D().Multiply(2).Subtract(core.NewVec3(1, 1, 1))
		if v.LengthSquared() > 1e-12 {
			return v.Normalize()
		}
	}
}

// generatePermutation fills perm with a Fisher-Yates shuffle of 0..255
func generatePermutation(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := min(int(sampler.Get1D()*float64(i+1)), i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns gradient noise at point, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	return perlinInterpolation(&c, u, v, w)
}

// perlinInterpolation blends the dot products of the 8 corner gradients with their offset
// vectors using Hermite-smoothed trilinear weights
func perlinInterpolation(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of noise, doubling frequency and halving amplitude each time
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	temp := point
	weight := 1.0

	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = temp.Multiply(2)
	}

	return math.Abs(accum)
}
