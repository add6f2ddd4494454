package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ConstantTexture provides a uniform color
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture creates a new constant color texture
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Value returns the color regardless of UV or position
func (c *ConstantTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	return c.Color
}

// CheckerTexture alternates between two textures in a solid 3D checker pattern that does not
// depend on the surface parameterization
type CheckerTexture struct {
	Odd  core.Texture
	Even core.Texture
}

// NewCheckerTexture creates a checker over two child textures
func NewCheckerTexture(odd, even core.Texture) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even}
}

// NewCheckerColors creates a checker over two constant colors
func NewCheckerColors(odd, even core.Vec3) *CheckerTexture {
	return NewCheckerTexture(NewConstantTexture(odd), NewConstantTexture(even))
}

// Value picks the odd texture where sin(10x)·sin(10y)·sin(10z) is negative
func (c *CheckerTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}

// turbulenceDepth is the number of noise octaves summed by NoiseTexture
const turbulenceDepth = 7

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture. The Perlin generator is shared, not copied.
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

// Value returns a gray level in [0,1]
func (n *NoiseTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	level := 0.5 * (1 + math.Sin(n.Scale*point.Z+50*n.Noise.Turbulence(point, turbulenceDepth)))
	return core.NewVec3(level, level, level)
}
