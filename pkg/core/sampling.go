package core

import (
	"math/rand"
	"sync"
)

// Sampler provides uniform random numbers in [0, 1) to every stage that needs randomness:
// camera rays, material scattering, BVH split axes and Perlin tables.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator. It is not safe for concurrent use;
// give each worker or tile its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// LockedSampler serializes access to an underlying sampler so one handle can be shared
// between goroutines
type LockedSampler struct {
	mu      sync.Mutex
	sampler Sampler
}

// NewLockedSampler wraps sampler behind a mutex
func NewLockedSampler(sampler Sampler) *LockedSampler {
	return &LockedSampler{sampler: sampler}
}

func (l *LockedSampler) Get1D() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Get1D()
}

func (l *LockedSampler) Get2D() Vec2 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Get2D()
}

func (l *LockedSampler) Get3D() Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Get3D()
}

// RandomInUnitSphere generates a random point inside the unit sphere by rejection
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
