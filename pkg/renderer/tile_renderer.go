package renderer

import (
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// TileRenderer renders the pixels of one tile. It only reads the world, camera and
// integrator, so a single instance is shared by every worker.
type TileRenderer struct {
	world           core.Hittable
	camera          *Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a tile renderer for a width x height image
func NewTileRenderer(world core.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile computes every pixel of view's bounds and stores it through view
func (tr *TileRenderer) RenderTile(view *TileView, sampler core.Sampler) TileStats {
	start := time.Now()
	bounds := view.Bounds()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			view.Set(i, j, QuantizeColor(tr.samplePixel(i, j, sampler)))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return TileStats{
		Pixels:   pixels,
		Samples:  pixels * tr.samplesPerPixel,
		Duration: time.Since(start),
	}
}

// samplePixel averages jittered primary rays through pixel (i, j). Row 0 is the top of the
// image, so the row index is flipped before mapping to the camera's bottom-up t coordinate.
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	row := float64(tr.height - 1 - j)

	for ps.SampleCount < tr.samplesPerPixel {
		s := (float64(i) + sampler.Get1D()) / float64(tr.width)
		t := (row + sampler.Get1D()) / float64(tr.height)
		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}

	return ps.GetColor()
}
