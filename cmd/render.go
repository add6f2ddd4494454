package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "random-spheres",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 800,
		Usage: "image width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 600,
		Usage: "image height",
	},
	cli.IntFlag{
		Name:  "tile-width",
		Value: 50,
		Usage: "tile width",
	},
	cli.IntFlag{
		Name:  "tile-height",
		Value: 50,
		Usage: "tile height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 100,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: 50,
		Usage: "maximum number of scattering events per path",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 10,
		Usage: "number of render workers; 0 uses one per CPU",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "base random seed; 0 picks one from the clock",
	},
	cli.BoolFlag{
		Name:  "moving",
		Usage: "random-spheres: bounce the small diffuse spheres during the shutter",
	},
	cli.BoolFlag{
		Name:  "checker",
		Usage: "random-spheres: use a checker texture on the ground",
	},
	cli.StringFlag{
		Name:  "texture",
		Usage: "textured-sphere: image file to map onto the sphere",
	},
	cli.Float64Flag{
		Name:  "vfov",
		Usage: "vertical field of view in degrees (default: the scene's)",
	},
	cli.Float64Flag{
		Name:  "aperture",
		Usage: "lens diameter, 0 for a pinhole camera (default: the scene's)",
	},
	cli.Float64Flag{
		Name:  "focus",
		Usage: "focus distance (default: the scene's)",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename for the rendered frame (default output/<scene>/render_<timestamp>.png)",
	},
}

// RenderFrame renders a still frame of a built-in scene and writes it as PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		TileWidth:       ctx.Int("tile-width"),
		TileHeight:      ctx.Int("tile-height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		NumWorkers:      ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	sceneName := ctx.String("scene")
	sc, err := scene.New(sceneName, core.NewSeededSampler(config.Seed), scene.Options{
		MovingSpheres: ctx.Bool("moving"),
		CheckerGround: ctx.Bool("checker"),
		TexturePath:   ctx.String("texture"),
	})
	if err != nil {
		return err
	}
	logger.Infof("scene %s: %d primitives", sc.Name, sc.GetPrimitiveCount())

	camera := sc.NewCamera(config.AspectRatio(), cameraOverride(ctx))
	r, err := renderer.NewTiledRenderer(sc.World, camera, config)
	if err != nil {
		return err
	}

	stats, err := r.Render(func(tc renderer.TileCompletion) {
		logger.Debugf("tile %d/%d", tc.Completed, tc.Total)
	})
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = outputPath(sceneName, time.Now())
	}
	if err := savePNG(out, r.Framebuffer()); err != nil {
		return err
	}

	displayRenderStats(stats)
	logger.Noticef("render saved as %s", out)
	return nil
}

// cameraOverride collects the lens flags given explicitly on the command line
func cameraOverride(ctx *cli.Context) renderer.CameraOverride {
	var override renderer.CameraOverride
	if ctx.IsSet("vfov") {
		vfov := ctx.Float64("vfov")
		override.VFov = &vfov
	}
	if ctx.IsSet("aperture") {
		aperture := ctx.Float64("aperture")
		override.Aperture = &aperture
	}
	if ctx.IsSet("focus") {
		focus := ctx.Float64("focus")
		override.FocusDistance = &focus
	}
	return override
}

// outputPath returns the default location for a render of sceneName
func outputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func savePNG(path string, fb *renderer.Framebuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, fb.Image()); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "% of frame", "Busy time"})
	for _, stat := range stats.Workers {
		percent := 0.0
		if stats.TotalPixels > 0 {
			percent = 100 * float64(stat.Pixels) / float64(stats.TotalPixels)
		}
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%02.1f %%", percent),
			stat.BusyTime.String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.TotalTiles),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%.0f samples/s", stats.SamplesPerSecond()),
		stats.Elapsed.String(),
	})

	table.Render()
	logger.Noticef("render statistics (seed %d)\n%s", stats.Seed, buf.String())
}
