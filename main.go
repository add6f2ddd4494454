package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/cmd"
	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.New("main").Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes with a tiled CPU path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render one of the built-in scenes. The image is split into tiles that a pool of
workers renders in parallel; a fixed seed gives the same image for any number of
workers.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "serve",
			Usage:  "serve the web interface",
			Flags:  cmd.ServeFlags,
			Action: cmd.Serve,
		},
	}

	return app
}
