package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/web/server"
)

// ServeFlags are the flags accepted by the serve command
var ServeFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "port, p",
		Value: 8080,
		Usage: "port to listen on",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "render workers per request; 0 uses one per CPU",
	},
}

// Serve starts the web interface.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	defaults := renderer.DefaultConfig()
	defaults.NumWorkers = ctx.Int("workers")

	return server.NewServer(ctx.Int("port"), defaults).Start()
}
