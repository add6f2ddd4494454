package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Objects", "Description"})
	for _, info := range scene.ListScenes() {
		objects := "varies"
		if info.Objects > 0 {
			objects = fmt.Sprintf("%d", info.Objects)
		}
		table.Append([]string{info.ID, info.DisplayName, objects, info.Description})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
