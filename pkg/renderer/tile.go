package renderer

import (
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image. Tiles in the last column
// and row are clipped to the image.
func NewTileGrid(width, height, tileWidth, tileHeight int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileWidth - 1) / tileWidth
	tilesY := (height + tileHeight - 1) / tileHeight

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileWidth
			y0 := tileY * tileHeight
			x1 := min(x0+tileWidth, width)
			y1 := min(y0+tileHeight, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// tileSeed derives the random seed for a tile so that each tile draws an independent stream
// that does not depend on which worker renders it
func tileSeed(baseSeed int64, tileID int) int64 {
	return baseSeed*1000003 + int64(tileID)
}
