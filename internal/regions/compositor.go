package regions

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"

	"worldmap/server/internal/world"
)

// TileSize is the fixed edge length in pixels of every tile served to the
// browser. It is not negotiable per request.
const TileSize = 512

var gridColor = color.RGBA{R: 64, G: 64, B: 64, A: 96}

// Tile composites every region in the rectangle into one fixed-size raster.
// Missing regions stay transparent. Each region is scaled to its cell, so a
// wider rectangle (lower zoom) shows more world per tile.
func (c *ImageCache) Tile(mt world.MapType, rect Rect, showGrid bool) *image.RGBA {
	tile := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	per := rect.Width()
	cell := TileSize / per

	for rz := rect.MinZ; rz <= rect.MaxZ; rz++ {
		for rx := rect.MinX; rx <= rect.MaxX; rx++ {
			src, ok := c.ReadRegion(mt, RegionCoord{X: rx, Z: rz})
			if !ok {
				continue
			}
			x0 := (rx - rect.MinX) * cell
			z0 := (rz - rect.MinZ) * cell
			dst := image.Rect(x0, z0, x0+cell, z0+cell)
			xdraw.ApproxBiLinear.Scale(tile, dst, src, src.Bounds(), xdraw.Over, nil)
		}
	}

	if showGrid {
		drawGrid(tile, cell)
	}
	return tile
}

func drawGrid(tile *image.RGBA, cell int) {
	for offset := 0; offset < TileSize; offset += cell {
		for i := 0; i < TileSize; i++ {
			tile.SetRGBA(offset, i, gridColor)
			tile.SetRGBA(i, offset, gridColor)
		}
	}
}

var blankOnce struct {
	sync.Once
	data []byte
}

// BlankTile returns the encoded transparent placeholder served instead of
// underground imagery on hardcore multiplayer worlds.
func BlankTile() []byte {
	blankOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			panic(err)
		}
		blankOnce.data = buf.Bytes()
	})
	return blankOnce.data
}
