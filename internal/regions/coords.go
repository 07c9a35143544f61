package regions

import "fmt"

// RegionCoord addresses one persisted region image.
type RegionCoord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

func (rc RegionCoord) String() string {
	return fmt.Sprintf("%d,%d", rc.X, rc.Z)
}

// Rect is an inclusive rectangle of region coordinates.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ int
}

// Width returns the number of regions along one edge.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

func (r Rect) Contains(rc RegionCoord) bool {
	return rc.X >= r.MinX && rc.X <= r.MaxX && rc.Z >= r.MinZ && rc.Z <= r.MaxZ
}

const (
	// MinZoom and MaxZoom bound the slippy-map zoom levels the tile route
	// accepts. Outside this range 32/2^zoom is not an integer.
	MinZoom = 0
	MaxZoom = 5

	regionsAtBaseZoom = 32
)

// TileRange maps a slippy-map tile request to the rectangle of regions that
// compose it. Zoom levels outside [MinZoom, MaxZoom] are rejected rather
// than clamped; silently flooring 32/2^zoom would alias distinct tiles onto
// the same rectangle.
func TileRange(x, z, zoom int) (Rect, error) {
	if zoom < MinZoom || zoom > MaxZoom {
		return Rect{}, fmt.Errorf("invalid zoom %d: must be in [%d,%d]", zoom, MinZoom, MaxZoom)
	}
	scale := 1 << zoom
	perTile := regionsAtBaseZoom / scale

	minX := x * perTile
	minZ := z * perTile
	return Rect{
		MinX: minX,
		MinZ: minZ,
		MaxX: minX + perTile - 1,
		MaxZ: minZ + perTile - 1,
	}, nil
}
