package regions

import (
	"image"
	"image/color"

	"worldmap/server/internal/world"
)

// RegionImageSize is the pixel edge of one persisted region raster:
// 32 chunks of 16 pixels.
const RegionImageSize = 512

const chunkPixels = 16

// NoiseRenderer paints deterministic placeholder terrain so a development
// install has imagery before a real rendering pipeline is attached. Chunk
// colors are hashed from the seed and coordinates, shaded per map type.
type NoiseRenderer struct {
	cache *ImageCache
	seed  int64
}

func NewNoiseRenderer(cache *ImageCache, seed int64) *NoiseRenderer {
	return &NoiseRenderer{cache: cache, seed: seed}
}

var terrainPalette = []color.RGBA{
	{R: 90, G: 142, B: 62, A: 255},   // grassland
	{R: 56, G: 104, B: 38, A: 255},   // forest
	{R: 208, G: 196, B: 142, A: 255}, // sand
	{R: 120, G: 120, B: 126, A: 255}, // stone
	{R: 52, G: 86, B: 156, A: 255},   // water
}

// RenderRegion paints and persists one region for the map type.
func (r *NoiseRenderer) RenderRegion(mt world.MapType, rc RegionCoord) error {
	img := image.NewRGBA(image.Rect(0, 0, RegionImageSize, RegionImageSize))
	for cz := 0; cz < RegionImageSize/chunkPixels; cz++ {
		for cx := 0; cx < RegionImageSize/chunkPixels; cx++ {
			shade := r.chunkColor(mt, rc, cx, cz)
			for pz := 0; pz < chunkPixels; pz++ {
				for px := 0; px < chunkPixels; px++ {
					img.SetRGBA(cx*chunkPixels+px, cz*chunkPixels+pz, shade)
				}
			}
		}
	}
	return r.cache.WriteRegion(mt, rc, img)
}

func (r *NoiseRenderer) chunkColor(mt world.MapType, rc RegionCoord, cx, cz int) color.RGBA {
	h := uint64(r.seed)
	for _, v := range []int{rc.X, rc.Z, cx, cz} {
		h ^= uint64(int64(v))
		h *= 1099511628211
	}
	base := terrainPalette[h%uint64(len(terrainPalette))]
	switch mt.Name {
	case world.MapNight:
		return color.RGBA{R: base.R / 3, G: base.G / 3, B: base.B / 2, A: 255}
	case world.MapUnderground:
		gray := uint8(40 + h%48)
		return color.RGBA{R: gray, G: gray, B: gray, A: 255}
	default:
		return base
	}
}
