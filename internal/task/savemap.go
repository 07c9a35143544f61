package task

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"worldmap/server/internal/regions"
	"worldmap/server/internal/world"
	"worldmap/server/logging"
)

// SaveMapName keys the save-map job in the Runner.
const SaveMapName = "savemap"

// SaveFileName is the name reported to the HTTP caller before the job runs.
func SaveFileName(mt world.MapType, now time.Time) string {
	name := string(mt.Name)
	if mt.IsUnderground() && mt.VSlice != nil {
		name = fmt.Sprintf("%s_%d", name, *mt.VSlice)
	}
	return fmt.Sprintf("map_DIM%d_%s_%s.png", mt.Dimension, name, now.Format("2006-01-02_150405"))
}

// SaveMap returns the job body that stitches every region file of the map
// type into a single PNG under outDir. The HTTP call that enqueues it does
// not wait for completion.
func SaveMap(cache *regions.ImageCache, mt world.MapType, outDir, fileName string, pub logging.Publisher) func(ctx context.Context) {
	if pub == nil {
		pub = logging.NopPublisher
	}
	return func(ctx context.Context) {
		coords := cache.Regions(mt)
		if len(coords) == 0 {
			return
		}
		bounds := regions.Rect{MinX: coords[0].X, MinZ: coords[0].Z, MaxX: coords[0].X, MaxZ: coords[0].Z}
		for _, rc := range coords[1:] {
			if rc.X < bounds.MinX {
				bounds.MinX = rc.X
			}
			if rc.X > bounds.MaxX {
				bounds.MaxX = rc.X
			}
			if rc.Z < bounds.MinZ {
				bounds.MinZ = rc.Z
			}
			if rc.Z > bounds.MaxZ {
				bounds.MaxZ = rc.Z
			}
		}

		width := (bounds.MaxX - bounds.MinX + 1) * regions.RegionImageSize
		height := (bounds.MaxZ - bounds.MinZ + 1) * regions.RegionImageSize
		stitched := image.NewRGBA(image.Rect(0, 0, width, height))

		for _, rc := range coords {
			select {
			case <-ctx.Done():
				return
			default:
			}
			src, ok := cache.ReadRegion(mt, rc)
			if !ok {
				continue
			}
			x0 := (rc.X - bounds.MinX) * regions.RegionImageSize
			z0 := (rc.Z - bounds.MinZ) * regions.RegionImageSize
			dst := image.Rect(x0, z0, x0+regions.RegionImageSize, z0+regions.RegionImageSize)
			draw.Draw(stitched, dst, src, src.Bounds().Min, draw.Over)
		}

		if err := writePNG(filepath.Join(outDir, fileName), stitched); err != nil {
			pub.Publish(ctx, logging.Event{
				Type: "savemap_failed", Severity: logging.SeverityError,
				Category: logging.CategoryTask, Message: fileName,
				Payload: err.Error(),
			})
			return
		}
		pub.Publish(ctx, logging.Event{
			Type: "savemap_done", Severity: logging.SeverityInfo,
			Category: logging.CategoryTask, Message: fileName,
		})
	}
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
