package task

import (
	"context"

	"worldmap/server/internal/regions"
	"worldmap/server/internal/world"
	"worldmap/server/logging"
)

// AutoMapName keys the automap job in the Runner.
const AutoMapName = "automap"

// RegionRenderer paints one region's imagery. The production implementation
// lives in the rendering pipeline; development installs use the noise
// renderer.
type RegionRenderer interface {
	RenderRegion(mt world.MapType, rc regions.RegionCoord) error
}

// AutoMap returns the job body that walks the rectangle and renders region
// imagery. With all=false only regions without existing imagery are
// painted ("missing" scope).
func AutoMap(cache *regions.ImageCache, renderer RegionRenderer, mt world.MapType, area regions.Rect, all bool, pub logging.Publisher) func(ctx context.Context) {
	if pub == nil {
		pub = logging.NopPublisher
	}
	return func(ctx context.Context) {
		rendered := 0
		for rz := area.MinZ; rz <= area.MaxZ; rz++ {
			for rx := area.MinX; rx <= area.MaxX; rx++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				rc := regions.RegionCoord{X: rx, Z: rz}
				if !all {
					if _, ok := cache.ReadRegion(mt, rc); ok {
						continue
					}
				}
				if err := renderer.RenderRegion(mt, rc); err != nil {
					pub.Publish(ctx, logging.Event{
						Type: "automap_region_failed", Severity: logging.SeverityWarn,
						Category: logging.CategoryRender, Message: rc.String(),
						Payload: err.Error(),
					})
					continue
				}
				rendered++
			}
		}
		pub.Publish(ctx, logging.Event{
			Type: "automap_done", Severity: logging.SeverityInfo,
			Category: logging.CategoryRender,
			Payload:  map[string]any{"rendered": rendered},
		})
	}
}
