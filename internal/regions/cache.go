package regions

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"worldmap/server/internal/world"
)

// ImageCache owns the per-region imagery under the world directory and
// tracks when each region last changed. Change timestamps only move
// forward, so ChangedSince answers are stable for a fixed since value.
type ImageCache struct {
	mu      sync.RWMutex
	dir     string
	changed map[RegionCoord]int64
	clock   func() time.Time
}

func NewImageCache(dir string) *ImageCache {
	return &ImageCache{
		dir:     dir,
		changed: make(map[RegionCoord]int64),
		clock:   time.Now,
	}
}

// SetClock overrides the timestamp source. Tests only.
func (c *ImageCache) SetClock(clock func() time.Time) {
	c.mu.Lock()
	c.clock = clock
	c.mu.Unlock()
}

func (c *ImageCache) WorldDir() string {
	return c.dir
}

// mapDir resolves the directory holding region files for one map type.
func (c *ImageCache) mapDir(mt world.MapType) string {
	dim := fmt.Sprintf("DIM%d", mt.Dimension)
	name := string(mt.Name)
	if mt.IsUnderground() && mt.VSlice != nil {
		name = filepath.Join(name, strconv.Itoa(*mt.VSlice))
	}
	return filepath.Join(c.dir, dim, name)
}

// RegionPath resolves the PNG file backing one region of one map type.
func (c *ImageCache) RegionPath(mt world.MapType, rc RegionCoord) string {
	return filepath.Join(c.mapDir(mt), rc.String()+".png")
}

// WriteRegion persists a region raster and records the change. The write is
// atomic so a concurrent tile read never sees a torn file.
func (c *ImageCache) WriteRegion(mt world.MapType, rc RegionCoord, img image.Image) error {
	path := c.RegionPath(mt, rc)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create region directory: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create region file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode region %s: %w", rc, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	c.MarkChanged(rc)
	return nil
}

// MarkChanged records that a region's imagery changed now. Timestamps never
// move backwards.
func (c *ImageCache) MarkChanged(rc RegionCoord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock().UnixMilli()
	if prev, ok := c.changed[rc]; !ok || now > prev {
		c.changed[rc] = now
	}
}

// ReadRegion loads a region raster, reporting false when no imagery exists.
func (c *ImageCache) ReadRegion(mt world.MapType, rc RegionCoord) (image.Image, bool) {
	f, err := os.Open(c.RegionPath(mt, rc))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	return img, true
}

// ChangedSince reports every region whose imagery changed at or after the
// given unix-millisecond timestamp, plus the query time callers must use as
// their next high-water mark.
func (c *ImageCache) ChangedSince(since int64) ([]RegionCoord, int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.clock().UnixMilli()
	var dirty []RegionCoord
	for rc, ts := range c.changed {
		if ts >= since {
			dirty = append(dirty, rc)
		}
	}
	sort.Slice(dirty, func(i, j int) bool {
		if dirty[i].X != dirty[j].X {
			return dirty[i].X < dirty[j].X
		}
		return dirty[i].Z < dirty[j].Z
	})
	return dirty, now
}

// HasAnyImages reports whether at least one region file exists for the map
// type. Used to validate save-map requests.
func (c *ImageCache) HasAnyImages(mt world.MapType) bool {
	return len(c.Regions(mt)) > 0
}

// Regions lists every region with persisted imagery for one map type.
func (c *ImageCache) Regions(mt world.MapType) []RegionCoord {
	entries, err := os.ReadDir(c.mapDir(mt))
	if err != nil {
		return nil
	}
	var coords []RegionCoord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".png") {
			continue
		}
		parts := strings.SplitN(strings.TrimSuffix(name, ".png"), ",", 2)
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.Atoi(parts[0])
		z, errZ := strconv.Atoi(parts[1])
		if errX != nil || errZ != nil {
			continue
		}
		coords = append(coords, RegionCoord{X: x, Z: z})
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Z < coords[j].Z
	})
	return coords
}
