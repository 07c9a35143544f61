package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"worldmap/server/internal/regions"
	"worldmap/server/internal/world"
)

type scriptedFetcher struct {
	snapshots []*Snapshot
	errs      []error
	calls     int
	lastSince int64
}

func (f *scriptedFetcher) FetchAll(ctx context.Context, since int64) (*Snapshot, error) {
	f.lastSince = since
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.snapshots) {
		return f.snapshots[i], nil
	}
	return baseSnapshot(), nil
}

type recordingTiles struct {
	fullRefreshes int
	regionCalls   [][][2]int
}

func (r *recordingTiles) RefreshAll() { r.fullRefreshes++ }
func (r *recordingTiles) RefreshRegions(regions [][2]int) {
	r.regionCalls = append(r.regionCalls, regions)
}

func baseSnapshot() *Snapshot {
	return &Snapshot{
		World:  world.Info{Time: 1000, BrowserPoll: 2500},
		Player: world.Player{Username: "explorer", Biome: "Plains"},
		Images: regions.DirtySet{QueryTime: 42},
	}
}

func newTestEngine(t *testing.T, fetcher Fetcher, tiles TileView) *Engine {
	t.Helper()
	engine, err := NewEngine(Config{Fetcher: fetcher, Tiles: tiles})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestCycleAdvancesSinceFromQueryTime(t *testing.T) {
	snap := baseSnapshot()
	snap.Images.QueryTime = 9000
	fetcher := &scriptedFetcher{snapshots: []*Snapshot{snap}}
	engine := newTestEngine(t, fetcher, nil)

	engine.Cycle(context.Background())
	if engine.Since() != 9000 {
		t.Fatalf("since = %d, want server queryTime 9000", engine.Since())
	}

	engine.Cycle(context.Background())
	if fetcher.lastSince != 9000 {
		t.Fatalf("next poll sent since=%d, want 9000", fetcher.lastSince)
	}
}

func TestPendingThresholdHaltsEngine(t *testing.T) {
	boom := errors.New("connection refused")
	fetcher := &scriptedFetcher{errs: []error{boom, boom, boom, boom}}
	reloaded := make(chan struct{})
	engine, err := NewEngine(Config{
		Fetcher: fetcher,
		Reload:  func() { close(reloaded) },
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < maxPendingRequests; i++ {
		engine.Cycle(ctx)
		if engine.Halted() {
			t.Fatalf("halted after %d failures, threshold is %d", i+1, maxPendingRequests)
		}
	}
	engine.Cycle(ctx)
	if !engine.Halted() {
		t.Fatalf("engine should halt past the pending threshold")
	}

	// Halted is terminal: further cycles never poll again.
	calls := fetcher.calls
	engine.Cycle(ctx)
	if fetcher.calls != calls {
		t.Fatalf("halted engine issued another poll")
	}

	select {
	case <-reloaded:
	case <-time.After(restartDelay + 2*time.Second):
		t.Fatalf("reload was never scheduled")
	}
}

func TestSingleFailureRetriesSilently(t *testing.T) {
	fetcher := &scriptedFetcher{errs: []error{errors.New("transient"), nil}}
	engine := newTestEngine(t, fetcher, nil)

	ctx := context.Background()
	engine.Cycle(ctx)
	if engine.Pending() != 1 || engine.Halted() {
		t.Fatalf("one failure must only bump pending: pending=%d halted=%v", engine.Pending(), engine.Halted())
	}
	engine.Cycle(ctx)
	if engine.Pending() != 0 {
		t.Fatalf("success must reset pending, got %d", engine.Pending())
	}
}

func TestUndergroundTransitionForcesFullRefresh(t *testing.T) {
	surface := baseSnapshot()
	surface.Images.Regions = [][2]int{{0, 0}}
	below := baseSnapshot()
	below.Player.Underground = true
	below.Images.Regions = [][2]int{{0, 0}}

	tiles := &recordingTiles{}
	fetcher := &scriptedFetcher{snapshots: []*Snapshot{surface, below}}
	engine := newTestEngine(t, fetcher, tiles)

	ctx := context.Background()
	engine.Cycle(ctx)
	if tiles.fullRefreshes != 0 || len(tiles.regionCalls) != 1 {
		t.Fatalf("first snapshot should refresh incrementally: full=%d incr=%d", tiles.fullRefreshes, len(tiles.regionCalls))
	}
	engine.Cycle(ctx)
	if tiles.fullRefreshes != 1 {
		t.Fatalf("underground flip must force a full refresh, got %d", tiles.fullRefreshes)
	}
	if len(tiles.regionCalls) != 1 {
		t.Fatalf("full refresh must replace the incremental one")
	}
}

func TestNoRefreshWhenNothingDirty(t *testing.T) {
	tiles := &recordingTiles{}
	fetcher := &scriptedFetcher{snapshots: []*Snapshot{baseSnapshot()}}
	engine := newTestEngine(t, fetcher, tiles)

	engine.Cycle(context.Background())
	if tiles.fullRefreshes != 0 || len(tiles.regionCalls) != 0 {
		t.Fatalf("clean snapshot should not repaint tiles")
	}
}

func TestMarkersReconciledFromSnapshot(t *testing.T) {
	first := baseSnapshot()
	first.Mobs = map[string]world.Entity{
		"m1": {EntityID: "m1"},
		"m2": {EntityID: "m2"},
	}
	second := baseSnapshot()
	second.Mobs = map[string]world.Entity{
		"m2": {EntityID: "m2", PosX: 77},
	}

	fetcher := &scriptedFetcher{snapshots: []*Snapshot{first, second}}
	engine := newTestEngine(t, fetcher, nil)

	ctx := context.Background()
	engine.Cycle(ctx)
	if engine.Markers().Count(CategoryMobs) != 2 {
		t.Fatalf("expected 2 mob markers after first snapshot")
	}
	engine.Cycle(ctx)
	if engine.Markers().Count(CategoryMobs) != 1 {
		t.Fatalf("departed mob marker not removed")
	}
	if _, ok := engine.Markers().Get(CategoryMobs, "m1"); ok {
		t.Fatalf("m1 should be gone")
	}
}

func TestAutoMapTypeSwitchesAtNight(t *testing.T) {
	daySnap := baseSnapshot()
	daySnap.World.Time = 13799
	nightSnap := baseSnapshot()
	nightSnap.World.Time = 13800

	fetcher := &scriptedFetcher{snapshots: []*Snapshot{daySnap, nightSnap}}
	engine := newTestEngine(t, fetcher, nil)

	ctx := context.Background()
	engine.Cycle(ctx)
	if engine.View().MapType != world.MapDay {
		t.Fatalf("before 13800 map type = %s, want day", engine.View().MapType)
	}
	engine.Cycle(ctx)
	if engine.View().MapType != world.MapNight {
		t.Fatalf("at 13800 map type = %s, want night", engine.View().MapType)
	}
}

func TestUserOverrideStopsAutoSwitch(t *testing.T) {
	nightSnap := baseSnapshot()
	nightSnap.World.Time = 20000

	fetcher := &scriptedFetcher{snapshots: []*Snapshot{nightSnap, nightSnap}}
	engine := newTestEngine(t, fetcher, nil)
	engine.SetMapType(world.MapDay)

	engine.Cycle(context.Background())
	if engine.View().MapType != world.MapDay {
		t.Fatalf("override ignored: %s", engine.View().MapType)
	}

	engine.ClearMapType()
	engine.Cycle(context.Background())
	if engine.View().MapType != world.MapNight {
		t.Fatalf("auto-switch did not resume: %s", engine.View().MapType)
	}
}

func TestDerivedViewFields(t *testing.T) {
	snap := baseSnapshot()
	snap.World.Time = 13800
	snap.Player.PosX = 123.9
	snap.Player.PosZ = -45.2
	fetcher := &scriptedFetcher{snapshots: []*Snapshot{snap}}
	engine := newTestEngine(t, fetcher, nil)

	engine.Cycle(context.Background())
	view := engine.View()
	if view.Clock != "11:30" {
		t.Fatalf("clock = %s, want 11:30", view.Clock)
	}
	if view.Biome != "Plains" || view.PosX != 123 || view.PosZ != -45 {
		t.Fatalf("derived fields wrong: %+v", view)
	}
}
