package client

import (
	"context"
	"fmt"
	"time"

	"worldmap/server/internal/world"
	"worldmap/server/logging"
)

// TileView is the rendering surface the engine drives. The production
// implementation manages the browser's tile layer; tests record calls.
type TileView interface {
	RefreshAll()
	RefreshRegions(regions [][2]int)
}

// maxPendingRequests is how many consecutive failed polls the engine
// tolerates before it gives up on the connection and reloads.
const maxPendingRequests = 3

// restartDelay is how long a halted engine waits before triggering the
// one-time full reload.
const restartDelay = 5 * time.Second

// nightStartTicks is where the auto-switched view flips from day to night.
const nightStartTicks = 13800

// Config wires an Engine to its collaborators.
type Config struct {
	Fetcher  Fetcher
	Tiles    TileView
	Log      logging.Publisher
	Interval time.Duration

	// Reload performs the full client reload. Called at most once, after
	// restartDelay, when the engine halts. A fresh engine instance restarts
	// the loop from scratch.
	Reload func()
}

// ViewState carries the derived UI fields recomputed on every snapshot.
type ViewState struct {
	Clock    string
	Biome    string
	PosX     int
	PosY     int
	PosZ     int
	WorldOK  bool
	MapType  world.MapTypeName
	ViewDim  int
}

// Engine is the cooperative sync loop: one aggregate poll per cycle, marker
// reconciliation, incremental tile refresh driven by the dirty-region delta.
// All methods run on the Run goroutine; tests drive Cycle directly.
type Engine struct {
	cfg     Config
	markers *MarkerTable

	since        int64
	pending      int
	halted       bool
	busy         bool
	seenSnapshot bool
	underground  bool
	browserPoll  int

	userMapType bool
	view        ViewState
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("client: fetcher is required")
	}
	if cfg.Log == nil {
		cfg.Log = logging.NopPublisher
	}
	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}
	return &Engine{
		cfg:     cfg,
		markers: NewMarkerTable(),
		view:    ViewState{MapType: world.MapDay},
	}, nil
}

// Run polls until the context ends or the engine halts. The repeating timer
// is armed exactly once, after the first successful cycle, so a slow start
// can never stack concurrent timers.
func (e *Engine) Run(ctx context.Context) error {
	var tick <-chan time.Time
	var ticker *time.Ticker

	for {
		e.Cycle(ctx)
		if e.halted {
			if ticker != nil {
				ticker.Stop()
			}
			return fmt.Errorf("client: engine halted after %d failed polls", e.pending)
		}
		if ticker == nil && e.seenSnapshot {
			ticker = time.NewTicker(e.interval())
			defer ticker.Stop()
			tick = ticker.C
		}
		if tick == nil {
			// Not yet successfully started; retry on the base interval.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.cfg.Interval):
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}

// Cycle performs one poll. Failures accumulate in the pending counter; past
// the threshold the engine halts and schedules the one-time reload instead
// of retrying forever against a stuck connection.
func (e *Engine) Cycle(ctx context.Context) {
	if e.halted {
		return
	}
	snap, err := e.cfg.Fetcher.FetchAll(ctx, e.since)
	if err != nil {
		e.pending++
		e.cfg.Log.Publish(ctx, logging.Event{
			Type: "poll_failed", Severity: logging.SeverityWarn,
			Category: logging.CategoryRequest,
			Message:  fmt.Sprintf("pending=%d: %v", e.pending, err),
		})
		if e.pending > maxPendingRequests {
			e.halt()
		}
		return
	}
	e.pending = 0
	e.since = snap.Images.QueryTime
	e.apply(snap)
}

func (e *Engine) halt() {
	e.halted = true
	if e.cfg.Reload != nil {
		time.AfterFunc(restartDelay, e.cfg.Reload)
	}
}

func (e *Engine) apply(snap *Snapshot) {
	e.view.Clock = FormatWorldClock(snap.World.Time)
	e.view.Biome = snap.Player.Biome
	e.view.PosX = int(snap.Player.PosX)
	e.view.PosY = int(snap.Player.PosY)
	e.view.PosZ = int(snap.Player.PosZ)
	e.view.ViewDim = snap.Player.Dimension
	e.view.WorldOK = true
	e.browserPoll = snap.World.BrowserPoll

	if !e.userMapType {
		e.view.MapType = autoMapType(snap)
	}

	// An underground flip invalidates every visible tile; otherwise only
	// the regions the server reported dirty need repainting.
	undergroundChanged := e.seenSnapshot && snap.Player.Underground != e.underground
	e.underground = snap.Player.Underground
	e.seenSnapshot = true
	if e.cfg.Tiles != nil {
		if undergroundChanged {
			e.cfg.Tiles.RefreshAll()
		} else if len(snap.Images.Regions) > 0 {
			e.cfg.Tiles.RefreshRegions(snap.Images.Regions)
		}
	}

	e.draw(snap)
}

// draw reconciles every marker category. The busy flag prevents re-entrant
// drawing when a snapshot lands while the previous draw is still running.
func (e *Engine) draw(snap *Snapshot) {
	if e.busy {
		return
	}
	e.busy = true
	defer func() { e.busy = false }()

	e.markers.Reconcile(CategoryMobs, entityMarkers(CategoryMobs, snap.Mobs))
	e.markers.Reconcile(CategoryAnimals, entityMarkers(CategoryAnimals, snap.Animals))
	e.markers.Reconcile(CategoryVillagers, entityMarkers(CategoryVillagers, snap.Villagers))
	e.markers.Reconcile(CategoryPlayers, entityMarkers(CategoryPlayers, snap.Players))
	e.markers.Reconcile(CategoryWaypoints, waypointMarkers(snap.Waypoints, snap.Player.Dimension))
}

// autoMapType mirrors the in-game default: underground when the player is
// below ground and the world allows cave maps, otherwise day or night by
// the world clock.
func autoMapType(snap *Snapshot) world.MapTypeName {
	if snap.Player.Underground && snap.World.Features[world.FeatureMapCaves] {
		return world.MapUnderground
	}
	if snap.World.Time < nightStartTicks {
		return world.MapDay
	}
	return world.MapNight
}

func (e *Engine) interval() time.Duration {
	// The server advertises its preferred poll cadence; never go below 1s.
	if e.seenSnapshot && e.view.WorldOK {
		if d := time.Duration(e.browserPoll) * time.Millisecond; d >= time.Second {
			return d
		}
	}
	return e.cfg.Interval
}

// SetMapType records a user override; the auto-switch stops until ClearMapType.
func (e *Engine) SetMapType(name world.MapTypeName) {
	e.userMapType = true
	e.view.MapType = name
}

// ClearMapType resumes automatic day/night/underground switching.
func (e *Engine) ClearMapType() {
	e.userMapType = false
}

// View reports the current derived UI state.
func (e *Engine) View() ViewState {
	return e.view
}

// Markers exposes the live marker table.
func (e *Engine) Markers() *MarkerTable {
	return e.markers
}

// Pending reports the consecutive-failure count.
func (e *Engine) Pending() int {
	return e.pending
}

// Halted reports whether the engine reached its terminal state.
func (e *Engine) Halted() bool {
	return e.halted
}

// Since reports the dirty-tracking high-water mark for the next poll.
func (e *Engine) Since() int64 {
	return e.since
}
