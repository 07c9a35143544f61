package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"worldmap/server/internal/regions"
	"worldmap/server/internal/waypoints"
	"worldmap/server/internal/world"
)

// Snapshot is one aggregate poll answer. Marker categories absent from the
// wire (radar hidden, preference off) decode as empty maps.
type Snapshot struct {
	World     world.Info                    `json:"world"`
	Player    world.Player                  `json:"player"`
	Images    regions.DirtySet              `json:"images"`
	Waypoints map[string]waypoints.Waypoint `json:"waypoints"`
	Animals   map[string]world.Entity       `json:"animals"`
	Mobs      map[string]world.Entity       `json:"mobs"`
	Players   map[string]world.Entity       `json:"players"`
	Villagers map[string]world.Entity       `json:"villagers"`
}

// Fetcher obtains aggregate snapshots. The HTTP implementation is the
// production path; tests install their own.
type Fetcher interface {
	FetchAll(ctx context.Context, since int64) (*Snapshot, error)
}

// HTTPFetcher polls the /data/all endpoint of one map service.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f *HTTPFetcher) FetchAll(ctx context.Context, since int64) (*Snapshot, error) {
	url := fmt.Sprintf("%s/data/all?images.since=%d", f.BaseURL, since)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpc := f.Client
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("snapshot request failed: %d %s", resp.StatusCode, body)
	}
	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
