package client

import (
	"worldmap/server/internal/waypoints"
	"worldmap/server/internal/world"
)

// Marker is one drawable map annotation. X and Z are already in the
// viewer's dimension frame.
type Marker struct {
	ID       string
	Category string
	Label    string
	Icon     string
	X        float64
	Y        float64
	Z        float64
	Heading  float64
}

// Marker categories, matching the snapshot collection names.
const (
	CategoryMobs      = "mobs"
	CategoryAnimals   = "animals"
	CategoryVillagers = "villagers"
	CategoryPlayers   = "players"
	CategoryWaypoints = "waypoints"
)

// MarkerTable holds the live marker set keyed by category and id. Every
// marker present corresponds to an id in the last applied snapshot.
type MarkerTable struct {
	byCategory map[string]map[string]Marker
}

func NewMarkerTable() *MarkerTable {
	return &MarkerTable{byCategory: make(map[string]map[string]Marker)}
}

// Reconcile replaces one category with the snapshot's view of it: markers
// whose id is absent are removed, the rest are created or updated in place.
func (t *MarkerTable) Reconcile(category string, incoming map[string]Marker) {
	current := t.byCategory[category]
	if current == nil {
		current = make(map[string]Marker, len(incoming))
		t.byCategory[category] = current
	}
	for id := range current {
		if _, present := incoming[id]; !present {
			delete(current, id)
		}
	}
	for id, m := range incoming {
		current[id] = m
	}
}

// Get reports a single marker.
func (t *MarkerTable) Get(category, id string) (Marker, bool) {
	m, ok := t.byCategory[category][id]
	return m, ok
}

// Count reports how many markers a category holds.
func (t *MarkerTable) Count(category string) int {
	return len(t.byCategory[category])
}

// entityMarkers converts a snapshot entity collection into markers.
func entityMarkers(category string, entities map[string]world.Entity) map[string]Marker {
	markers := make(map[string]Marker, len(entities))
	for id, e := range entities {
		label := e.CustomName
		if label == "" {
			label = e.Username
		}
		markers[id] = Marker{
			ID:       id,
			Category: category,
			Label:    label,
			Icon:     e.Filename,
			X:        e.PosX,
			Y:        e.PosY,
			Z:        e.PosZ,
			Heading:  e.Heading,
		}
	}
	return markers
}

// waypointMarkers converts waypoints into markers, rescaling coordinates
// from each waypoint's native dimension into the viewer's.
func waypointMarkers(wps map[string]waypoints.Waypoint, viewDim int) map[string]Marker {
	markers := make(map[string]Marker, len(wps))
	for id, wp := range wps {
		markers[id] = Marker{
			ID:       id,
			Category: CategoryWaypoints,
			Label:    wp.Name,
			X:        DimensionalValue(float64(wp.X), wp.PrimaryDimension, viewDim),
			Y:        float64(wp.Y),
			Z:        DimensionalValue(float64(wp.Z), wp.PrimaryDimension, viewDim),
		}
	}
	return markers
}
