package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/iancoleman/orderedmap"

	"worldmap/server/internal/props"
	"worldmap/server/internal/waypoints"
	"worldmap/server/internal/world"
)

// sinceParam is the query parameter carrying the caller's dirty-tracking
// high-water mark.
const sinceParam = "images.since"

var dataTypesRequiringSince = map[string]bool{
	"all":    true,
	"images": true,
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) error {
	dataType := chi.URLParam(r, "type")

	var since *int64
	if raw := r.URL.Query().Get(sinceParam); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequestf("invalid '%s' value: %s", sinceParam, raw)
		}
		since = &v
	}

	// Serving "all" or "images" without a since value would force a full
	// recomputation with no incremental benefit; refuse to guess.
	if dataTypesRequiringSince[dataType] && since == nil {
		return badRequestf("Data type '%s' requires '%s' parameter.", dataType, sinceParam)
	}

	var payload any
	switch dataType {
	case "world":
		payload = s.cache.Info()
	case "player":
		payload = s.cache.Player()
	case "players":
		payload = s.cache.Players()
	case "mobs":
		payload = s.cache.Mobs()
	case "animals":
		payload = s.cache.Animals()
	case "villagers":
		payload = s.cache.Villagers()
	case "messages":
		payload = s.cache.Messages()
	case "waypoints":
		all, err := s.waypoints.All()
		if err != nil {
			return internalf("loading waypoints: %v", err)
		}
		payload = keyWaypoints(all)
	case "images":
		payload = s.images.DirtySince(*since)
	case "all":
		payload = s.allData(*since)
	default:
		return badRequestf("Unknown data type '%s'", dataType)
	}

	return writeJSON(w, payload)
}

// keyWaypoints re-keys the collection by stable id so clients get O(1)
// lookups instead of a list.
func keyWaypoints(all []waypoints.Waypoint) map[string]waypoints.Waypoint {
	keyed := make(map[string]waypoints.Waypoint, len(all))
	for _, wp := range all {
		keyed[wp.ID] = wp
	}
	return keyed
}

// allData assembles the aggregate snapshot the polling client lives on.
// Key order on the wire is part of the contract. Marker categories honor
// the preference flags, and radar data is withheld entirely on hardcore
// multiplayer worlds.
func (s *Server) allData(since int64) *orderedmap.OrderedMap {
	doc := orderedmap.New()
	player := s.cache.Player()

	doc.Set("world", s.cache.Info())
	doc.Set("player", player)
	doc.Set("images", s.images.DirtySince(since))

	if s.props.GetBool(props.ShowWaypoints) {
		visible, err := s.waypoints.InDimension(player.Dimension)
		if err != nil {
			visible = nil
		}
		doc.Set("waypoints", keyWaypoints(visible))
	} else {
		doc.Set("waypoints", map[string]waypoints.Waypoint{})
	}

	if s.cache.HardcoreAndMultiplayer() {
		return doc
	}

	if s.props.GetBool(props.ShowAnimals) || s.props.GetBool(props.ShowPets) {
		doc.Set("animals", s.cache.Animals())
	} else {
		doc.Set("animals", map[string]world.Entity{})
	}
	if s.props.GetBool(props.ShowMobs) {
		doc.Set("mobs", s.cache.Mobs())
	} else {
		doc.Set("mobs", map[string]world.Entity{})
	}
	if s.props.GetBool(props.ShowPlayers) {
		doc.Set("players", s.cache.Players())
	} else {
		doc.Set("players", map[string]world.Entity{})
	}
	if s.props.GetBool(props.ShowVillagers) {
		doc.Set("villagers", s.cache.Villagers())
	} else {
		doc.Set("villagers", map[string]world.Entity{})
	}

	return doc
}
