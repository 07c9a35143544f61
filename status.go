package main

import (
	"net/http"

	"worldmap/server/internal/world"
)

const (
	statusNoWorld  = "no_world"
	statusStarting = "starting"
	statusReady    = "ready"
	statusDisabled = "disabled"
)

// computeStatus derives the reported status from three externally owned
// facts. Precedence is strict: no world beats starting, and a ready server
// with nothing viewable reports disabled.
func computeStatus(worldLoaded, mappingStarted bool, allowed map[string]bool) string {
	switch {
	case !worldLoaded:
		return statusNoWorld
	case !mappingStarted:
		return statusStarting
	}
	for _, ok := range allowed {
		if ok {
			return statusReady
		}
	}
	return statusDisabled
}

// allowedMapTypes reports per-capability flags. Cave viewing needs the
// feature enabled and is never allowed on hardcore multiplayer worlds.
func (s *Server) allowedMapTypes() map[string]bool {
	info := s.cache.Info()
	caves := info.Features[world.FeatureMapCaves] && !s.cache.HardcoreAndMultiplayer()
	return map[string]bool{"cave": caves}
}

// currentMapType mirrors what the in-game map is showing: underground when
// the player is below ground and allowed to see it, otherwise day or night
// by the world clock.
func (s *Server) currentMapType() world.MapTypeName {
	info := s.cache.Info()
	player := s.cache.Player()
	if player.Underground && s.allowedMapTypes()["cave"] {
		return world.MapUnderground
	}
	if info.Time < nightStartTicks {
		return world.MapDay
	}
	return world.MapNight
}

// nightStartTicks is where the world clock flips the default view to the
// night map.
const nightStartTicks = 13800

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) error {
	payload := make(map[string]any)

	status := computeStatus(s.cache.WorldLoaded(), s.cache.MappingStarted(), nil)
	if status != statusNoWorld && status != statusStarting {
		allowed := s.allowedMapTypes()
		status = computeStatus(true, true, allowed)
		payload["mapType"] = string(s.currentMapType())
		payload["allowedMapTypes"] = allowed
	}
	payload["status"] = status

	return writeJSON(w, payload)
}
