package main

import (
	"image/png"
	"net/http"
	"os"
	"strconv"

	"worldmap/server/internal/props"
	"worldmap/server/internal/regions"
	"worldmap/server/internal/world"
	"worldmap/server/logging"
)

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequestf("invalid integer for '%s': %s", key, raw)
	}
	return v, nil
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) error {
	x, err := queryInt(r, "x", 0)
	if err != nil {
		return err
	}
	z, err := queryInt(r, "z", 0)
	if err != nil {
		return err
	}
	zoom, err := queryInt(r, "zoom", 0)
	if err != nil {
		return err
	}
	dimension, err := queryInt(r, "dimension", 0)
	if err != nil {
		return err
	}
	mapTypeString := r.URL.Query().Get("mapTypeString")
	if mapTypeString == "" {
		mapTypeString = string(world.MapDay)
	}

	// Not-ready conditions resolve themselves; a missing world directory
	// does not. The client distinguishes 400 from 404 accordingly.
	if !s.cache.WorldLoaded() {
		return badRequestf("World not loaded")
	}
	if !s.cache.MappingStarted() {
		return badRequestf("Mapping engine is still starting")
	}
	if info, statErr := os.Stat(s.images.WorldDir()); statErr != nil || !info.IsDir() {
		return notFoundf("World not found")
	}

	mapTypeName, err := world.ParseMapTypeName(mapTypeString)
	if err != nil {
		return badRequestf("Invalid map type: %s", mapTypeString)
	}

	// y carries the vertical slice for underground views; NewMapType nulls
	// it for surface maps.
	var vSlice *int
	if raw := r.URL.Query().Get("y"); raw != "" {
		slice, convErr := strconv.Atoi(raw)
		if convErr == nil {
			vSlice = &slice
		}
	}
	mapType := world.NewMapType(mapTypeName, vSlice, dimension)

	// Spectators of a hardcore multiplayer world never see underground
	// layout; they get the fixed blank tile instead of an error.
	if mapType.IsUnderground() && s.cache.HardcoreAndMultiplayer() {
		s.emit(logging.SeverityDebug, r.URL.Path, "blank tile served for underground view on hardcore world")
		w.Header().Set("Content-Type", "image/png")
		_, writeErr := w.Write(regions.BlankTile())
		return writeErr
	}

	rect, err := regions.TileRange(x, z, zoom)
	if err != nil {
		return badRequestf("%v", err)
	}

	showGrid := s.props.GetBool(props.ShowGrid)
	tile := s.images.Tile(mapType, rect, showGrid)

	w.Header().Set("Content-Type", "image/png")
	return png.Encode(w, tile)
}
