package main

import (
	"net/http"
	"os"
	"strconv"

	"worldmap/server/internal/regions"
	"worldmap/server/internal/task"
	"worldmap/server/internal/world"
)

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) error {
	if !s.cache.WorldLoaded() {
		return badRequestf("World not loaded")
	}
	if !s.cache.MappingStarted() {
		return badRequestf("Mapping engine is still starting")
	}

	switch action := r.URL.Query().Get("type"); action {
	case "automap":
		return s.handleAutoMap(w, r)
	case "savemap":
		return s.handleSaveMap(w, r)
	default:
		return badRequestf("Unknown action type '%s'", action)
	}
}

// handleAutoMap toggles the background surveying job. The scope parameter
// drives the whole protocol: "stop" halts a running job, "all" repaints
// everything, anything else fills in gaps only. A running job is never
// restarted implicitly.
func (s *Server) handleAutoMap(w http.ResponseWriter, r *http.Request) error {
	scope := r.URL.Query().Get("scope")

	if scope == "stop" && s.tasks.Running(task.AutoMapName) {
		s.tasks.Stop(task.AutoMapName)
		return writeJSON(w, map[string]string{"message": "automap_complete"})
	}

	mt, err := s.requestMapType(r)
	if err != nil {
		return err
	}

	radius := s.cfg.AutomapRadius
	player := s.cache.Player()
	center := regions.RegionCoord{
		X: int(player.PosX) >> 9,
		Z: int(player.PosZ) >> 9,
	}
	area := regions.Rect{
		MinX: center.X - radius, MinZ: center.Z - radius,
		MaxX: center.X + radius, MaxZ: center.Z + radius,
	}

	started := s.tasks.Start(task.AutoMapName,
		task.AutoMap(s.images, s.renderer, mt, area, scope == "all", s.log))
	if !started {
		return writeJSON(w, map[string]string{"message": "automap_already_started"})
	}
	return writeJSON(w, map[string]string{"message": "automap_started"})
}

// handleSaveMap enqueues the stitch job and answers immediately with the
// file name the job will produce.
func (s *Server) handleSaveMap(w http.ResponseWriter, r *http.Request) error {
	if info, statErr := os.Stat(s.images.WorldDir()); statErr != nil || !info.IsDir() {
		return internalf("Unable to find world directory")
	}

	mt, err := s.requestMapType(r)
	if err != nil {
		return err
	}
	if mt.IsUnderground() && s.cache.HardcoreAndMultiplayer() {
		return badRequestf("Cave mapping is not allowed on hardcore servers")
	}
	if !s.images.HasAnyImages(mt) {
		return badRequestf("No image files to save")
	}

	fileName := task.SaveFileName(mt, s.clock())
	s.tasks.Start(task.SaveMapName,
		task.SaveMap(s.images, mt, s.cfg.DataDir, fileName, s.log))

	return writeJSON(w, map[string]string{"filename": fileName})
}

// requestMapType reads the mapType/dim/depth parameters the action route
// uses. The tile route names its parameters differently.
func (s *Server) requestMapType(r *http.Request) (world.MapType, error) {
	mapType := r.URL.Query().Get("mapType")
	if mapType == "" {
		mapType = string(world.MapDay)
	}
	name, err := world.ParseMapTypeName(mapType)
	if err != nil {
		return world.MapType{}, badRequestf("Invalid map type: %s", mapType)
	}

	dim, err := queryInt(r, "dim", 0)
	if err != nil {
		return world.MapType{}, err
	}
	var vSlice *int
	if raw := r.URL.Query().Get("depth"); raw != "" {
		if depth, convErr := strconv.Atoi(raw); convErr == nil {
			vSlice = &depth
		}
	}
	return world.NewMapType(name, vSlice, dim), nil
}
