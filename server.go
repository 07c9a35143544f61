package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"worldmap/server/internal/config"
	"worldmap/server/internal/props"
	"worldmap/server/internal/regions"
	"worldmap/server/internal/task"
	"worldmap/server/internal/waypoints"
	"worldmap/server/internal/world"
	"worldmap/server/logging"
)

// Server wires the route layer to its collaborators. It holds no world
// truth of its own; every handler copies what it needs out of the cache
// synchronously per request.
type Server struct {
	cfg         config.Config
	cache       *world.Cache
	images      *regions.ImageCache
	props       *props.Store
	waypoints   *waypoints.Store
	tasks       *task.Runner
	renderer    task.RegionRenderer
	log         logging.Publisher
	logFilePath string
	clock       func() time.Time
}

type serverDeps struct {
	Cache       *world.Cache
	Images      *regions.ImageCache
	Props       *props.Store
	Waypoints   *waypoints.Store
	Tasks       *task.Runner
	Renderer    task.RegionRenderer
	Log         logging.Publisher
	LogFilePath string
}

func newServer(cfg config.Config, deps serverDeps) *Server {
	pub := deps.Log
	if pub == nil {
		pub = logging.NopPublisher
	}
	return &Server{
		cfg:         cfg,
		cache:       deps.Cache,
		images:      deps.Images,
		props:       deps.Props,
		waypoints:   deps.Waypoints,
		tasks:       deps.Tasks,
		renderer:    deps.Renderer,
		log:         pub,
		logFilePath: deps.LogFilePath,
		clock:       time.Now,
	}
}

func (s *Server) emit(severity logging.Severity, route, format string, args ...any) {
	s.log.Publish(context.Background(), logging.Event{
		Type:     "http",
		Severity: severity,
		Category: logging.CategoryRequest,
		Route:    route,
		Message:  fmt.Sprintf(format, args...),
	})
}

func writeJSON(w http.ResponseWriter, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return internalf("failed to encode response: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	return err
}
