package main

import (
	"context"
	"flag"
	"hash/fnv"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"worldmap/server/internal/config"
	"worldmap/server/internal/props"
	"worldmap/server/internal/regions"
	"worldmap/server/internal/task"
	"worldmap/server/internal/waypoints"
	"worldmap/server/internal/world"
	"worldmap/server/logging"
	"worldmap/server/logging/sinks"
)

const logFileName = "worldmap.ndjson"

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	port := flag.Int("port", 0, "preferred listen port (overrides config)")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	clientDir := flag.String("client", "", "static web client directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *clientDir != "" {
		cfg.ClientDir = *clientDir
	}
	cfg = cfg.Normalized()

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		log.Fatalf("create log directory: %v", err)
	}
	logFilePath := filepath.Join(cfg.LogDir, logFileName)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = []string{"console", "json"}
	logCfg.JSON.FilePath = logFilePath
	router := logging.NewRouter(nil, logCfg, []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, logCfg.Console)},
		{Name: "json", Sink: sinks.NewJSON(logFile, logCfg.JSON.FlushInterval)},
	})

	propStore := props.NewStore(filepath.Join(cfg.DataDir, "properties.json"))
	if err := propStore.Load(); err != nil {
		log.Fatalf("properties: %v", err)
	}

	wpStore, err := waypoints.Open(filepath.Join(cfg.DataDir, "waypoints.db"))
	if err != nil {
		log.Fatalf("waypoints: %v", err)
	}
	defer wpStore.Close()

	images := regions.NewImageCache(cfg.WorldDir)
	seed := hashSeed(cfg.Seed)
	renderer := regions.NewNoiseRenderer(images, seed)

	cache := world.NewCache()
	cache.SetInfo(world.Info{
		Name:         cfg.Seed,
		Dimension:    0,
		SinglePlayer: true,
		Features: map[string]bool{
			world.FeatureMapCaves:       true,
			world.FeatureRadarAnimals:   true,
			world.FeatureRadarMobs:      true,
			world.FeatureRadarVillagers: true,
			world.FeatureRadarPlayers:   true,
		},
		BrowserPoll: cfg.BrowserPollMillis,
		IconSetName: "Default",
	})
	cache.SetPlayer(world.Player{Username: "explorer", PosY: 64, Biome: "Plains"})
	cache.SetWorldLoaded(true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sim := world.NewSimulator(cache, seed)
	sim.Seed(6, 8, 3)
	go sim.Run(ctx)
	cache.SetMappingStarted(true)

	srv := newServer(cfg, serverDeps{
		Cache:       cache,
		Images:      images,
		Props:       propStore,
		Waypoints:   wpStore,
		Tasks:       task.NewRunner(router),
		Renderer:    renderer,
		Log:         router,
		LogFilePath: logFilePath,
	})

	session := NewServerSession(func(format string, args ...any) {
		router.Emit(logging.SeverityWarn, logging.CategoryLifecycle, "", format, args...)
	})
	if err := session.Start(cfg.Port, srv.Handler()); err != nil {
		log.Fatalf("listen: %v", err)
	}
	router.Emit(logging.SeverityInfo, logging.CategoryLifecycle, "",
		"map service listening on port %d", session.Port())

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := session.Stop(shutdownCtx); err != nil {
		router.Emit(logging.SeverityWarn, logging.CategoryLifecycle, "", "shutdown: %v", err)
	}
	router.Close(shutdownCtx)
}

// hashSeed turns the configured seed string into a deterministic int64.
func hashSeed(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}
