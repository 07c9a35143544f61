package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config drives the map service process. It is shared with the schema
// generator in cmd/schema so the JSON file can be validated in editors.
type Config struct {
	Port              int    `json:"port" jsonschema:"title=Preferred listen port,description=0 lets the OS assign a free port"`
	WorldDir          string `json:"worldDir" jsonschema:"title=World imagery directory,description=Root of persisted region images"`
	ClientDir         string `json:"clientDir,omitempty" jsonschema:"description=Optional static web client directory served at /"`
	AssetsDir         string `json:"assetsDir,omitempty" jsonschema:"description=Directory backing the /resources endpoint"`
	SkinsDir          string `json:"skinsDir,omitempty" jsonschema:"description=Directory of cached player skin PNGs"`
	DataDir           string `json:"dataDir" jsonschema:"description=Holds the waypoint database and properties file"`
	LogDir            string `json:"logDir" jsonschema:"description=Holds the structured log file served at /logs"`
	BrowserPollMillis int    `json:"browserPollMillis" jsonschema:"description=Poll interval advertised to clients"`
	AutomapRadius     int    `json:"automapRadius" jsonschema:"description=Half-edge in regions of the automap area"`
	Seed              string `json:"seed" jsonschema:"description=Seed for the development renderer and simulator"`
}

const defaultSeed = "prototype"

// Normalized returns a config with defaults applied.
func (c Config) Normalized() Config {
	normalized := c
	if normalized.Port < 0 {
		normalized.Port = 0
	}
	if normalized.DataDir == "" {
		normalized.DataDir = "data"
	}
	if normalized.WorldDir == "" {
		normalized.WorldDir = filepath.Join(normalized.DataDir, "world")
	}
	if normalized.LogDir == "" {
		normalized.LogDir = filepath.Join(normalized.DataDir, "logs")
	}
	if normalized.BrowserPollMillis < 1000 {
		normalized.BrowserPollMillis = 1000
	}
	if normalized.AutomapRadius <= 0 {
		normalized.AutomapRadius = 4
	}
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultSeed
	}
	return normalized
}

// Load reads a JSON config file. A missing path yields the zero config so
// flags and defaults still apply.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
