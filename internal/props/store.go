package props

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/iancoleman/orderedmap"
)

// Boolean preference keys, in the order they appear on the wire. The order
// is part of the contract: the browser builds its toggle UI from it.
const (
	ShowGrid      = "showGrid"
	ShowSelf      = "showSelf"
	ShowCaves     = "showCaves"
	ShowWaypoints = "showWaypoints"
	ShowAnimals   = "showAnimals"
	ShowPets      = "showPets"
	ShowMobs      = "showMobs"
	ShowVillagers = "showVillagers"
	ShowPlayers   = "showPlayers"
)

var keyOrder = []string{
	ShowGrid, ShowSelf, ShowCaves, ShowWaypoints,
	ShowAnimals, ShowPets, ShowMobs, ShowVillagers, ShowPlayers,
}

// Store is the boolean preference bag behind GET/POST /properties. Values
// persist to a JSON file owned by this store; everything defaults to true.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]bool
}

func NewStore(path string) *Store {
	values := make(map[string]bool, len(keyOrder))
	for _, key := range keyOrder {
		values[key] = true
	}
	return &Store{path: path, values: values}
}

// Load merges persisted values over the defaults. A missing file is not an
// error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var persisted map[string]bool
	if err := json.Unmarshal(data, &persisted); err != nil {
		return fmt.Errorf("parse properties file: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range persisted {
		if _, known := s.values[key]; known {
			s.values[key] = value
		}
	}
	return nil
}

func (s *Store) GetBool(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// SetBool rejects unknown keys so a typo in a POST cannot grow the bag.
func (s *Store) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.values[key]; !known {
		return fmt.Errorf("unknown property '%s'", key)
	}
	s.values[key] = value
	return nil
}

// Document renders the bag with stable key order.
func (s *Store) Document() *orderedmap.OrderedMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := orderedmap.New()
	for _, key := range keyOrder {
		doc.Set(key, s.values[key])
	}
	return doc
}

// Save writes the bag atomically. The store owns persistence; callers just
// toggle flags.
func (s *Store) Save() error {
	doc := s.Document()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
