package waypoints

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"
)

// Waypoint is a player-authored marker. Coordinates are native to
// PrimaryDimension; viewers in other dimensions apply the dimensional
// scaling transform client-side.
type Waypoint struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Z                int    `json:"z"`
	R                int    `json:"r"`
	G                int    `json:"g"`
	B                int    `json:"b"`
	Type             string `json:"type"`
	PrimaryDimension int    `json:"primaryDimension"`
	Dimensions       []int  `json:"dimensions"`
}

const (
	TypeNormal = "Normal"
	TypeDeath  = "Death"
)

var bucketName = []byte("waypoints")

// Store persists waypoints in a bolt database.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o666, nil)
	if err != nil {
		return nil, fmt.Errorf("open waypoint db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Put stores a waypoint, assigning an id when absent, and returns the
// stored value.
func (s *Store) Put(wp Waypoint) (Waypoint, error) {
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	if wp.Type == "" {
		wp.Type = TypeNormal
	}
	if len(wp.Dimensions) == 0 {
		wp.Dimensions = []int{wp.PrimaryDimension}
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(wp)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketName).Put([]byte(wp.ID), data)
	})
	return wp, err
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(id))
	})
}

// All returns every stored waypoint sorted by id.
func (s *Store) All() ([]Waypoint, error) {
	var out []Waypoint
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(_, v []byte) error {
			var wp Waypoint
			if err := json.Unmarshal(v, &wp); err != nil {
				return err
			}
			out = append(out, wp)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InDimension filters to waypoints visible from the given dimension.
func (s *Store) InDimension(dim int) ([]Waypoint, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var out []Waypoint
	for _, wp := range all {
		for _, d := range wp.Dimensions {
			if d == dim {
				out = append(out, wp)
				break
			}
		}
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
