package waypoints

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "waypoints.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAssignsIDWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	saved, err := store.Put(Waypoint{Name: "home", X: 10, Z: -4, Type: TypeNormal})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0].ID != saved.ID {
		t.Fatalf("stored waypoint not found: %+v", all)
	}
}

func TestAllSortedByID(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"c", "a", "b"} {
		if _, err := store.Put(Waypoint{ID: id, Name: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	all, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, all[i].ID, want)
		}
	}
}

func TestInDimensionFilters(t *testing.T) {
	store := newTestStore(t)
	mustPut := func(wp Waypoint) {
		if _, err := store.Put(wp); err != nil {
			t.Fatalf("put %s: %v", wp.ID, err)
		}
	}
	mustPut(Waypoint{ID: "over", PrimaryDimension: 0, Dimensions: []int{0}})
	mustPut(Waypoint{ID: "nether", PrimaryDimension: -1, Dimensions: []int{-1}})
	mustPut(Waypoint{ID: "both", PrimaryDimension: 0, Dimensions: []int{0, -1}})

	visible, err := store.InDimension(-1)
	if err != nil {
		t.Fatalf("in dimension: %v", err)
	}
	ids := make(map[string]bool, len(visible))
	for _, wp := range visible {
		ids[wp.ID] = true
	}
	if len(ids) != 2 || !ids["nether"] || !ids["both"] {
		t.Fatalf("dimension -1 view = %v, want nether and both", ids)
	}
}

func TestDeleteRemoves(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Put(Waypoint{ID: "gone"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("waypoint survived deletion: %+v", all)
	}
}
