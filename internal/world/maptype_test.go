package world

import "testing"

func TestParseMapTypeNameRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "topo", "DAY", "cave"} {
		if _, err := ParseMapTypeName(name); err == nil {
			t.Fatalf("expected '%s' to be rejected", name)
		}
	}
	for _, name := range []string{"day", "night", "underground"} {
		parsed, err := ParseMapTypeName(name)
		if err != nil {
			t.Fatalf("'%s' should parse: %v", name, err)
		}
		if string(parsed) != name {
			t.Fatalf("parsed '%s' as '%s'", name, parsed)
		}
	}
}

func TestNewMapTypeClearsSliceUnlessUnderground(t *testing.T) {
	slice := 5
	day := NewMapType(MapDay, &slice, 0)
	if day.VSlice != nil {
		t.Fatalf("day map must not carry a vertical slice")
	}
	night := NewMapType(MapNight, &slice, -1)
	if night.VSlice != nil {
		t.Fatalf("night map must not carry a vertical slice")
	}
	cave := NewMapType(MapUnderground, &slice, 0)
	if cave.VSlice == nil || *cave.VSlice != 5 {
		t.Fatalf("underground map must keep the vertical slice")
	}
	if !cave.IsUnderground() || day.IsUnderground() {
		t.Fatalf("IsUnderground misreports")
	}
}
