package world

import "fmt"

// MapTypeName is one of the three view modes the map can be rendered in.
type MapTypeName string

const (
	MapDay         MapTypeName = "day"
	MapNight       MapTypeName = "night"
	MapUnderground MapTypeName = "underground"
)

// ParseMapTypeName rejects anything outside the known set. Callers must not
// default an unknown name.
func ParseMapTypeName(s string) (MapTypeName, error) {
	switch MapTypeName(s) {
	case MapDay, MapNight, MapUnderground:
		return MapTypeName(s), nil
	default:
		return "", fmt.Errorf("invalid map type '%s'", s)
	}
}

// MapType pairs a view mode with a dimension and, for underground views
// only, a vertical slice.
type MapType struct {
	Name      MapTypeName
	VSlice    *int
	Dimension int
}

// NewMapType clears the vertical slice for any non-underground view. The
// invariant is enforced here so callers never have to.
func NewMapType(name MapTypeName, vSlice *int, dimension int) MapType {
	if name != MapUnderground {
		vSlice = nil
	}
	return MapType{Name: name, VSlice: vSlice, Dimension: dimension}
}

func (m MapType) IsUnderground() bool {
	return m.Name == MapUnderground
}
