package regions

// DirtySet is the wire answer to "what imagery changed since T". An empty
// Regions list means no visible imagery changed, not that nothing happened.
// QueryTime becomes the caller's next since value.
type DirtySet struct {
	Since     int64    `json:"since"`
	QueryTime int64    `json:"queryTime"`
	Regions   [][2]int `json:"regions"`
}

// DirtySince builds a DirtySet from the cache's change log.
func (c *ImageCache) DirtySince(since int64) DirtySet {
	dirty, now := c.ChangedSince(since)
	set := DirtySet{
		Since:     since,
		QueryTime: now,
		Regions:   make([][2]int, 0, len(dirty)),
	}
	for _, rc := range dirty {
		set.Regions = append(set.Regions, [2]int{rc.X, rc.Z})
	}
	return set
}
