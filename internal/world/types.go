package world

// Info is the world portion of a snapshot. Field names follow the wire
// contract the browser client consumes.
type Info struct {
	Name         string          `json:"name"`
	Dimension    int             `json:"dimension"`
	Time         int64           `json:"time"`
	Hardcore     bool            `json:"hardcore"`
	SinglePlayer bool            `json:"singlePlayer"`
	Features     map[string]bool `json:"features"`
	BrowserPoll  int             `json:"browser_poll"`
	IconSetName  string          `json:"iconSetName"`
}

// Player is the tracked player's snapshot entry.
type Player struct {
	EntityID    string  `json:"entityId"`
	Username    string  `json:"username"`
	PosX        float64 `json:"posX"`
	PosY        float64 `json:"posY"`
	PosZ        float64 `json:"posZ"`
	ChunkCoordY int     `json:"chunkCoordY"`
	Heading     float64 `json:"heading"`
	Biome       string  `json:"biome"`
	Underground bool    `json:"underground"`
	Dimension   int     `json:"dimension"`
}

// Entity covers mobs, animals, villagers and other players alike.
type Entity struct {
	EntityID      string  `json:"entityId"`
	Filename      string  `json:"filename"`
	Hostile       bool    `json:"hostile"`
	PassiveAnimal bool    `json:"passiveAnimal"`
	Owner         string  `json:"owner,omitempty"`
	CustomName    string  `json:"customName,omitempty"`
	Username      string  `json:"username,omitempty"`
	PosX          float64 `json:"posX"`
	PosY          float64 `json:"posY"`
	PosZ          float64 `json:"posZ"`
	Heading       float64 `json:"heading"`
	Dimension     int     `json:"dimension"`
}

// Feature flag names reported in Info.Features.
const (
	FeatureMapCaves       = "MapCaves"
	FeatureRadarAnimals   = "RadarAnimals"
	FeatureRadarMobs      = "RadarMobs"
	FeatureRadarVillagers = "RadarVillagers"
	FeatureRadarPlayers   = "RadarPlayers"
)
