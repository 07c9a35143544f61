package world

import "sync"

// Cache owns the mutable world state and hands out read-only copies. The
// serving layer never holds a reference into the cache across a request; it
// copies out what it needs synchronously per call.
type Cache struct {
	mu             sync.RWMutex
	worldLoaded    bool
	mappingStarted bool
	info           Info
	player         Player
	players        map[string]Entity
	mobs           map[string]Entity
	animals        map[string]Entity
	villagers      map[string]Entity
	messages       map[string]string
}

func NewCache() *Cache {
	return &Cache{
		players:   make(map[string]Entity),
		mobs:      make(map[string]Entity),
		animals:   make(map[string]Entity),
		villagers: make(map[string]Entity),
		messages:  make(map[string]string),
	}
}

func (c *Cache) SetWorldLoaded(loaded bool) {
	c.mu.Lock()
	c.worldLoaded = loaded
	c.mu.Unlock()
}

func (c *Cache) SetMappingStarted(started bool) {
	c.mu.Lock()
	c.mappingStarted = started
	c.mu.Unlock()
}

func (c *Cache) WorldLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.worldLoaded
}

func (c *Cache) MappingStarted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mappingStarted
}

func (c *Cache) SetInfo(info Info) {
	c.mu.Lock()
	c.info = info
	c.mu.Unlock()
}

func (c *Cache) Info() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info := c.info
	if info.Features != nil {
		features := make(map[string]bool, len(info.Features))
		for k, v := range info.Features {
			features[k] = v
		}
		info.Features = features
	}
	return info
}

func (c *Cache) SetPlayer(player Player) {
	c.mu.Lock()
	c.player = player
	c.mu.Unlock()
}

func (c *Cache) Player() Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

// HardcoreAndMultiplayer gates radar and underground imagery.
func (c *Cache) HardcoreAndMultiplayer() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info.Hardcore && !c.info.SinglePlayer
}

func (c *Cache) UpsertPlayerEntity(e Entity) { c.upsert(c.players, e) }
func (c *Cache) UpsertMob(e Entity)          { c.upsert(c.mobs, e) }
func (c *Cache) UpsertAnimal(e Entity)       { c.upsert(c.animals, e) }
func (c *Cache) UpsertVillager(e Entity)     { c.upsert(c.villagers, e) }

func (c *Cache) upsert(m map[string]Entity, e Entity) {
	c.mu.Lock()
	m[e.EntityID] = e
	c.mu.Unlock()
}

func (c *Cache) RemoveMob(id string) {
	c.mu.Lock()
	delete(c.mobs, id)
	c.mu.Unlock()
}

func (c *Cache) RemoveAnimal(id string) {
	c.mu.Lock()
	delete(c.animals, id)
	c.mu.Unlock()
}

func (c *Cache) RemovePlayerEntity(id string) {
	c.mu.Lock()
	delete(c.players, id)
	c.mu.Unlock()
}

func (c *Cache) Players() map[string]Entity   { return c.snapshot(c.players) }
func (c *Cache) Mobs() map[string]Entity      { return c.snapshot(c.mobs) }
func (c *Cache) Animals() map[string]Entity   { return c.snapshot(c.animals) }
func (c *Cache) Villagers() map[string]Entity { return c.snapshot(c.villagers) }

func (c *Cache) snapshot(m map[string]Entity) map[string]Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copied := make(map[string]Entity, len(m))
	for id, e := range m {
		copied[id] = e
	}
	return copied
}

func (c *Cache) SetMessage(key, value string) {
	c.mu.Lock()
	c.messages[key] = value
	c.mu.Unlock()
}

func (c *Cache) Messages() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copied := make(map[string]string, len(c.messages))
	for k, v := range c.messages {
		copied[k] = v
	}
	return copied
}
