package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Simulator mutates the cache on a fixed tick so the serving layer always
// has live data to expose during development. It stands in for the game
// process that owns world truth in production.
type Simulator struct {
	cache *Cache
	rng   *rand.Rand
	ids   []string
}

const (
	simTickRate      = 4 // ticks per second
	simWanderSpeed   = 3.5
	dayLengthTicks   = 24000
	gameTicksPerTick = 20 / simTickRate
)

func NewSimulator(cache *Cache, seed int64) *Simulator {
	return &Simulator{cache: cache, rng: rand.New(rand.NewSource(seed))}
}

// Seed populates the cache with a small roster of entities around origin.
func (s *Simulator) Seed(mobs, animals, villagers int) {
	spawn := func(upsert func(Entity), hostile, passive bool, filename string) {
		id := uuid.NewString()
		s.ids = append(s.ids, id)
		upsert(Entity{
			EntityID:      id,
			Filename:      filename,
			Hostile:       hostile,
			PassiveAnimal: passive,
			PosX:          (s.rng.Float64() - 0.5) * 512,
			PosY:          64,
			PosZ:          (s.rng.Float64() - 0.5) * 512,
			Heading:       s.rng.Float64() * 360,
		})
	}
	for i := 0; i < mobs; i++ {
		spawn(s.cache.UpsertMob, true, false, "creeper.png")
	}
	for i := 0; i < animals; i++ {
		spawn(s.cache.UpsertAnimal, false, true, "pig.png")
	}
	for i := 0; i < villagers; i++ {
		spawn(s.cache.UpsertVillager, false, false, "villager.png")
	}
}

// Run advances the world clock and wanders every entity until the context
// is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / simTickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

func (s *Simulator) step() {
	info := s.cache.Info()
	info.Time = (info.Time + gameTicksPerTick) % dayLengthTicks
	s.cache.SetInfo(info)

	wander := func(m map[string]Entity, upsert func(Entity)) {
		for _, e := range m {
			e.Heading = math.Mod(e.Heading+(s.rng.Float64()-0.5)*40+360, 360)
			rad := e.Heading * math.Pi / 180
			e.PosX += math.Cos(rad) * simWanderSpeed
			e.PosZ += math.Sin(rad) * simWanderSpeed
			upsert(e)
		}
	}
	wander(s.cache.Mobs(), s.cache.UpsertMob)
	wander(s.cache.Animals(), s.cache.UpsertAnimal)
	wander(s.cache.Villagers(), s.cache.UpsertVillager)
}
