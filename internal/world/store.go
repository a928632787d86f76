// Package world keeps the instantiated obstacles of a level: it receives
// placements from the generator, drops the ones left behind, and answers
// collision queries against the player.
package world

import (
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/generator"
)

// Obstacle is a live obstacle instance.
type Obstacle struct {
	ID int
	generator.Placement
}

// Store holds live obstacles in spawn order.
type Store struct {
	obstacles []Obstacle
	nextID    int
	spawned   int
	despawned int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{obstacles: make([]Obstacle, 0, 256)}
}

// Spawn implements generator.Spawner.
func (s *Store) Spawn(p generator.Placement) {
	s.nextID++
	s.spawned++
	s.obstacles = append(s.obstacles, Obstacle{ID: s.nextID, Placement: p})
}

// Obstacles returns the live obstacles. The slice is reused by later calls.
func (s *Store) Obstacles() []Obstacle { return s.obstacles }

// Len returns the number of live obstacles.
func (s *Store) Len() int { return len(s.obstacles) }

// Spawned returns how many obstacles have ever been added.
func (s *Store) Spawned() int { return s.spawned }

// Despawned returns how many obstacles have been removed.
func (s *Store) Despawned() int { return s.despawned }

// Despawn removes every obstacle whose far face lies more than distance
// behind playerZ and returns how many were removed.
func (s *Store) Despawn(playerZ, distance float64) int {
	limit := playerZ - distance
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Bounds().Max().Z() >= limit {
			kept = append(kept, o)
		}
	}
	n := len(s.obstacles) - len(kept)
	s.obstacles = kept
	s.despawned += n
	return n
}

// Remove drops one obstacle by id.
func (s *Store) Remove(id int) bool {
	for i, o := range s.obstacles {
		if o.ID == id {
			s.obstacles = append(s.obstacles[:i], s.obstacles[i+1:]...)
			s.despawned++
			return true
		}
	}
	return false
}

// Collide returns the first obstacle overlapping box.
func (s *Store) Collide(box core.Box) opt.Option[Obstacle] {
	for _, o := range s.obstacles {
		if o.Bounds().Intersects(box) {
			return opt.Some(o)
		}
	}
	return opt.None[Obstacle]()
}

// Between returns the obstacles whose Z extent overlaps [zMin, zMax].
func (s *Store) Between(zMin, zMax float64) []Obstacle {
	var out []Obstacle
	for _, o := range s.obstacles {
		b := o.Bounds()
		if b.Max().Z() >= zMin && b.Min().Z() <= zMax {
			out = append(out, o)
		}
	}
	return out
}
