package sim

import (
	"math/rand"
	"time"
)

// SpawnParams configures an ItemSpawner.
type SpawnParams struct {
	Categories    []Category
	Target        int
	MaxConcurrent int
	Interval      time.Duration

	ItemRadius float64
	ItemSpeed  float64
	MaxRetries int
	RetryHold  time.Duration
}

// ItemSpawner creates items on a timer and tracks every live item.
//
// The timer accumulates elapsed time; each full interval releases one spawn
// as long as fewer than Target items were spawned and fewer than
// MaxConcurrent are live. A spawn blocked by the concurrency cap stays
// pending, so the next item appears as soon as a slot frees.
type ItemSpawner struct {
	lanes  *LaneRegistry
	params SpawnParams
	rng    *rand.Rand

	timer   time.Duration
	spawned int
	nextID  int

	live []*Item // spawn order
}

// NewItemSpawner creates a spawner over lanes. The first item is due on the
// first Update.
func NewItemSpawner(lanes *LaneRegistry, params SpawnParams, seed int64) *ItemSpawner {
	return &ItemSpawner{
		lanes:  lanes,
		params: params,
		rng:    rand.New(rand.NewSource(seed)),
		timer:  params.Interval,
		nextID: 1,
	}
}

// Spawned returns how many items were created so far.
func (s *ItemSpawner) Spawned() int { return s.spawned }

// Exhausted reports whether the spawn target has been reached.
func (s *ItemSpawner) Exhausted() bool { return s.spawned >= s.params.Target }

// Live returns the tracked items in spawn order. Items that turned terminal
// during the current tick remain until Prune.
func (s *ItemSpawner) Live() []*Item {
	return s.live
}

// LiveCount returns the number of non-terminal tracked items.
func (s *ItemSpawner) LiveCount() int {
	n := 0
	for _, it := range s.live {
		if it.Live() {
			n++
		}
	}
	return n
}

// Update advances the spawn timer by dt and returns the items created.
func (s *ItemSpawner) Update(dt time.Duration) []*Item {
	if s.Exhausted() || s.lanes.Len() == 0 || len(s.params.Categories) == 0 {
		return nil
	}

	s.timer += dt
	var created []*Item
	for s.timer >= s.params.Interval && !s.Exhausted() {
		if s.LiveCount() >= s.params.MaxConcurrent {
			// Hold one pending spawn until a slot frees.
			s.timer = s.params.Interval
			break
		}
		created = append(created, s.spawnOne())
		s.timer -= s.params.Interval
		if s.params.Interval <= 0 {
			s.timer = 0
		}
	}
	return created
}

func (s *ItemSpawner) spawnOne() *Item {
	lanes := s.lanes.All()
	lane := lanes[s.rng.Intn(len(lanes))]
	cat := s.params.Categories[s.rng.Intn(len(s.params.Categories))]

	it := NewItem(s.nextID, cat, lane, s.params.ItemRadius, s.params.ItemSpeed, s.params.MaxRetries, s.params.RetryHold)
	s.nextID++
	s.spawned++
	s.live = append(s.live, it)
	return it
}

// Prune drops terminal items from the live list. Call it only after the
// whole tick has been processed.
func (s *ItemSpawner) Prune() {
	kept := s.live[:0]
	for _, it := range s.live {
		if it.Live() {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
}
