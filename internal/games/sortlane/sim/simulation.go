package sim

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sortlane/internal/core"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithTuning overrides the engine constants.
func WithTuning(t Tuning) Option {
	return func(s *Simulation) { s.tuning = t }
}

// WithSeed sets the spawner RNG seed.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// WithSink subscribes a sink before the first tick.
func WithSink(sink Sink) Option {
	return func(s *Simulation) { s.Subscribe(sink) }
}

// WithLayoutOrigin shifts every lane by origin.
func WithLayoutOrigin(origin core.Vec2) Option {
	return func(s *Simulation) { s.origin = origin }
}

// Simulation runs one level. It is driven by Update from a single goroutine
// and is not safe for concurrent use. Pausing means not calling Update.
type Simulation struct {
	cfg    LevelConfig
	tuning Tuning
	seed   int64
	origin core.Vec2

	lanes       *LaneRegistry
	classifiers *ClassifierRegistry
	items       *ItemSpawner
	resolver    Resolver
	level       *Level

	sinks []Sink
	tick  uint64
}

// New validates cfg and builds a fresh level. A malformed configuration
// returns a *ConfigurationError.
func New(cfg LevelConfig, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		cfg:    cfg,
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.tuning.Validate(); err != nil {
		return nil, err
	}

	layout := LayoutFromTuning(s.tuning)
	layout.Origin = s.origin
	s.lanes = NewLaneRegistry(cfg.LaneCount, layout, s.tuning.PlacementRules())
	s.classifiers = NewClassifierRegistry(s.lanes, cfg.AllowedCategories, s.tuning.ClassifierRadius, s.tuning.MaxClassifiersPerLane)
	s.items = NewItemSpawner(s.lanes, SpawnParams{
		Categories:    cfg.AllowedCategories,
		Target:        cfg.TargetItemCount,
		MaxConcurrent: cfg.MaxConcurrentItems,
		Interval:      cfg.SpawnInterval(),
		ItemRadius:    s.tuning.ItemRadius,
		ItemSpeed:     s.tuning.ItemSpeed,
		MaxRetries:    s.tuning.MaxRetries,
		RetryHold:     s.tuning.RetryHold,
	}, s.seed)
	s.resolver = Resolver{CorrectPoints: s.tuning.CorrectPoints}
	s.level = NewLevel(cfg)

	return s, nil
}

// Subscribe adds a sink that receives every subsequent event.
func (s *Simulation) Subscribe(sink Sink) {
	if sink != nil {
		s.sinks = append(s.sinks, sink)
	}
}

// Update advances the simulation by dt. The order within a tick is fixed:
// spawn, move, collide, resolve, settle the level, then prune terminal
// items. Once the level has ended Update does nothing.
func (s *Simulation) Update(dt time.Duration) TickResult {
	if !s.level.Active() {
		return TickResult{Tick: s.tick, Status: s.level.Status()}
	}
	if dt < 0 {
		dt = 0
	}
	s.tick++
	var events []Event

	s.level.Advance(dt)

	for _, it := range s.items.Update(dt) {
		events = append(events, Event{
			Kind:     EventItemSpawned,
			Item:     it.ID(),
			Category: it.Category(),
			LaneID:   it.LaneID(),
			Position: it.Position(),
		})
	}

	for _, it := range s.items.Live() {
		if it.Advance(dt) {
			events = append(events, Event{
				Kind:     EventItemEscaped,
				Item:     it.ID(),
				Category: it.Category(),
				LaneID:   it.LaneID(),
				Position: it.Position(),
			})
		}
	}

	for _, c := range FindCollisions(s.items.Live(), s.lanes) {
		if ev, ok := s.resolver.Resolve(c); ok {
			events = append(events, ev)
		}
	}

	for _, ev := range events {
		s.level.Record(ev)
	}
	if ev, ok := s.level.Settle(s.items.LiveCount()); ok {
		events = append(events, ev)
	}

	for i := range events {
		events[i].Tick = s.tick
		for _, sink := range s.sinks {
			sink.OnEvent(events[i])
		}
	}

	s.items.Prune()

	return TickResult{Tick: s.tick, Events: events, Status: s.level.Status()}
}

// Tick returns the number of Update calls that advanced the level.
func (s *Simulation) Tick() uint64 { return s.tick }

// Config returns the level configuration.
func (s *Simulation) Config() LevelConfig { return s.cfg }

// Tuning returns the engine constants in use.
func (s *Simulation) Tuning() Tuning { return s.tuning }

// Stats returns a snapshot of the level statistics.
func (s *Simulation) Stats() Stats { return s.level.Stats() }

// Status returns the level status.
func (s *Simulation) Status() Status { return s.level.Status() }

// Done reports whether the level has ended.
func (s *Simulation) Done() bool { return !s.level.Active() }

// Lanes returns every lane ordered by id.
func (s *Simulation) Lanes() []*Lane { return s.lanes.All() }

// Lane returns the lane with the given id, or nil.
func (s *Simulation) Lane(id int) *Lane { return s.lanes.Get(id) }

// LaneAt returns the lane under p, or nil.
func (s *Simulation) LaneAt(p core.Vec2) *Lane { return s.lanes.LaneAt(p) }

// Bounds returns the world-space size of the lane area.
func (s *Simulation) Bounds() (w, h float64) {
	layout := LayoutFromTuning(s.tuning)
	return layout.Bounds(s.lanes.Len())
}

// ClassifiersOnLane returns the classifiers on lane id in placement order,
// or nil for an unknown lane.
func (s *Simulation) ClassifiersOnLane(id int) []*Classifier {
	l := s.lanes.Get(id)
	if l == nil {
		return nil
	}
	return l.Classifiers()
}

// Classifiers returns every placed classifier in placement order.
func (s *Simulation) Classifiers() []*Classifier { return s.classifiers.All() }

// LiveItems returns copies of the items that have not reached a terminal
// state.
func (s *Simulation) LiveItems() []Item {
	out := make([]Item, 0, len(s.items.Live()))
	for _, it := range s.items.Live() {
		if it.Live() {
			out = append(out, *it)
		}
	}
	return out
}

// SelectedCategory returns the category used by PlaceClassifier.
func (s *Simulation) SelectedCategory() Category { return s.classifiers.Selected() }

// AllowedCategories returns the level's categories in configuration order.
func (s *Simulation) AllowedCategories() []Category { return s.classifiers.Allowed() }

// SelectCategory changes the selected category. It returns an error wrapping
// ErrCategoryNotAllowed for a category the level does not use.
func (s *Simulation) SelectCategory(c Category) error {
	return s.classifiers.Select(c)
}

// CycleCategory moves the selection delta steps, wrapping around.
func (s *Simulation) CycleCategory(delta int) Category {
	return s.classifiers.Cycle(delta)
}

// PlaceClassifier places a classifier for the selected category at p.
func (s *Simulation) PlaceClassifier(p core.Vec2) (*Classifier, error) {
	return s.PlaceClassifierAs(s.classifiers.Selected(), p)
}

// PlaceClassifierAs places a classifier for category c at p.
func (s *Simulation) PlaceClassifierAs(c Category, p core.Vec2) (*Classifier, error) {
	if !s.level.Active() {
		return nil, fmt.Errorf("sim: level %s", s.level.Status())
	}
	return s.classifiers.Place(c, p)
}

// RemoveClassifier removes c. It reports whether anything changed.
func (s *Simulation) RemoveClassifier(c *Classifier) bool {
	return s.classifiers.Remove(c)
}

// ClassifierAt returns the classifier under p, or nil.
func (s *Simulation) ClassifierAt(p core.Vec2) *Classifier {
	return s.classifiers.At(p)
}

// BestPlacementNear returns the nearest valid classifier position to p on
// any lane.
func (s *Simulation) BestPlacementNear(p core.Vec2) (core.Vec2, bool) {
	_, pos, ok := s.lanes.BestPlacementNear(p, s.classifiers.Radius())
	return pos, ok
}
