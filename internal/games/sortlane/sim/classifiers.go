package sim

import (
	"fmt"

	"github.com/vovakirdan/sortlane/internal/core"
)

// ClassifierRegistry owns placement and removal of classifiers, the
// per-lane capacity and the currently selected category.
type ClassifierRegistry struct {
	lanes      *LaneRegistry
	radius     float64
	maxPerLane int

	allowed  []Category
	selected Category

	placed []*Classifier // placement order
	nextID int
}

// NewClassifierRegistry creates a registry over lanes. allowed must be
// non-empty; the first entry becomes the initial selection.
func NewClassifierRegistry(lanes *LaneRegistry, allowed []Category, radius float64, maxPerLane int) *ClassifierRegistry {
	r := &ClassifierRegistry{
		lanes:      lanes,
		radius:     radius,
		maxPerLane: maxPerLane,
		allowed:    append([]Category(nil), allowed...),
		nextID:     1,
	}
	if len(r.allowed) > 0 {
		r.selected = r.allowed[0]
	}
	return r
}

// Radius returns the radius given to new classifiers.
func (r *ClassifierRegistry) Radius() float64 { return r.radius }

// MaxPerLane returns the per-lane capacity.
func (r *ClassifierRegistry) MaxPerLane() int { return r.maxPerLane }

// Selected returns the currently selected category.
func (r *ClassifierRegistry) Selected() Category { return r.selected }

// Allowed returns the level's categories in configuration order.
func (r *ClassifierRegistry) Allowed() []Category {
	return append([]Category(nil), r.allowed...)
}

// IsAllowed reports whether cat is used by this level.
func (r *ClassifierRegistry) IsAllowed(cat Category) bool {
	for _, a := range r.allowed {
		if a == cat {
			return true
		}
	}
	return false
}

// Select changes the selected category. The selection is unchanged when cat
// is not allowed.
func (r *ClassifierRegistry) Select(cat Category) error {
	if !r.IsAllowed(cat) {
		return fmt.Errorf("%w: %s", ErrCategoryNotAllowed, cat)
	}
	r.selected = cat
	return nil
}

// Cycle moves the selection delta steps through the allowed categories,
// wrapping at both ends.
func (r *ClassifierRegistry) Cycle(delta int) Category {
	n := len(r.allowed)
	if n == 0 {
		return r.selected
	}
	idx := 0
	for i, a := range r.allowed {
		if a == r.selected {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	r.selected = r.allowed[idx]
	return r.selected
}

// PlaceSelected places a classifier for the selected category at p.
func (r *ClassifierRegistry) PlaceSelected(p core.Vec2) (*Classifier, error) {
	return r.Place(r.selected, p)
}

// Place validates and places a classifier accepting cat at p. Rejections are
// returned as *PlacementError (or ErrCategoryNotAllowed) and leave the
// registry unchanged.
func (r *ClassifierRegistry) Place(cat Category, p core.Vec2) (*Classifier, error) {
	if !r.IsAllowed(cat) {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotAllowed, cat)
	}

	lane := r.lanes.LaneAt(p)
	if lane == nil {
		return nil, &PlacementError{Reason: OutsideLane, Point: p, LaneID: -1}
	}

	if reason := lane.CheckPlacement(p, r.radius); reason != PlacementOK {
		return nil, &PlacementError{Reason: reason, Point: p, LaneID: lane.ID()}
	}

	if r.maxPerLane > 0 && lane.ClassifierCount() >= r.maxPerLane {
		return nil, &PlacementError{Reason: LaneAtCapacity, Point: p, LaneID: lane.ID()}
	}

	c := newClassifier(r.nextID, NewCategorySet(cat), r.radius, p)
	r.nextID++
	lane.attach(c)
	r.placed = append(r.placed, c)
	return c, nil
}

// Remove detaches c from its lane and the registry. It reports whether
// anything changed; removing an unknown or already removed classifier is a
// no-op.
func (r *ClassifierRegistry) Remove(c *Classifier) bool {
	if c == nil {
		return false
	}
	idx := -1
	for i, existing := range r.placed {
		if existing == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.placed = append(r.placed[:idx], r.placed[idx+1:]...)
	if lane := r.lanes.Get(c.laneID); lane != nil {
		lane.detach(c)
	}
	c.laneID = -1
	return true
}

// At returns the placed classifier whose interception circle contains p,
// nearest first, or nil.
func (r *ClassifierRegistry) At(p core.Vec2) *Classifier {
	var best *Classifier
	bestDist := 0.0
	for _, c := range r.placed {
		if !c.Contains(p) {
			continue
		}
		d := c.Position().Dist(p)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// All returns every placed classifier in placement order.
func (r *ClassifierRegistry) All() []*Classifier {
	return append([]*Classifier(nil), r.placed...)
}

// Len returns the number of placed classifiers.
func (r *ClassifierRegistry) Len() int {
	return len(r.placed)
}
