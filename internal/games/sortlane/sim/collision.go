package sim

import "github.com/vovakirdan/sortlane/internal/core"

// Collision is an overlapping item/classifier pair found in one tick.
type Collision struct {
	Item       *Item
	Classifier *Classifier
}

// FindCollisions tests every collidable item against the classifiers on its
// own lane, in placement order. The first overlap wins, so each item
// appears in at most one pair. No state is carried between ticks.
func FindCollisions(items []*Item, lanes *LaneRegistry) []Collision {
	var out []Collision
	for _, it := range items {
		if !it.Collidable() {
			continue
		}
		lane := lanes.Get(it.LaneID())
		if lane == nil {
			continue
		}
		pos := it.Position()
		for _, c := range lane.classifiers {
			if core.CirclesOverlap(pos, it.Radius(), c.Position(), c.Radius()) {
				out = append(out, Collision{Item: it, Classifier: c})
				break
			}
		}
	}
	return out
}
