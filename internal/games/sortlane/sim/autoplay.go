package sim

import (
	"sort"
	"time"
)

// Autoplayer is a deterministic placement policy used for headless runs
// and tests. Each call to Act inspects the live items, most advanced first,
// and makes sure the next classifier each item will meet accepts it.
type Autoplayer struct {
	sim *Simulation

	// Lead is how far ahead of an item, as a lane fraction, a new
	// classifier is placed.
	Lead float64
}

// NewAutoplayer creates an autoplayer driving s.
func NewAutoplayer(s *Simulation) *Autoplayer {
	return &Autoplayer{sim: s, Lead: 0.2}
}

// Act issues placement and removal commands for the current state and
// returns how many commands succeeded.
func (a *Autoplayer) Act() int {
	if a.sim.Done() {
		return 0
	}

	items := a.sim.items.Live()
	order := make([]*Item, 0, len(items))
	for _, it := range items {
		if it.Live() {
			order = append(order, it)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Progress() > order[j].Progress()
	})

	actions := 0
	claimed := make(map[*Classifier]bool)
	for _, it := range order {
		lane := a.sim.lanes.Get(it.LaneID())
		if lane == nil {
			continue
		}
		next := a.nextClassifier(lane, it)
		if next != nil && next.Accepts().Has(it.Category()) {
			claimed[next] = true
			continue
		}

		// Prefer intercepting before a mismatching classifier that an item
		// further ahead still relies on.
		limit := 1.0
		if next != nil {
			if claimed[next] {
				limit = lane.ProgressAlongLane(next.Position())
			} else if a.sim.RemoveClassifier(next) {
				actions++
			}
		}
		if lane.ClassifierCount() >= a.sim.classifiers.MaxPerLane() {
			if victim := a.behind(lane, it); victim != nil && a.sim.RemoveClassifier(victim) {
				actions++
			}
		}
		if c := a.placeAhead(lane, it, limit); c != nil {
			claimed[c] = true
			actions++
		}
	}
	return actions
}

// reach is the progress distance at which an item and a classifier overlap.
func (a *Autoplayer) reach(lane *Lane, it *Item) float64 {
	if lane.Length() == 0 {
		return 0
	}
	return (it.Radius() + a.sim.classifiers.Radius()) / lane.Length()
}

// nextClassifier returns the classifier the item will meet first, including
// one it is currently overlapping.
func (a *Autoplayer) nextClassifier(lane *Lane, it *Item) *Classifier {
	var best *Classifier
	bestP := 0.0
	limit := it.Progress() - a.reach(lane, it)
	for _, c := range lane.classifiers {
		p := lane.ProgressAlongLane(c.Position())
		if p < limit {
			continue
		}
		if best == nil || p < bestP {
			best, bestP = c, p
		}
	}
	return best
}

// behind returns the classifier furthest behind the item, which no longer
// matters to it.
func (a *Autoplayer) behind(lane *Lane, it *Item) *Classifier {
	limit := it.Progress() - a.reach(lane, it)
	var worst *Classifier
	worstP := 0.0
	for _, c := range lane.classifiers {
		p := lane.ProgressAlongLane(c.Position())
		if p >= limit {
			continue
		}
		if worst == nil || p < worstP {
			worst, worstP = c, p
		}
	}
	return worst
}

func (a *Autoplayer) placeAhead(lane *Lane, it *Item, limit float64) *Classifier {
	minP := it.Progress() + a.reach(lane, it)
	targetP := it.Progress() + a.Lead
	if limit < 1 {
		targetP = (minP + limit) / 2
	}
	pos, ok := lane.BestPlacementNear(lane.PointAt(targetP), a.sim.classifiers.Radius())
	if !ok {
		return nil
	}
	if p := lane.ProgressAlongLane(pos); p < minP || p >= limit {
		return nil
	}
	c, err := a.sim.PlaceClassifierAs(it.Category(), pos)
	if err != nil {
		return nil
	}
	return c
}

// RunHeadless drives s with an autoplayer at a fixed step until the level
// ends or maxTicks is reached. It returns the final stats.
func RunHeadless(s *Simulation, step time.Duration, maxTicks int) Stats {
	ap := NewAutoplayer(s)
	for i := 0; i < maxTicks && !s.Done(); i++ {
		ap.Act()
		s.Update(step)
	}
	return s.Stats()
}
