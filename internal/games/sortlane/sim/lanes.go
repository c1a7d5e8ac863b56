package sim

import (
	"sort"

	"github.com/vovakirdan/sortlane/internal/core"
)

// LaneLayout describes how a level's parallel lanes are positioned.
// Lane i runs horizontally from (Origin.X, y) to (Origin.X+Length, y)
// where y = Origin.Y + Spacing/2 + i*Spacing.
type LaneLayout struct {
	Origin  core.Vec2
	Length  float64
	Width   float64
	Spacing float64
}

// LayoutFromTuning builds the standard layout rooted at the world origin.
func LayoutFromTuning(t Tuning) LaneLayout {
	return LaneLayout{
		Length:  t.LaneLength,
		Width:   t.LaneWidth,
		Spacing: t.LaneSpacing,
	}
}

// Bounds returns the world-space size covered by count lanes.
func (ly LaneLayout) Bounds(count int) (w, h float64) {
	return ly.Length, ly.Spacing * float64(count)
}

// LaneRegistry holds the lanes of one level, ordered by id.
type LaneRegistry struct {
	lanes []*Lane
}

// NewLaneRegistry creates count parallel lanes using layout and rules.
func NewLaneRegistry(count int, layout LaneLayout, rules PlacementRules) *LaneRegistry {
	lanes := make([]*Lane, 0, count)
	for i := 0; i < count; i++ {
		y := layout.Origin.Y + layout.Spacing/2 + float64(i)*layout.Spacing
		start := core.V(layout.Origin.X, y)
		end := core.V(layout.Origin.X+layout.Length, y)
		lanes = append(lanes, NewLane(i, start, end, layout.Width, rules))
	}
	return &LaneRegistry{lanes: lanes}
}

// NewLaneRegistryFrom wraps an explicit set of lanes. Ids must be unique.
func NewLaneRegistryFrom(lanes ...*Lane) *LaneRegistry {
	sorted := make([]*Lane, len(lanes))
	copy(sorted, lanes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })
	return &LaneRegistry{lanes: sorted}
}

// All returns every lane ordered by id.
func (r *LaneRegistry) All() []*Lane {
	out := make([]*Lane, len(r.lanes))
	copy(out, r.lanes)
	return out
}

// Len returns the number of lanes.
func (r *LaneRegistry) Len() int {
	return len(r.lanes)
}

// Get returns the lane with the given id, or nil.
func (r *LaneRegistry) Get(id int) *Lane {
	for _, l := range r.lanes {
		if l.id == id {
			return l
		}
	}
	return nil
}

// LaneAt returns the lane containing p, or nil. When lanes overlap the
// nearest one wins, ties broken by lower id.
func (r *LaneRegistry) LaneAt(p core.Vec2) *Lane {
	var best *Lane
	bestDist := 0.0
	for _, l := range r.lanes {
		if !l.IsPointWithin(p) {
			continue
		}
		d := l.DistanceTo(p)
		if best == nil || d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

// BestPlacementNear tries each lane in order of distance from p and returns
// the first lane that can fit a classifier of radius r near p.
func (r *LaneRegistry) BestPlacementNear(p core.Vec2, radius float64) (*Lane, core.Vec2, bool) {
	ordered := r.All()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DistanceTo(p) < ordered[j].DistanceTo(p)
	})
	for _, l := range ordered {
		if pos, ok := l.BestPlacementNear(p, radius); ok {
			return l, pos, true
		}
	}
	return nil, core.Vec2{}, false
}
