package sim

import (
	"math"

	"github.com/vovakirdan/sortlane/internal/core"
)

// PlacementRules are the spacing constants used by lane placement checks.
type PlacementRules struct {
	NeighborSpacingFactor   float64 // min distance to a placed classifier, in radii
	EndpointClearanceFactor float64 // min distance to either endpoint, in radii
	ProbeCount              int     // fallback probes around the projected point
	ProbeDistanceFactor     float64 // probe circle radius, in radii
}

// DefaultPlacementRules returns the rules from DefaultTuning.
func DefaultPlacementRules() PlacementRules {
	return DefaultTuning().PlacementRules()
}

// Lane is a straight segment with a width that items travel along from
// Start to End. It owns the classifiers placed on it.
type Lane struct {
	id     int
	start  core.Vec2
	end    core.Vec2
	width  float64
	dir    core.Vec2
	length float64
	rules  PlacementRules

	classifiers []*Classifier // placement order
}

// NewLane creates a lane between start and end.
func NewLane(id int, start, end core.Vec2, width float64, rules PlacementRules) *Lane {
	d := end.Sub(start)
	return &Lane{
		id:     id,
		start:  start,
		end:    end,
		width:  width,
		dir:    d.Normalize(),
		length: d.Len(),
		rules:  rules,
	}
}

// ID returns the lane identifier.
func (l *Lane) ID() int { return l.id }

// Start returns the spawn end of the lane.
func (l *Lane) Start() core.Vec2 { return l.start }

// End returns the escape end of the lane.
func (l *Lane) End() core.Vec2 { return l.end }

// Width returns the full lane width.
func (l *Lane) Width() float64 { return l.width }

// Length returns the segment length.
func (l *Lane) Length() float64 { return l.length }

// Direction returns the unit vector from Start to End.
func (l *Lane) Direction() core.Vec2 { return l.dir }

// PointAt returns the point at the given progress along the lane.
// Progress is clamped to [0, 1].
func (l *Lane) PointAt(progress float64) core.Vec2 {
	return l.start.Add(l.dir.Scale(core.ClampF(progress, 0, 1) * l.length))
}

// Project returns the closest point on the lane segment to p.
func (l *Lane) Project(p core.Vec2) core.Vec2 {
	pt, _ := core.ProjectOntoSegment(p, l.start, l.end)
	return pt
}

// DistanceTo returns the distance from p to the lane segment.
func (l *Lane) DistanceTo(p core.Vec2) float64 {
	return core.PointSegmentDistance(p, l.start, l.end)
}

// IsPointWithin reports whether p lies inside the lane: its distance to
// the segment (clamped at the endpoints) is at most half the width.
func (l *Lane) IsPointWithin(p core.Vec2) bool {
	return l.DistanceTo(p) <= l.width/2
}

// ProgressAlongLane returns the scalar projection of pos onto the lane
// direction, as a fraction of the length clamped to [0, 1].
func (l *Lane) ProgressAlongLane(pos core.Vec2) float64 {
	if l.length == 0 {
		return 0
	}
	return core.ClampF(pos.Sub(l.start).Dot(l.dir)/l.length, 0, 1)
}

// CanPlaceClassifier reports whether a classifier of radius r may be placed at p.
func (l *Lane) CanPlaceClassifier(p core.Vec2, r float64) bool {
	return l.CheckPlacement(p, r) == PlacementOK
}

// CheckPlacement returns the first geometric rule that p violates, checked
// in order: lane margin, neighbor spacing, endpoint clearance. Capacity is
// not a lane concern and is enforced by the classifier registry.
func (l *Lane) CheckPlacement(p core.Vec2, r float64) PlacementReason {
	margin := math.Max(0, l.width/2-r)
	if l.DistanceTo(p) > margin {
		return OutsideLane
	}

	minNeighbor := r * l.rules.NeighborSpacingFactor
	for _, c := range l.classifiers {
		if p.Dist(c.Position()) < minNeighbor {
			return TooCloseToNeighbor
		}
	}

	minEndpoint := r * l.rules.EndpointClearanceFactor
	if p.Dist(l.start) < minEndpoint || p.Dist(l.end) < minEndpoint {
		return TooCloseToEndpoint
	}

	return PlacementOK
}

// BestPlacementNear projects target onto the lane and returns it if a
// classifier of radius r fits there. Otherwise it probes points on a circle
// of ProbeDistanceFactor*r around the projection, starting along the lane
// direction, and returns the first valid one.
func (l *Lane) BestPlacementNear(target core.Vec2, r float64) (core.Vec2, bool) {
	proj := l.Project(target)
	if l.CanPlaceClassifier(proj, r) {
		return proj, true
	}

	n := l.rules.ProbeCount
	if n <= 0 {
		return core.Vec2{}, false
	}
	dist := r * l.rules.ProbeDistanceFactor
	base := math.Atan2(l.dir.Y, l.dir.X)
	for k := 0; k < n; k++ {
		angle := base + float64(k)*2*math.Pi/float64(n)
		probe := proj.Add(core.V(math.Cos(angle)*dist, math.Sin(angle)*dist))
		if l.CanPlaceClassifier(probe, r) {
			return probe, true
		}
	}
	return core.Vec2{}, false
}

// Classifiers returns the classifiers placed on this lane in placement order.
func (l *Lane) Classifiers() []*Classifier {
	out := make([]*Classifier, len(l.classifiers))
	copy(out, l.classifiers)
	return out
}

// ClassifierCount returns the number of classifiers on the lane.
func (l *Lane) ClassifierCount() int {
	return len(l.classifiers)
}

func (l *Lane) attach(c *Classifier) {
	for _, existing := range l.classifiers {
		if existing == c {
			return
		}
	}
	l.classifiers = append(l.classifiers, c)
	c.laneID = l.id
}

func (l *Lane) detach(c *Classifier) bool {
	for i, existing := range l.classifiers {
		if existing == c {
			l.classifiers = append(l.classifiers[:i], l.classifiers[i+1:]...)
			c.laneID = -1
			return true
		}
	}
	return false
}
