package sim

import "github.com/vovakirdan/sortlane/internal/core"

// Evaluation is the outcome of a classifier inspecting an item.
type Evaluation struct {
	Accepted bool
}

// Classifier is a player-placed object on a lane that accepts items whose
// category is in its acceptance set.
type Classifier struct {
	id       int
	accepts  CategorySet
	radius   float64
	position core.Vec2
	laneID   int

	accepted int
	rejected int
}

func newClassifier(id int, accepts CategorySet, radius float64, pos core.Vec2) *Classifier {
	return &Classifier{
		id:       id,
		accepts:  accepts,
		radius:   radius,
		position: pos,
		laneID:   -1,
	}
}

// ID returns the classifier identifier.
func (c *Classifier) ID() int { return c.id }

// Accepts returns the acceptance set.
func (c *Classifier) Accepts() CategorySet { return c.accepts }

// Primary returns the first accepted category, used for display.
func (c *Classifier) Primary() Category {
	for cat := Category(0); cat < CategoryCount; cat++ {
		if c.accepts.Has(cat) {
			return cat
		}
	}
	return CategoryPaper
}

// Radius returns the interception radius.
func (c *Classifier) Radius() float64 { return c.radius }

// Position returns the fixed world position.
func (c *Classifier) Position() core.Vec2 { return c.position }

// LaneID returns the owning lane id, or -1 once removed.
func (c *Classifier) LaneID() int { return c.laneID }

// Placed reports whether the classifier is currently on a lane.
func (c *Classifier) Placed() bool { return c.laneID >= 0 }

// AcceptedCount returns how many items this classifier accepted.
func (c *Classifier) AcceptedCount() int { return c.accepted }

// RejectedCount returns how many items this classifier rejected.
func (c *Classifier) RejectedCount() int { return c.rejected }

// Contains reports whether p lies inside the interception circle.
func (c *Classifier) Contains(p core.Vec2) bool {
	return c.position.Dist(p) <= c.radius
}

// Evaluate inspects an item category and records the outcome.
func (c *Classifier) Evaluate(cat Category) Evaluation {
	if c.accepts.Has(cat) {
		c.accepted++
		return Evaluation{Accepted: true}
	}
	c.rejected++
	return Evaluation{Accepted: false}
}
