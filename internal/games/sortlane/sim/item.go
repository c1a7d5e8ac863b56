package sim

import (
	"time"

	"github.com/vovakirdan/sortlane/internal/core"
)

// ItemState is the lifecycle state of a moving item.
type ItemState int

const (
	ItemTraveling ItemState = iota
	ItemOnRetryHold
	ItemCollected
	ItemEscaped
)

// String returns the state name.
func (s ItemState) String() string {
	switch s {
	case ItemTraveling:
		return "Traveling"
	case ItemOnRetryHold:
		return "OnRetryHold"
	case ItemCollected:
		return "Collected"
	case ItemEscaped:
		return "Escaped"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state is final.
func (s ItemState) Terminal() bool {
	return s == ItemCollected || s == ItemEscaped
}

// Outcome is the result of ReceiveOutcome.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // item was not traveling
	OutcomeCorrect
	OutcomeRetry
	OutcomeForced
)

// RetryState is the bounded misclassification retry budget of an item.
type RetryState struct {
	RetryCount   int
	MaxRetries   int
	OnHold       bool
	HoldElapsed  time.Duration
	HoldDuration time.Duration
}

// RetriesLeft returns how many more rejections lead to a hold rather than
// forced collection.
func (r RetryState) RetriesLeft() int {
	return max(0, r.MaxRetries-r.RetryCount)
}

// Item is an entity traveling a lane from its start toward its end.
type Item struct {
	id       int
	category Category
	lane     *Lane
	progress float64
	radius   float64
	speed    float64

	state   ItemState
	retry   RetryState
	correct bool

	// resumed is set on the tick the item leaves retry hold; the item is
	// not collision tested on that tick.
	resumed bool
}

// NewItem creates a traveling item at the start of lane.
func NewItem(id int, cat Category, lane *Lane, radius, speed float64, maxRetries int, hold time.Duration) *Item {
	return &Item{
		id:       id,
		category: cat,
		lane:     lane,
		radius:   radius,
		speed:    speed,
		state:    ItemTraveling,
		retry: RetryState{
			MaxRetries:   maxRetries,
			HoldDuration: hold,
		},
	}
}

// ID returns the item identifier.
func (it *Item) ID() int { return it.id }

// Category returns the item category.
func (it *Item) Category() Category { return it.category }

// LaneID returns the id of the lane the item travels.
func (it *Item) LaneID() int { return it.lane.ID() }

// Progress returns the travel fraction in [0, 1].
func (it *Item) Progress() float64 { return it.progress }

// Radius returns the collision radius.
func (it *Item) Radius() float64 { return it.radius }

// Speed returns the travel speed in world units per second.
func (it *Item) Speed() float64 { return it.speed }

// State returns the lifecycle state.
func (it *Item) State() ItemState { return it.state }

// Retry returns a copy of the retry state.
func (it *Item) Retry() RetryState { return it.retry }

// CollectedCorrectly reports whether the item ended in a correct collection.
func (it *Item) CollectedCorrectly() bool {
	return it.state == ItemCollected && it.correct
}

// Position returns the item center in world space.
func (it *Item) Position() core.Vec2 {
	return it.lane.PointAt(it.progress)
}

// Live reports whether the item has not reached a terminal state.
func (it *Item) Live() bool {
	return !it.state.Terminal()
}

// Collidable reports whether the item takes part in collision testing
// this tick.
func (it *Item) Collidable() bool {
	return it.state == ItemTraveling && !it.resumed
}

// Advance moves the item forward by dt, or ticks its retry hold. It returns
// true exactly once, on the call where the item escapes.
func (it *Item) Advance(dt time.Duration) (escaped bool) {
	it.resumed = false

	switch it.state {
	case ItemTraveling:
		if it.lane.Length() <= 0 {
			it.progress = 1
		} else {
			it.progress += it.speed * dt.Seconds() / it.lane.Length()
		}
		if it.progress >= 1 {
			it.progress = 1
			it.state = ItemEscaped
			return true
		}
	case ItemOnRetryHold:
		it.retry.HoldElapsed += dt
		if it.retry.HoldElapsed >= it.retry.HoldDuration {
			it.retry.OnHold = false
			it.retry.HoldElapsed = 0
			it.state = ItemTraveling
			it.resumed = true
		}
	}
	return false
}

// ReceiveOutcome applies a classification result. Only traveling items
// react; terminal and held items are never mutated.
func (it *Item) ReceiveOutcome(accepted bool) Outcome {
	if it.state != ItemTraveling {
		return OutcomeIgnored
	}
	if accepted {
		it.state = ItemCollected
		it.correct = true
		return OutcomeCorrect
	}
	if it.retry.RetryCount < it.retry.MaxRetries {
		it.retry.RetryCount++
		it.retry.OnHold = true
		it.retry.HoldElapsed = 0
		it.state = ItemOnRetryHold
		return OutcomeRetry
	}
	it.state = ItemCollected
	it.correct = false
	return OutcomeForced
}
