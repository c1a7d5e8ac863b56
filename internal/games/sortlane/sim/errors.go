package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sortlane/internal/core"
)

// PlacementReason identifies why a classifier placement was rejected.
type PlacementReason int

const (
	PlacementOK PlacementReason = iota
	OutsideLane
	TooCloseToNeighbor
	TooCloseToEndpoint
	LaneAtCapacity
)

// String returns a human-readable name for the reason.
func (r PlacementReason) String() string {
	switch r {
	case PlacementOK:
		return "ok"
	case OutsideLane:
		return "outside lane"
	case TooCloseToNeighbor:
		return "too close to neighbor"
	case TooCloseToEndpoint:
		return "too close to endpoint"
	case LaneAtCapacity:
		return "lane at capacity"
	default:
		return "unknown"
	}
}

// PlacementError is returned when a classifier cannot be placed.
// It is an expected rejection, not a fatal error.
type PlacementError struct {
	Reason PlacementReason
	Point  core.Vec2
	LaneID int // -1 when no lane was found
}

func (e *PlacementError) Error() string {
	if e.LaneID < 0 {
		return fmt.Sprintf("sim: cannot place classifier at %v: %s", e.Point, e.Reason)
	}
	return fmt.Sprintf("sim: cannot place classifier at %v on lane %d: %s", e.Point, e.LaneID, e.Reason)
}

// Is matches any *PlacementError with the same Reason, so callers can use
// errors.Is(err, sim.ErrTooCloseToNeighbor).
func (e *PlacementError) Is(target error) bool {
	t, ok := target.(*PlacementError)
	return ok && t.Reason == e.Reason
}

// Sentinel placement errors for use with errors.Is.
var (
	ErrOutsideLane        = &PlacementError{Reason: OutsideLane, LaneID: -1}
	ErrTooCloseToNeighbor = &PlacementError{Reason: TooCloseToNeighbor, LaneID: -1}
	ErrTooCloseToEndpoint = &PlacementError{Reason: TooCloseToEndpoint, LaneID: -1}
	ErrLaneAtCapacity     = &PlacementError{Reason: LaneAtCapacity, LaneID: -1}
)

// ErrCategoryNotAllowed is returned when selecting or placing a category
// that the current level does not use.
var ErrCategoryNotAllowed = errors.New("sim: category not allowed in this level")

// ConfigurationError reports a malformed level or tuning configuration.
// Loading aborts when one is returned.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sim: invalid configuration: %s: %s", e.Field, e.Reason)
}
