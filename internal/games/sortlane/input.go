package sortlane

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// handleInput applies one frame of player commands to the simulation.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Pointer != nil && g.view.contains(in.Pointer.X, in.Pointer.Y) {
		g.cursorX, g.cursorY = in.Pointer.X, in.Pointer.Y
	}

	// Cursor movement: one cell per press, lanes are a few rows tall.
	if in.Has(core.ActionLeft) {
		g.cursorX--
	}
	if in.Has(core.ActionRight) {
		g.cursorX++
	}
	if in.Has(core.ActionUp) {
		g.cursorY--
	}
	if in.Has(core.ActionDown) {
		g.cursorY++
	}
	g.cursorX, g.cursorY = g.view.clamp(g.cursorX, g.cursorY)

	allowed := g.sim.AllowedCategories()
	for i, a := range core.SlotActions {
		if in.Has(a) && i < len(allowed) {
			//nolint:errcheck // allowed[i] is always selectable
			g.sim.SelectCategory(allowed[i])
		}
	}
	if in.Has(core.ActionNextCategory) {
		g.sim.CycleCategory(1)
	}
	if in.Has(core.ActionPrevCategory) {
		g.sim.CycleCategory(-1)
	}

	if in.Has(core.ActionRemove) {
		g.removeAt(g.cursorX, g.cursorY)
	} else if in.Has(core.ActionPlace) {
		g.placeAt(g.cursorX, g.cursorY)
	}
}

// placeAt places the selected category at the lane point under a cell.
// The point is snapped to the lane centerline. A spacing rejection is
// retried once at the nearest valid position.
func (g *Game) placeAt(x, y int) {
	p := g.view.toWorld(x, y)
	if lane := g.sim.LaneAt(p); lane != nil {
		p = lane.Project(p)
	}

	c, err := g.sim.PlaceClassifier(p)
	if errors.Is(err, sim.ErrTooCloseToNeighbor) || errors.Is(err, sim.ErrTooCloseToEndpoint) {
		if alt, ok := g.sim.BestPlacementNear(p); ok {
			c, err = g.sim.PlaceClassifier(alt)
		}
	}
	if err != nil {
		g.flash(placementMessage(err), core.ColorYellow)
		return
	}
	g.flash(fmt.Sprintf("%s classifier on lane %d", c.Primary(), c.LaneID()+1), categoryColor(c.Primary()))
}

// removeAt removes the classifier under a cell.
func (g *Game) removeAt(x, y int) {
	c := g.sim.ClassifierAt(g.view.toWorld(x, y))
	if c == nil {
		g.flash("No classifier here", core.ColorGray)
		return
	}
	g.sim.RemoveClassifier(c)
	g.flash(fmt.Sprintf("%s classifier removed", c.Primary()), core.ColorGray)
}

// placementMessage turns a placement rejection into player text.
func placementMessage(err error) string {
	var perr *sim.PlacementError
	if errors.As(err, &perr) {
		switch perr.Reason {
		case sim.OutsideLane:
			return "Classifiers go on a lane"
		case sim.TooCloseToNeighbor:
			return "Too close to another classifier"
		case sim.TooCloseToEndpoint:
			return "Too close to the lane end"
		case sim.LaneAtCapacity:
			return "Lane is full, remove a classifier first"
		}
	}
	if errors.Is(err, sim.ErrCategoryNotAllowed) {
		return "Category not used in this level"
	}
	return err.Error()
}
