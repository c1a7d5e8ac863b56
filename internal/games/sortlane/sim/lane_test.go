package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/sortlane/internal/core"
)

func wideLane() *Lane {
	return NewLane(0, core.V(0, 0), core.V(200, 0), 40, DefaultPlacementRules())
}

func TestLaneIsPointWithin(t *testing.T) {
	lane := NewLane(0, core.V(0, 0), core.V(100, 0), 20, DefaultPlacementRules())

	tests := []struct {
		name     string
		p        core.Vec2
		expected bool
	}{
		{"middle", core.V(50, 0), true},
		{"edge of width", core.V(50, 10), true},
		{"beyond width", core.V(50, 15), false},
		{"beyond segment end", core.V(150, 0), false},
		{"beyond segment start", core.V(-11, 0), false},
		{"near start inside cap", core.V(-5, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lane.IsPointWithin(tc.p); got != tc.expected {
				t.Errorf("IsPointWithin(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestLaneProgressAlongLane(t *testing.T) {
	lane := NewLane(0, core.V(10, 5), core.V(110, 5), 12, DefaultPlacementRules())

	tests := []struct {
		p        core.Vec2
		expected float64
	}{
		{core.V(10, 5), 0},
		{core.V(60, 5), 0.5},
		{core.V(35, 9), 0.25},
		{core.V(500, 5), 1},
		{core.V(-40, 0), 0},
	}

	for _, tc := range tests {
		if got := lane.ProgressAlongLane(tc.p); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("ProgressAlongLane(%v) = %f, expected %f", tc.p, got, tc.expected)
		}
	}

	if got := lane.PointAt(0.5); got.Dist(core.V(60, 5)) > 1e-9 {
		t.Errorf("PointAt(0.5) = %v, expected (60,5)", got)
	}
}

func TestLaneCheckPlacement(t *testing.T) {
	lane := wideLane()
	lane.attach(newClassifier(1, NewCategorySet(CategoryPaper), 15, core.V(100, 0)))

	tests := []struct {
		name     string
		p        core.Vec2
		expected PlacementReason
	}{
		{"valid", core.V(50, 0), PlacementOK},
		{"inside margin", core.V(50, 5), PlacementOK},
		{"outside margin", core.V(50, 6), OutsideLane},
		{"too close to neighbor", core.V(120, 0), TooCloseToNeighbor},
		{"too close to neighbor behind", core.V(80, 0), TooCloseToNeighbor},
		{"too close to start", core.V(20, 0), TooCloseToEndpoint},
		{"too close to end", core.V(190, 0), TooCloseToEndpoint},
		{"outside beats endpoint", core.V(0, 30), OutsideLane},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lane.CheckPlacement(tc.p, 15); got != tc.expected {
				t.Errorf("CheckPlacement(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestLaneBestPlacementNear(t *testing.T) {
	t.Run("projection valid", func(t *testing.T) {
		lane := wideLane()
		pos, ok := lane.BestPlacementNear(core.V(70, 12), 15)
		if !ok {
			t.Fatal("expected a placement")
		}
		if pos.Dist(core.V(70, 0)) > 1e-9 {
			t.Errorf("BestPlacementNear = %v, expected (70,0)", pos)
		}
	})

	t.Run("probe fallback", func(t *testing.T) {
		lane := wideLane()
		lane.attach(newClassifier(1, NewCategorySet(CategoryPaper), 15, core.V(100, 0)))
		pos, ok := lane.BestPlacementNear(core.V(100, 10), 15)
		if !ok {
			t.Fatal("expected a probe placement")
		}
		// First probe lies along the lane direction at 3r.
		if pos.Dist(core.V(145, 0)) > 1e-9 {
			t.Errorf("BestPlacementNear = %v, expected (145,0)", pos)
		}
		if !lane.CanPlaceClassifier(pos, 15) {
			t.Error("returned position must be placeable")
		}
	})

	t.Run("no room", func(t *testing.T) {
		lane := NewLane(0, core.V(0, 0), core.V(40, 0), 40, DefaultPlacementRules())
		if _, ok := lane.BestPlacementNear(core.V(20, 0), 15); ok {
			t.Error("expected no placement on a lane shorter than the endpoint clearance")
		}
	})
}

func TestLaneRegistryLaneAt(t *testing.T) {
	reg := NewLaneRegistry(3, LaneLayout{Length: 100, Width: 12, Spacing: 16}, DefaultPlacementRules())

	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", reg.Len())
	}

	tests := []struct {
		p        core.Vec2
		expected int
	}{
		{core.V(50, 8), 0},
		{core.V(50, 24), 1},
		{core.V(50, 45), 2},
		{core.V(50, 16), -1}, // gap between lanes
		{core.V(120, 8), -1},
	}

	for _, tc := range tests {
		got := reg.LaneAt(tc.p)
		id := -1
		if got != nil {
			id = got.ID()
		}
		if id != tc.expected {
			t.Errorf("LaneAt(%v) = %d, expected %d", tc.p, id, tc.expected)
		}
	}

	if reg.Get(7) != nil {
		t.Error("Get on unknown id should return nil")
	}
}

func TestLaneRegistryBestPlacementNear(t *testing.T) {
	reg := NewLaneRegistry(2, LaneLayout{Length: 100, Width: 12, Spacing: 16}, DefaultPlacementRules())

	lane, pos, ok := reg.BestPlacementNear(core.V(40, 21), 4)
	if !ok {
		t.Fatal("expected a placement")
	}
	if lane.ID() != 1 {
		t.Errorf("lane = %d, expected nearest lane 1", lane.ID())
	}
	if pos.Dist(core.V(40, 24)) > 1e-9 {
		t.Errorf("pos = %v, expected (40,24)", pos)
	}
}

func newTestRegistry(maxPerLane int) *ClassifierRegistry {
	lanes := NewLaneRegistryFrom(wideLane())
	return NewClassifierRegistry(lanes, []Category{CategoryPaper, CategoryGlass, CategoryMetal}, 15, maxPerLane)
}

func TestClassifierRegistryPlacementSpacing(t *testing.T) {
	reg := newTestRegistry(3)

	if _, err := reg.Place(CategoryPaper, core.V(50, 0)); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}

	_, err := reg.Place(CategoryPaper, core.V(53, 0))
	if !errors.Is(err, ErrTooCloseToNeighbor) {
		t.Fatalf("expected TooCloseToNeighbor, got %v", err)
	}
	var perr *PlacementError
	if !errors.As(err, &perr) || perr.LaneID != 0 {
		t.Errorf("expected *PlacementError on lane 0, got %#v", err)
	}

	if _, err := reg.Place(CategoryPaper, core.V(90, 0)); err != nil {
		t.Errorf("placement at distance 40 should succeed: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", reg.Len())
	}
}

func TestClassifierRegistryRejections(t *testing.T) {
	reg := newTestRegistry(2)

	if _, err := reg.Place(CategoryPaper, core.V(50, 100)); !errors.Is(err, ErrOutsideLane) {
		t.Errorf("expected OutsideLane, got %v", err)
	}
	if _, err := reg.Place(CategoryPaper, core.V(10, 0)); !errors.Is(err, ErrTooCloseToEndpoint) {
		t.Errorf("expected TooCloseToEndpoint, got %v", err)
	}
	if _, err := reg.Place(CategoryOrganic, core.V(50, 0)); !errors.Is(err, ErrCategoryNotAllowed) {
		t.Errorf("expected ErrCategoryNotAllowed, got %v", err)
	}

	for _, x := range []float64{50, 100} {
		if _, err := reg.Place(CategoryGlass, core.V(x, 0)); err != nil {
			t.Fatalf("Place(%v) failed: %v", x, err)
		}
	}
	_, err := reg.Place(CategoryGlass, core.V(150, 0))
	if !errors.Is(err, ErrLaneAtCapacity) {
		t.Errorf("expected LaneAtCapacity, got %v", err)
	}
	if errors.Is(err, ErrOutsideLane) {
		t.Error("capacity error must not match a different reason")
	}
	if reg.Len() != 2 {
		t.Errorf("rejections must not change the registry, Len() = %d", reg.Len())
	}
}

func TestClassifierRegistryRemoveIdempotent(t *testing.T) {
	reg := newTestRegistry(3)
	c, err := reg.Place(CategoryMetal, core.V(60, 0))
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	lane := reg.lanes.Get(0)

	if !reg.Remove(c) {
		t.Fatal("first Remove should report a change")
	}
	if c.Placed() || lane.ClassifierCount() != 0 || reg.Len() != 0 {
		t.Fatal("classifier should be detached from lane and registry")
	}
	if reg.Remove(c) {
		t.Error("second Remove should be a no-op")
	}
	if reg.Remove(nil) {
		t.Error("Remove(nil) should be a no-op")
	}

	// Spot freed by removal can be reused.
	if _, err := reg.Place(CategoryMetal, core.V(60, 0)); err != nil {
		t.Errorf("re-placing after removal failed: %v", err)
	}
}

func TestClassifierRegistrySelection(t *testing.T) {
	reg := newTestRegistry(3)

	if reg.Selected() != CategoryPaper {
		t.Errorf("initial selection = %v, expected first allowed category", reg.Selected())
	}
	if err := reg.Select(CategoryElectronic); !errors.Is(err, ErrCategoryNotAllowed) {
		t.Errorf("expected ErrCategoryNotAllowed, got %v", err)
	}
	if reg.Selected() != CategoryPaper {
		t.Error("rejected selection must not change the current one")
	}
	if err := reg.Select(CategoryMetal); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if got := reg.Cycle(1); got != CategoryPaper {
		t.Errorf("Cycle(1) from last = %v, expected wrap to paper", got)
	}
	if got := reg.Cycle(-1); got != CategoryMetal {
		t.Errorf("Cycle(-1) from first = %v, expected wrap to metal", got)
	}

	c, err := reg.PlaceSelected(core.V(60, 0))
	if err != nil {
		t.Fatalf("PlaceSelected failed: %v", err)
	}
	if !c.Accepts().Has(CategoryMetal) || c.Accepts().Len() != 1 {
		t.Errorf("placed classifier accepts %v, expected metal only", c.Accepts())
	}
	if reg.At(core.V(65, 3)) != c {
		t.Error("At should find the classifier covering the point")
	}
	if reg.At(core.V(100, 0)) != nil {
		t.Error("At should return nil away from classifiers")
	}
}

func TestClassifierEvaluate(t *testing.T) {
	c := newClassifier(1, NewCategorySet(CategoryGlass, CategoryMetal), 4, core.V(0, 0))

	if !c.Evaluate(CategoryGlass).Accepted {
		t.Error("glass should be accepted")
	}
	if c.Evaluate(CategoryPaper).Accepted {
		t.Error("paper should be rejected")
	}
	c.Evaluate(CategoryMetal)

	if c.AcceptedCount() != 2 || c.RejectedCount() != 1 {
		t.Errorf("counters = %d/%d, expected 2/1", c.AcceptedCount(), c.RejectedCount())
	}
}
