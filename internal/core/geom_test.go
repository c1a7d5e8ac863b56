package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestPointSegmentDistance(t *testing.T) {
	a := V(0, 0)
	b := V(100, 0)

	tests := []struct {
		name     string
		p        Vec2
		expected float64
	}{
		{"on segment", V(50, 0), 0},
		{"above middle", V(50, 15), 15},
		{"below middle", V(50, -7), 7},
		{"beyond end on line", V(150, 0), 50},
		{"before start on line", V(-30, 0), 30},
		{"beyond end diagonal", V(103, 4), 5},
		{"at start", V(0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PointSegmentDistance(tc.p, a, b)
			if math.Abs(got-tc.expected) > eps {
				t.Errorf("PointSegmentDistance(%v) = %f, expected %f", tc.p, got, tc.expected)
			}
		})
	}
}

func TestPointSegmentDistanceDegenerate(t *testing.T) {
	got := PointSegmentDistance(V(3, 4), V(0, 0), V(0, 0))
	if math.Abs(got-5) > eps {
		t.Errorf("degenerate segment distance = %f, expected 5", got)
	}
}

func TestProjectOntoSegment(t *testing.T) {
	a := V(10, 10)
	b := V(10, 110)

	tests := []struct {
		name  string
		p     Vec2
		point Vec2
		t     float64
	}{
		{"middle", V(40, 60), V(10, 60), 0.5},
		{"clamped start", V(10, -50), V(10, 10), 0},
		{"clamped end", V(0, 500), V(10, 110), 1},
		{"quarter", V(-5, 35), V(10, 35), 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			point, param := ProjectOntoSegment(tc.p, a, b)
			if point.Dist(tc.point) > eps {
				t.Errorf("projection = %v, expected %v", point, tc.point)
			}
			if math.Abs(param-tc.t) > eps {
				t.Errorf("t = %f, expected %f", param, tc.t)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		c1       Vec2
		r1       float64
		c2       Vec2
		r2       float64
		expected bool
	}{
		{"separate", V(0, 0), 5, V(20, 0), 5, false},
		{"touching", V(0, 0), 5, V(10, 0), 5, true},
		{"overlapping", V(0, 0), 5, V(7, 0), 5, true},
		{"concentric", V(3, 3), 1, V(3, 3), 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(tc.c1, tc.r1, tc.c2, tc.r2); got != tc.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := CirclesOverlap(tc.c2, tc.r2, tc.c1, tc.r1); got != tc.expected {
				t.Errorf("CirclesOverlap() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleRectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		c        Vec2
		r        float64
		expected bool
	}{
		{"center inside", V(5, 5), 1, true},
		{"touching left edge", V(-2, 5), 2, true},
		{"outside left", V(-3, 5), 2, false},
		{"near corner outside", V(13, 13), 4, false},
		{"near corner inside", V(12, 12), 3, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleRectOverlap(tc.c, tc.r, 0, 0, 10, 10); got != tc.expected {
				t.Errorf("CircleRectOverlap(%v, %f) = %v, expected %v", tc.c, tc.r, got, tc.expected)
			}
		})
	}
}

func TestVecNormalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("normalized length = %f, expected 1", n.Len())
	}
	zero := V(0, 0).Normalize()
	if zero != V(0, 0) {
		t.Errorf("zero vector normalized to %v", zero)
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if got := ClampF(15.5, 0, 10); got != 10 {
		t.Errorf("ClampF(15.5, 0, 10) = %f, expected 10", got)
	}
}
