package sortlane

import (
	"math"

	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// Screen rows reserved around the lane area.
const (
	hudRows    = 2 // level/score line and feedback line
	footerRows = 2 // category palette and key hints
)

// viewport maps world coordinates to screen cells. The lane area is
// stretched to fill the space between the HUD and the footer, so the
// horizontal and vertical scales differ.
type viewport struct {
	offX, offY int
	w, h       int
	sx, sy     float64
}

func newViewport(screenW, screenH int, s *sim.Simulation) viewport {
	v := viewport{
		offX: 1,
		offY: hudRows,
		w:    max(screenW-2, 1),
		h:    max(screenH-hudRows-footerRows, 1),
	}
	ww, wh := s.Bounds()
	if ww <= 0 || wh <= 0 {
		ww, wh = 1, 1
	}
	v.sx = float64(v.w) / ww
	v.sy = float64(v.h) / wh
	return v
}

// toCell returns the cell containing world point p.
func (v viewport) toCell(p core.Vec2) (x, y int) {
	x = v.offX + int(math.Floor(p.X*v.sx))
	y = v.offY + int(math.Floor(p.Y*v.sy))
	return core.Clamp(x, v.offX, v.offX+v.w-1), core.Clamp(y, v.offY, v.offY+v.h-1)
}

// toWorld returns the world point at the center of cell (x, y).
func (v viewport) toWorld(x, y int) core.Vec2 {
	return core.V(
		(float64(x-v.offX)+0.5)/v.sx,
		(float64(y-v.offY)+0.5)/v.sy,
	)
}

// contains reports whether cell (x, y) is inside the lane area.
func (v viewport) contains(x, y int) bool {
	return x >= v.offX && x < v.offX+v.w && y >= v.offY && y < v.offY+v.h
}

// clamp keeps a cell inside the lane area.
func (v viewport) clamp(x, y int) (int, int) {
	return core.Clamp(x, v.offX, v.offX+v.w-1), core.Clamp(y, v.offY, v.offY+v.h-1)
}
