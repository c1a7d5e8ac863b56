package sortlane

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// Visual characters for rendering
const (
	BeltChar       = '·'
	BeltCenterChar = '─'
	LaneEndChar    = '▶'
	ClassifierFill = '░'
	CursorChar     = '+'
	BorderHoriz    = '─'
)

// categoryColor returns the display color of a category.
func categoryColor(c sim.Category) core.Color {
	switch c {
	case sim.CategoryPaper:
		return core.ColorBrightWhite
	case sim.CategoryPlastic:
		return core.ColorBrightYellow
	case sim.CategoryGlass:
		return core.ColorBrightCyan
	case sim.CategoryMetal:
		return core.ColorBrightBlue
	case sim.CategoryOrganic:
		return core.ColorBrightGreen
	case sim.CategoryElectronic:
		return core.ColorBrightMagenta
	default:
		return core.ColorDefault
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	if g.sim != nil {
		g.renderLanes(dst)
		g.renderClassifiers(dst)
		g.renderItems(dst)
		g.renderCursor(dst)
		g.renderPalette(dst)
	}
	g.renderOverlay(dst)
}

// renderHUD draws level, score, progress and time on row 0 and the
// feedback line on row 1.
func (g *Game) renderHUD(dst *core.Screen) {
	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Endless %d", g.levelIndex+1)
	} else {
		levelText = fmt.Sprintf("%s (%d/%d)", g.level.Name, g.levelIndex+1, len(g.campaign))
	}
	dst.DrawText(1, 0, levelText)

	scoreText := fmt.Sprintf("Score: %d", g.State().Score)
	dst.DrawTextCentered(0, scoreText)

	if g.sim != nil {
		st := g.sim.Stats()
		right := fmt.Sprintf("Sorted %d/%d  Time %.0fs", st.Correct, st.Target, st.Remaining().Seconds())
		dst.DrawText(dst.Width()-len(right)-1, 0, right)
	}

	if g.messageLeft > 0 && g.message != "" {
		dst.DrawTextColored(1, 1, g.message, g.messageColor)
	} else {
		dst.DrawHLine(0, 1, dst.Width(), BorderHoriz, core.ColorGray)
	}
}

// renderLanes fills every cell whose center lies on a lane.
func (g *Game) renderLanes(dst *core.Screen) {
	v := g.view
	for y := v.offY; y < v.offY+v.h; y++ {
		for x := v.offX; x < v.offX+v.w; x++ {
			lane := g.sim.LaneAt(v.toWorld(x, y))
			if lane == nil {
				continue
			}
			_, cy := v.toCell(lane.Start())
			r := BeltChar
			if y == cy {
				r = BeltCenterChar
			}
			dst.SetColored(x, y, r, core.ColorGray)
		}
	}

	for _, lane := range g.sim.Lanes() {
		ex, ey := v.toCell(lane.End())
		dst.SetColored(ex, ey, LaneEndChar, core.ColorRed)
		// Lane numbers sit in the left margin column.
		if lane.ID() < 9 {
			_, sy := v.toCell(lane.Start())
			dst.SetColored(0, sy, rune('1'+lane.ID()), core.ColorGray)
		}
	}
}

// renderClassifiers shades each classifier's footprint and marks its
// center with the lowercase category letter.
func (g *Game) renderClassifiers(dst *core.Screen) {
	v := g.view
	for _, c := range g.sim.Classifiers() {
		color := categoryColor(c.Primary())
		x0, y0 := v.toCell(c.Position().Sub(core.V(c.Radius(), c.Radius())))
		x1, y1 := v.toCell(c.Position().Add(core.V(c.Radius(), c.Radius())))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if c.Contains(v.toWorld(x, y)) {
					dst.SetColored(x, y, ClassifierFill, color)
				}
			}
		}
		cx, cy := v.toCell(c.Position())
		dst.SetColored(cx, cy, unicode.ToLower(c.Primary().Char()), color)
	}
}

// renderItems draws each live item as its category letter. Items waiting
// out a rejection are drawn in red.
func (g *Game) renderItems(dst *core.Screen) {
	for _, it := range g.sim.LiveItems() {
		x, y := g.view.toCell(it.Position())
		color := categoryColor(it.Category())
		if it.State() == sim.ItemOnRetryHold {
			color = core.ColorRed
		}
		dst.SetColored(x, y, it.Category().Char(), color)
	}
}

// renderCursor draws the placement cursor unless an item occupies the cell.
func (g *Game) renderCursor(dst *core.Screen) {
	if g.state != StatePlaying {
		return
	}
	cell := dst.GetCell(g.cursorX, g.cursorY)
	if unicode.IsUpper(cell.Rune) {
		return
	}
	dst.SetColored(g.cursorX, g.cursorY, CursorChar, categoryColor(g.sim.SelectedCategory()))
}

// renderPalette lists the level's categories with their slot keys. The
// selected category is bracketed.
func (g *Game) renderPalette(dst *core.Screen) {
	y := dst.Height() - 2
	x := 1
	selected := g.sim.SelectedCategory()
	for i, c := range g.sim.AllowedCategories() {
		label := fmt.Sprintf(" %d:%s ", i+1, c)
		if c == selected {
			label = fmt.Sprintf("[%d:%s]", i+1, strings.ToUpper(c.String()))
		}
		dst.DrawTextColored(x, y, label, categoryColor(c))
		x += len(label) + 1
	}

	hints := "Space place  X remove  Tab cycle  P pause  R restart"
	dst.DrawTextColored(1, dst.Height()-1, hints, core.ColorGray)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateCleared:
		st := g.sim.Stats()
		subtitle := fmt.Sprintf("Score: %d  Accuracy: %.0f%%  |  Press ENTER", st.Score, st.Accuracy())
		g.drawCenteredBox(dst, "LEVEL CLEAR", subtitle)

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to retry", g.State().Score)
		title := "LEVEL FAILED"
		if g.sim != nil {
			st := g.sim.Stats()
			if st.Escaped > 0 {
				title = "ITEM ESCAPED"
			} else if st.Remaining() <= 0 {
				title = "OUT OF TIME"
			}
		}
		g.drawCenteredBox(dst, title, subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.State().Score)
		g.drawCenteredBox(dst, "ALL SORTED!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
