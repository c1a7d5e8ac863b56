package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane"
	"github.com/vovakirdan/sortlane/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func update[M tea.Model](t *testing.T, m M, msg tea.Msg) M {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(M)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func newSortLaneModel(t *testing.T, start string) (Model, *sortlane.Game) {
	t.Helper()
	game, err := NewGame("sortlane", start)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	m := NewModel(game, nil, nil, testConfig())
	m.Init()
	return m, game.(*sortlane.Game)
}

func TestNewGameStartsAtLevel(t *testing.T) {
	_, g := newSortLaneModel(t, "03-glass-house")
	if g.Level().ID != "03-glass-house" {
		t.Errorf("start level = %s", g.Level().ID)
	}

	if _, err := NewGame("no-such-game", ""); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestModelMouseClickPlaces(t *testing.T) {
	m, g := newSortLaneModel(t, "")

	m = update(t, m, tea.MouseMsg{X: 60, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})
	if n := len(g.Simulation().Classifiers()); n != 1 {
		t.Fatalf("expected a classifier after left click, got %d", n)
	}

	m = update(t, m, tea.MouseMsg{X: 60, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	update(t, m, TickMsg{})
	if n := len(g.Simulation().Classifiers()); n != 0 {
		t.Errorf("expected right click to remove, got %d", n)
	}
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m, _ := newSortLaneModel(t, "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("expected paused state")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newSortLaneModel(t, "")
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestModelResizeKeepsLevel(t *testing.T) {
	m, g := newSortLaneModel(t, "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	sim := g.Simulation()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	if g.Simulation() != sim || len(sim.Classifiers()) != 1 {
		t.Error("resize should keep the running level")
	}
	if !strings.Contains(m.View(), string(sortlane.LaneEndChar)) {
		t.Error("view should still draw the lanes")
	}
}

func TestAttachSinks(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game, _ := NewGame("sortlane", "")
	if rec := attachSinks(game, nil, nil, 1); rec != nil {
		t.Error("no store should mean no recorder")
	}

	m := NewModel(game, store, nil, testConfig())
	if m.Recorder() == nil || m.Recorder().RunID() == "" {
		t.Fatal("model with a store should record results")
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, nil, testConfig(), "tester")

	// Enter on the first entry starts the campaign.
	s = update(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatalf("expected game screen, got %d", s.screen)
	}

	s = update(t, s, runeKey('p'))
	s = update(t, s, TickMsg{})
	s = update(t, s, tea.KeyMsg{Type: tea.KeyEscape})
	if s.screen != screenMenu || s.quitting {
		t.Fatalf("expected back at the menu, got screen %d quitting %v", s.screen, s.quitting)
	}

	s = update(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("expected scoreboard, got %d", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}
	s = update(t, s, tea.KeyMsg{Type: tea.KeyEscape})
	if s.screen != screenMenu || s.quitting {
		t.Fatal("esc on the scoreboard should return to the menu")
	}

	s = update(t, s, runeKey('q'))
	if !s.quitting {
		t.Error("q should end the session")
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	// The level picker is the last entry.
	for rep, repN := 0, len(m.items); rep < repN; rep++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.levels == nil {
		t.Fatal("expected level picker")
	}
	if !strings.Contains(m.View(), "SELECT LEVEL") {
		t.Error("level picker view missing title")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != "sortlane" {
		t.Fatalf("expected campaign selection, got %+v", m.Selected())
	}
	if m.StartLevel() != "02-two-streams" {
		t.Errorf("start level = %q, expected 02-two-streams", m.StartLevel())
	}
}

func TestMenuLevelSelectBack(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m.cursor = len(m.items) - 1
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.levels != nil || m.Selected() != nil || m.IsQuitting() {
		t.Error("esc in the level picker should return to the main menu")
	}
}
