package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/storage"
)

// levelEntry is one row of the level picker.
type levelEntry struct {
	ID        string
	Name      string
	Lanes     int
	Target    int
	BestScore int
	Cleared   bool
}

// LevelSelectModel lets users pick the campaign level to start from.
type LevelSelectModel struct {
	entries   []levelEntry
	cursor    int
	width     int
	keyMapper *KeyMapper
	selected  string
	back      bool
	quitting  bool
}

// NewLevelSelectModel lists lvls, annotated with best scores from store
// when one is available.
func NewLevelSelectModel(lvls []levels.Level, store *storage.Store, width int) LevelSelectModel {
	var summaries map[string]*storage.LevelSummary
	if store != nil {
		//nolint:errcheck // Missing summaries only hide best scores
		summaries, _ = store.AllLevelSummaries()
	}

	entries := make([]levelEntry, 0, len(lvls))
	for _, lvl := range lvls {
		e := levelEntry{
			ID:     lvl.ID,
			Name:   lvl.Name,
			Lanes:  lvl.Config.LaneCount,
			Target: lvl.Config.TargetItemCount,
		}
		if sum, ok := summaries[lvl.ID]; ok {
			e.BestScore = sum.BestScore
			e.Cleared = sum.Completions > 0
		}
		entries = append(entries, e)
	}

	return LevelSelectModel{
		entries:   entries,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.entries) > 0 {
			m.selected = m.entries[m.cursor].ID
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := " "
		if e.Cleared {
			mark = "*"
		}

		line := fmt.Sprintf("%s%s %2d. %-16s %d lanes, %2d items", cursor, mark, i+1, e.Name, e.Lanes, e.Target)
		if e.BestScore > 0 {
			line += fmt.Sprintf("  best %d", e.BestScore)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level ID, or "" while still choosing.
func (m LevelSelectModel) Selected() string {
	return m.selected
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
