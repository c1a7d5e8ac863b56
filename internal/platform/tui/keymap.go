package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sortlane/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// gameKeys maps key strings to in-game actions.
var gameKeys = map[string]core.Action{
	"w":         core.ActionUp,
	"up":        core.ActionUp,
	"s":         core.ActionDown,
	"down":      core.ActionDown,
	"a":         core.ActionLeft,
	"left":      core.ActionLeft,
	"d":         core.ActionRight,
	"right":     core.ActionRight,
	" ":         core.ActionPlace,
	"x":         core.ActionRemove,
	"delete":    core.ActionRemove,
	"backspace": core.ActionRemove,
	"tab":       core.ActionNextCategory,
	"shift+tab": core.ActionPrevCategory,
	"1":         core.ActionSlot1,
	"2":         core.ActionSlot2,
	"3":         core.ActionSlot3,
	"4":         core.ActionSlot4,
	"5":         core.ActionSlot5,
	"6":         core.ActionSlot6,
	"enter":     core.ActionConfirm,
	"b":         core.ActionBack,
	"esc":       core.ActionBack,
	"p":         core.ActionPause,
	"r":         core.ActionRestart,
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if a, ok := gameKeys[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame turns a button press into a pointer action: left places,
// right removes. Motion, release and wheel events are ignored. Returns
// whether the frame changed.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Set(core.ActionPlace)
	case tea.MouseButtonRight:
		frame.Set(core.ActionRemove)
	default:
		return false
	}
	frame.SetPointer(msg.X, msg.Y)
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
