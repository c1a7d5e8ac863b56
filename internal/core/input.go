package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move cursor up
	ActionDown            // S, Down arrow - move cursor down
	ActionLeft            // A, Left arrow - move cursor left
	ActionRight           // D, Right arrow - move cursor right
	ActionPlace           // Space, left click - place classifier at cursor
	ActionRemove          // X, Delete, right click - remove classifier at cursor
	ActionNextCategory    // Tab
	ActionPrevCategory    // Shift+Tab
	ActionSlot1           // 1..6 - select category by slot
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionSlot5
	ActionSlot6
	ActionConfirm // Enter - confirm selection in menu, next level
	ActionBack    // B, Escape - go back to menu
	ActionRestart // R key - restart level
	ActionQuit    // Q, Ctrl+C - exit game/session
	ActionPause   // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:         "None",
	ActionUp:           "Up",
	ActionDown:         "Down",
	ActionLeft:         "Left",
	ActionRight:        "Right",
	ActionPlace:        "Place",
	ActionRemove:       "Remove",
	ActionNextCategory: "NextCategory",
	ActionPrevCategory: "PrevCategory",
	ActionSlot1:        "Slot1",
	ActionSlot2:        "Slot2",
	ActionSlot3:        "Slot3",
	ActionSlot4:        "Slot4",
	ActionSlot5:        "Slot5",
	ActionSlot6:        "Slot6",
	ActionConfirm:      "Confirm",
	ActionBack:         "Back",
	ActionRestart:      "Restart",
	ActionQuit:         "Quit",
	ActionPause:        "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// SlotActions lists the category slot actions in slot order.
var SlotActions = []Action{ActionSlot1, ActionSlot2, ActionSlot3, ActionSlot4, ActionSlot5, ActionSlot6}

// Pointer is a mouse position in screen cells.
type Pointer struct {
	X, Y int
}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer is set when the frame came from a mouse event. Place and
	// Remove then target the pointer cell instead of the keyboard cursor.
	Pointer *Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetPointer attaches a mouse position to the frame.
func (f *InputFrame) SetPointer(x, y int) {
	f.Pointer = &Pointer{X: x, Y: y}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}

// Merge copies every action and the pointer of other into f.
func (f *InputFrame) Merge(other InputFrame) {
	for k, v := range other.Actions {
		if v {
			f.Set(k)
		}
	}
	if other.Pointer != nil {
		p := *other.Pointer
		f.Pointer = &p
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Merge(f)
	return clone
}
