package core

// Action is a key press translated into game intent.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // Enter
	ActionBack    // Esc, B: leave to the menu
	ActionRestart // R after game over
	ActionQuit    // Q, Ctrl+C
	ActionPause   // P, Space
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// IsMove reports whether the action is one of the four movement actions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// Direction converts a movement action to a grid direction.
func (a Action) Direction() Direction {
	switch a {
	case ActionUp:
		return DirUp
	case ActionDown:
		return DirDown
	case ActionLeft:
		return DirLeft
	case ActionRight:
		return DirRight
	}
	return DirNone
}

// InputFrame collects the actions pressed during one platform frame.
// The zero value is an empty frame.
type InputFrame struct {
	pressed uint16
	// Last is the latest movement action of the frame. When several
	// arrows are pressed between two frames, the last one wins.
	Last Action
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records a as pressed.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.pressed |= 1 << a
	if a.IsMove() {
		f.Last = a
	}
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.pressed&(1<<a) != 0
}

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Direction returns the movement intent of the frame, or DirNone.
func (f InputFrame) Direction() Direction {
	return f.Last.Direction()
}
