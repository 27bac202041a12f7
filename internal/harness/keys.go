package harness

// Action is a user intent produced by a key or button.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionFaster
	ActionSlower
	ActionPausePlay
)

func (a Action) String() string {
	switch a {
	case ActionPrev:
		return "prev"
	case ActionNext:
		return "next"
	case ActionFaster:
		return "faster"
	case ActionSlower:
		return "slower"
	case ActionPausePlay:
		return "pauseplay"
	default:
		return "none"
	}
}

var keyNames = map[string]Action{
	"left":      ActionPrev,
	"backspace": ActionPrev,
	"right":     ActionNext,
	" ":         ActionNext,
	"space":     ActionNext,
	"up":        ActionFaster,
	"f":         ActionFaster,
	"+":         ActionFaster,
	"down":      ActionSlower,
	"s":         ActionSlower,
	"-":         ActionSlower,
	"enter":     ActionPausePlay,
	"p":         ActionPausePlay,
}

// Browser keyCode values.
var keyCodes = map[int]Action{
	8:   ActionPrev,
	37:  ActionPrev,
	32:  ActionNext,
	39:  ActionNext,
	38:  ActionFaster,
	70:  ActionFaster,
	187: ActionFaster,
	40:  ActionSlower,
	83:  ActionSlower,
	189: ActionSlower,
	13:  ActionPausePlay,
	80:  ActionPausePlay,
}

// ActionForKey maps a key name as reported by bubbletea ("left", " ", "p").
func ActionForKey(name string) (Action, bool) {
	a, ok := keyNames[name]
	return a, ok
}

// ActionForKeyCode maps a DOM KeyboardEvent.keyCode.
func ActionForKeyCode(code int) (Action, bool) {
	a, ok := keyCodes[code]
	return a, ok
}
