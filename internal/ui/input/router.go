package input

// EventKind classifies a host input event.
type EventKind int

const (
	EventKeyPress EventKind = iota
	EventKeyRelease
	EventFocusIn
	EventFocusOut
	EventWheel
	EventContextMenu
)

// Key names the keys the router cares about. Everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyModifier
	KeyErase
	KeyInsert
)

// Event is a host input event reduced to what routing needs.
type Event struct {
	Kind  EventKind
	Key   Key
	Delta int // wheel: positive away from the user
	X, Y  int // context menu position
}

// CommandKind enumerates the semantic panel commands.
type CommandKind int

const (
	CmdNavigateUp CommandKind = iota
	CmdStepBack
	CmdStepForward
	CmdToggleCurrentSelection
	CmdMoveCursorNext
	CmdFocusGained
	CmdContextMenuRequested
)

func (k CommandKind) String() string {
	switch k {
	case CmdNavigateUp:
		return "NavigateUp"
	case CmdStepBack:
		return "StepBack"
	case CmdStepForward:
		return "StepForward"
	case CmdToggleCurrentSelection:
		return "ToggleCurrentSelection"
	case CmdMoveCursorNext:
		return "MoveCursorNext"
	case CmdFocusGained:
		return "FocusGained"
	case CmdContextMenuRequested:
		return "ContextMenuRequested"
	default:
		return "unknown"
	}
}

// Command is one routed panel command. X and Y are set for
// CmdContextMenuRequested only.
type Command struct {
	Kind CommandKind
	X, Y int
}

// Router turns input events into panel commands. Its only state is whether
// the modifier key is held; it queues nothing.
type Router struct {
	modifierHeld bool
}

// ModifierHeld reports the current modifier state.
func (r *Router) ModifierHeld() bool {
	return r.modifierHeld
}

// Route handles one event. consumed is false when the event should
// propagate to default handling.
func (r *Router) Route(ev Event) (cmds []Command, consumed bool) {
	switch ev.Kind {
	case EventKeyPress:
		switch ev.Key {
		case KeyModifier:
			r.modifierHeld = true
			return nil, true
		case KeyErase:
			return []Command{{Kind: CmdNavigateUp}}, true
		case KeyInsert:
			return []Command{{Kind: CmdToggleCurrentSelection}, {Kind: CmdMoveCursorNext}}, true
		}
		return nil, false

	case EventKeyRelease:
		if ev.Key == KeyModifier {
			r.modifierHeld = false
			return nil, true
		}
		return nil, false

	case EventFocusOut:
		r.modifierHeld = false
		return nil, false

	case EventFocusIn:
		return []Command{{Kind: CmdFocusGained}}, false

	case EventWheel:
		if !r.modifierHeld {
			return nil, false
		}
		if ev.Delta > 0 {
			return []Command{{Kind: CmdStepBack}}, true
		}
		return []Command{{Kind: CmdStepForward}}, true

	case EventContextMenu:
		return []Command{{Kind: CmdContextMenuRequested, X: ev.X, Y: ev.Y}}, true
	}
	return nil, false
}
