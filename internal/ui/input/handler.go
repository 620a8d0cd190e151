package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
)

// wheelStep is the number of rows one unmodified wheel notch scrolls.
const wheelStep = 3

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
	router     Router
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into Actions. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	if resize, ok := ev.(*tcell.EventResize); ok {
		w, h := resize.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	}

	// Filter typing owns the text keys, erase included.
	if key, ok := ev.(*tcell.EventKey); ok && ih.filterActive() {
		if ih.processFilterKey(key) {
			return true
		}
	}

	consumed := false
	for _, routed := range FromTcell(ev) {
		cmds, ok := ih.router.Route(routed)
		for _, cmd := range cmds {
			ih.dispatchCommand(cmd)
		}
		consumed = consumed || ok
	}
	if consumed {
		return true
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventMouse:
		ih.processWheel(ev)
	}
	return true
}

func (ih *InputHandler) dispatchCommand(cmd Command) {
	switch cmd.Kind {
	case CmdNavigateUp:
		ih.actionChan <- statepkg.GoUpAction{}
	case CmdStepBack:
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
	case CmdStepForward:
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
	case CmdToggleCurrentSelection:
		ih.actionChan <- statepkg.ToggleSelectionAction{}
	case CmdMoveCursorNext:
		ih.actionChan <- statepkg.MoveCursorAction{Delta: 1}
	case CmdFocusGained:
		ih.actionChan <- statepkg.RefreshAction{}
	case CmdContextMenuRequested:
		if ih.state != nil {
			side, row, ok := ih.state.ListRowAt(cmd.X, cmd.Y)
			if ok {
				ih.actionChan <- statepkg.MouseSelectAction{Side: side, Row: row}
			} else {
				ih.actionChan <- statepkg.FocusPaneAction{Side: side}
			}
		}
		ih.actionChan <- statepkg.ContextMenuAction{X: cmd.X, Y: cmd.Y}
	}
}

func (ih *InputHandler) filterActive() bool {
	return ih.state != nil && ih.state.ActivePane().FilterActive
}

// processFilterKey edits the filter query. It reports false for keys the
// filter leaves to normal handling (navigation, Enter).
func (ih *InputHandler) processFilterKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.FilterClearAction{}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.FilterBackspaceAction{}
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return false
		}
		ih.actionChan <- statepkg.FilterCharAction{Char: ev.Rune()}
		return true
	}
	return false
}

// processKeyEvent handles keyboard input the router left unconsumed
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearSelectionAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.MoveCursorAction{Delta: -1}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.MoveCursorAction{Delta: 1}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.CursorHomeAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.CursorEndAction{}
		return true

	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
		} else {
			ih.actionChan <- statepkg.GoUpAction{}
		}
		return true

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
		} else {
			ih.actionChan <- statepkg.ActivateAction{}
		}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.ActivateAction{}
		return true

	case tcell.KeyTab, tcell.KeyBacktab:
		ih.actionChan <- statepkg.SwitchPaneAction{}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case ' ':
		ih.actionChan <- statepkg.ToggleSelectionAction{}
	case 'j':
		ih.actionChan <- statepkg.MoveCursorAction{Delta: 1}
	case 'k':
		ih.actionChan <- statepkg.MoveCursorAction{Delta: -1}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case 'l':
		ih.actionChan <- statepkg.ActivateAction{}
	case 'r':
		ih.actionChan <- statepkg.RefreshAction{}
	case 's':
		ih.actionChan <- statepkg.CycleSortAction{}
	case 'S':
		ih.actionChan <- statepkg.ReverseSortAction{}
	case '.':
		ih.actionChan <- statepkg.ToggleHiddenFilesAction{}
	case '/':
		ih.actionChan <- statepkg.FilterStartAction{}
	case '~':
		ih.actionChan <- statepkg.GoHomeAction{}
	case 'y':
		ih.actionChan <- statepkg.YankPathsAction{}
	case '[':
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
	case ']':
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
	default:
		if r >= '1' && r <= '9' {
			ih.actionChan <- statepkg.SelectDriveAction{Index: int(r - '1')}
		}
	}
	return true
}

// processWheel scrolls the pane under the pointer.
func (ih *InputHandler) processWheel(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	delta := 0
	switch {
	case buttons&tcell.WheelUp != 0:
		delta = -wheelStep
	case buttons&tcell.WheelDown != 0:
		delta = wheelStep
	default:
		return
	}
	if ih.state != nil {
		x, _ := ev.Position()
		ih.actionChan <- statepkg.FocusPaneAction{Side: ih.state.SideAt(x)}
	}
	ih.actionChan <- statepkg.MoveCursorAction{Delta: delta}
}
