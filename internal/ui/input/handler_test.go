package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
	"github.com/rs/zerolog"
)

func newTestHandler() (*InputHandler, chan statepkg.Action, *statepkg.AppState) {
	actionChan := make(chan statepkg.Action, 8)
	handler := NewInputHandler(actionChan)
	state := statepkg.NewAppState(zerolog.Nop(), "", "")
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	handler.SetState(state)
	return handler, actionChan, state
}

func drain(ch chan statepkg.Action) []statepkg.Action {
	var out []statepkg.Action
	for {
		select {
		case a := <-ch:
			out = append(out, a)
		default:
			return out
		}
	}
}

func TestInputHandlerKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []statepkg.Action
	}{
		{"backspace goes up", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), []statepkg.Action{statepkg.GoUpAction{}}},
		{"insert toggles and advances", tcell.NewEventKey(tcell.KeyInsert, 0, 0), []statepkg.Action{
			statepkg.ToggleSelectionAction{},
			statepkg.MoveCursorAction{Delta: 1},
		}},
		{"space toggles", tcell.NewEventKey(tcell.KeyRune, ' ', 0), []statepkg.Action{statepkg.ToggleSelectionAction{}}},
		{"enter activates", tcell.NewEventKey(tcell.KeyEnter, 0, 0), []statepkg.Action{statepkg.ActivateAction{}}},
		{"tab switches pane", tcell.NewEventKey(tcell.KeyTab, 0, 0), []statepkg.Action{statepkg.SwitchPaneAction{}}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), []statepkg.Action{statepkg.MoveCursorAction{Delta: 1}}},
		{"alt left steps back", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt),
			[]statepkg.Action{statepkg.GoToHistoryAction{Direction: "back"}}},
		{"digit selects drive", tcell.NewEventKey(tcell.KeyRune, '3', 0), []statepkg.Action{statepkg.SelectDriveAction{Index: 2}}},
		{"zero is unbound", tcell.NewEventKey(tcell.KeyRune, '0', 0), nil},
		{"s cycles sort", tcell.NewEventKey(tcell.KeyRune, 's', 0), []statepkg.Action{statepkg.CycleSortAction{}}},
		{"S reverses sort", tcell.NewEventKey(tcell.KeyRune, 'S', 0), []statepkg.Action{statepkg.ReverseSortAction{}}},
		{"slash starts filter", tcell.NewEventKey(tcell.KeyRune, '/', 0), []statepkg.Action{statepkg.FilterStartAction{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, ch, _ := newTestHandler()
			if !handler.ProcessEvent(tt.ev) {
				t.Fatal("ProcessEvent requested quit")
			}
			if got := drain(ch); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("actions = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		handler, ch, _ := newTestHandler()
		if handler.ProcessEvent(ev) {
			t.Fatalf("%v did not quit", ev.Name())
		}
		if got := drain(ch); len(got) != 1 || got[0] != (statepkg.QuitAction{}) {
			t.Fatalf("%v actions = %#v", ev.Name(), got)
		}
	}
}

func TestFilterModeCapturesTextKeys(t *testing.T) {
	handler, ch, state := newTestHandler()
	state.ActivePane().FilterActive = true

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, 0))

	want := []statepkg.Action{
		statepkg.FilterCharAction{Char: 'q'},
		statepkg.FilterBackspaceAction{},
		statepkg.FilterClearAction{},
		statepkg.MoveCursorAction{Delta: 1},
	}
	if got := drain(ch); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestShiftWheelStepsHistory(t *testing.T) {
	handler, ch, _ := newTestHandler()

	handler.ProcessEvent(tcell.NewEventMouse(10, 5, tcell.WheelUp, tcell.ModShift))
	handler.ProcessEvent(tcell.NewEventMouse(10, 5, tcell.WheelDown, tcell.ModShift))

	want := []statepkg.Action{
		statepkg.GoToHistoryAction{Direction: "back"},
		statepkg.GoToHistoryAction{Direction: "forward"},
	}
	if got := drain(ch); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestPlainWheelScrollsPaneUnderPointer(t *testing.T) {
	handler, ch, _ := newTestHandler()

	handler.ProcessEvent(tcell.NewEventMouse(60, 5, tcell.WheelDown, tcell.ModNone))

	want := []statepkg.Action{
		statepkg.FocusPaneAction{Side: statepkg.SideRight},
		statepkg.MoveCursorAction{Delta: wheelStep},
	}
	if got := drain(ch); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestFocusGainedRefreshes(t *testing.T) {
	handler, ch, _ := newTestHandler()

	handler.ProcessEvent(tcell.NewEventFocus(false))
	handler.ProcessEvent(tcell.NewEventFocus(true))

	if got := drain(ch); !reflect.DeepEqual(got, []statepkg.Action{statepkg.RefreshAction{}}) {
		t.Fatalf("actions = %#v, want RefreshAction", got)
	}
}

func TestRightClickOutsideListingOpensContextMenu(t *testing.T) {
	handler, ch, _ := newTestHandler()

	handler.ProcessEvent(tcell.NewEventMouse(70, 0, tcell.Button2, tcell.ModNone))

	want := []statepkg.Action{
		statepkg.FocusPaneAction{Side: statepkg.SideRight},
		statepkg.ContextMenuAction{X: 70, Y: 0},
	}
	if got := drain(ch); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestResizeEmitsDimensions(t *testing.T) {
	handler, ch, _ := newTestHandler()

	handler.ProcessEvent(tcell.NewEventResize(100, 40))

	if got := drain(ch); !reflect.DeepEqual(got, []statepkg.Action{statepkg.ResizeAction{Width: 100, Height: 40}}) {
		t.Fatalf("actions = %#v", got)
	}
}
