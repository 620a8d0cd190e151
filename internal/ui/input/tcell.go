package input

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell event into router events. Terminals report
// modifiers on the event instead of as key presses, so a shifted wheel
// event becomes modifier press, wheel, modifier release.
func FromTcell(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return []Event{{Kind: EventKeyPress, Key: KeyErase}}
		case tcell.KeyInsert:
			return []Event{{Kind: EventKeyPress, Key: KeyInsert}}
		}
		return []Event{{Kind: EventKeyPress, Key: KeyOther}}

	case *tcell.EventFocus:
		if ev.Focused {
			return []Event{{Kind: EventFocusIn}}
		}
		return []Event{{Kind: EventFocusOut}}

	case *tcell.EventMouse:
		x, y := ev.Position()
		buttons := ev.Buttons()
		if buttons&tcell.Button2 != 0 {
			return []Event{{Kind: EventContextMenu, X: x, Y: y}}
		}

		delta := 0
		switch {
		case buttons&tcell.WheelUp != 0:
			delta = 1
		case buttons&tcell.WheelDown != 0:
			delta = -1
		default:
			return nil
		}
		wheel := Event{Kind: EventWheel, Delta: delta, X: x, Y: y}
		if ev.Modifiers()&tcell.ModShift != 0 {
			return []Event{
				{Kind: EventKeyPress, Key: KeyModifier},
				wheel,
				{Kind: EventKeyRelease, Key: KeyModifier},
			}
		}
		return []Event{wheel}
	}
	return nil
}
