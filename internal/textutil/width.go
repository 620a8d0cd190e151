package textutil

import "github.com/mattn/go-runewidth"

const ellipsis = "…"

// DisplayWidth reports the number of terminal cells text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// FitLeft truncates text to width cells (ending in an ellipsis when cut)
// and pads it on the right.
func FitLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, ellipsis), width)
}

// FitRight is FitLeft for right-aligned columns such as sizes.
func FitRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillLeft(runewidth.Truncate(text, width, ellipsis), width)
}
