package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		// entries hold width+1 so zero means "not cached"
		if width == 0 && ru != 0 {
			actual := max(runewidth.RuneWidth(ru), 0)
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actual + 1
			r.runeWidthCacheMu.Unlock()
			return actual
		}
		return max(width-1, 0)
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// truncateTextToWidth cuts text to maxWidth cells, ending in an ellipsis.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = '…'
	if maxWidth <= 1 {
		return string(ellipsis)
	}

	available := maxWidth - 1
	var builder strings.Builder
	width := 0
	for _, ru := range text {
		rw := r.cachedRuneWidth(ru)
		if width+rw > available {
			break
		}
		builder.WriteRune(ru)
		width += rw
	}
	builder.WriteRune(ellipsis)
	return builder.String()
}

// truncatePathLeft keeps the tail of a path, which is the part that tells
// directories apart.
func (r *Renderer) truncatePathLeft(path string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if r.measureTextWidth(path) <= maxWidth {
		return path
	}
	runes := []rune(path)
	width := 1
	start := len(runes)
	for start > 0 {
		rw := r.cachedRuneWidth(runes[start-1])
		if width+rw > maxWidth {
			break
		}
		width += rw
		start--
	}
	return "…" + string(runes[start:])
}

// drawTextLine draws text from startX clipped to maxWidth cells and
// returns the next free column. Zero-width runes ride on the previous cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += max(w, 1)
	}
	return x
}

// fillRow paints [fromX, toX) on row y with blanks in style.
func (r *Renderer) fillRow(fromX, toX, y int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
