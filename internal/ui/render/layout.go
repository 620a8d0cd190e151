package render

import "github.com/kk-code-lab/dpane/internal/panel"

const (
	extColumnWidth  = 5
	sizeColumnWidth = 9
	dateColumnWidth = 16 // "02.01.2006 15:04"
	minNameWidth    = 8
)

// paneRect is the horizontal extent of one pane.
type paneRect struct {
	x, width int
}

// splitPanes divides the screen into two panes with a one-column separator
// at the end of the left pane.
func splitPanes(w int) (left, right paneRect, separatorX int) {
	half := w / 2
	left = paneRect{x: 0, width: max(half-1, 0)}
	right = paneRect{x: half, width: w - half}
	return left, right, half - 1
}

// columnWidths sizes the listing columns for a pane. Columns are dropped
// right to left (date, size, ext) until the name column has room; a zero
// width means the column is hidden. Columns are separated by one space.
func columnWidths(paneWidth int) [panel.NumColumns]int {
	var widths [panel.NumColumns]int
	optional := []struct {
		col   panel.Column
		width int
	}{
		{panel.ColumnExt, extColumnWidth},
		{panel.ColumnSize, sizeColumnWidth},
		{panel.ColumnDate, dateColumnWidth},
	}

	remaining := paneWidth
	for _, c := range optional {
		if remaining-(c.width+1) < minNameWidth {
			break
		}
		widths[c.col] = c.width
		remaining -= c.width + 1
	}
	widths[panel.ColumnName] = max(remaining, 0)
	return widths
}
