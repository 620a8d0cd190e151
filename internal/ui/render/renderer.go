package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dpane/internal/panel"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
	textutil "github.com/kk-code-lab/dpane/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	left, right, sepX := splitPanes(w)
	r.drawPane(state, statepkg.SideLeft, left, h)
	r.drawPane(state, statepkg.SideRight, right, h)

	sepStyle := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
	if sepX >= 0 {
		for y := 0; y < h-1; y++ {
			r.screen.SetContent(sepX, y, '│', nil, sepStyle)
		}
	}

	r.drawFilterLine(state, left, right, h)
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

func (r *Renderer) drawPane(state *statepkg.AppState, side statepkg.Side, rect paneRect, h int) {
	if rect.width <= 0 || h < statepkg.ListTop+2 {
		return
	}
	pane := state.Pane(side)
	active := state.Active == side

	r.drawPathHeader(pane, active, rect)
	r.drawDriveBar(pane, rect)
	widths := columnWidths(rect.width)
	r.drawColumnTitles(pane, rect, widths)
	r.drawRows(state, pane, active, rect, widths)
}

// drawPathHeader renders the directory path on row 0.
func (r *Renderer) drawPathHeader(pane *statepkg.PaneState, active bool, rect paneRect) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	if active {
		style = tcell.StyleDefault.Background(r.theme.HeaderActiveBg).Foreground(r.theme.HeaderActiveFg).Bold(true)
	}

	text := textutil.SanitizeTerminalText(pane.Path)
	if pane.Loading() {
		text += " …"
	}
	text = " " + r.truncatePathLeft(text, rect.width-2)
	endX := r.drawTextLine(rect.x, 0, rect.width, text, style)
	r.fillRow(endX, rect.x+rect.width, 0, style)
}

// drawDriveBar renders the numbered drives on row 1.
func (r *Renderer) drawDriveBar(pane *statepkg.PaneState, rect paneRect) {
	base := tcell.StyleDefault.Foreground(r.theme.TitleFg)
	activeStyle := tcell.StyleDefault.Background(r.theme.DriveActiveBg).Foreground(r.theme.DriveActiveFg)

	x := rect.x
	maxX := rect.x + rect.width
	for i, d := range pane.Drives.Drives() {
		if x >= maxX {
			break
		}
		label := d.Name
		if i < 9 {
			label = fmt.Sprintf("%d:%s", i+1, d.Name)
		}
		style := base.Foreground(r.theme.IconColor(d.Icon))
		if i == pane.Drives.Active() {
			style = activeStyle
		}
		x = r.drawTextLine(x, 1, maxX-x, " "+textutil.SanitizeTerminalText(label)+" ", style)
	}
	r.fillRow(x, maxX, 1, base)
}

// drawColumnTitles renders the column headers on row 2 with a sort marker.
func (r *Renderer) drawColumnTitles(pane *statepkg.PaneState, rect paneRect, widths [panel.NumColumns]int) {
	style := tcell.StyleDefault.Foreground(r.theme.TitleFg).Bold(true)
	order := pane.Panel.Order()

	var titles [panel.NumColumns]string
	for col := panel.Column(0); col < panel.NumColumns; col++ {
		title := panel.ColumnTitles[col]
		if col == order.Column {
			if order.Descending {
				title += "▼"
			} else {
				title += "▲"
			}
		}
		titles[col] = title
	}
	line := formatColumns(titles, widths)
	endX := r.drawTextLine(rect.x, 2, rect.width, line, style)
	r.fillRow(endX, rect.x+rect.width, 2, style)
}

func (r *Renderer) drawRows(state *statepkg.AppState, pane *statepkg.PaneState, active bool, rect paneRect, widths [panel.NumColumns]int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	height := state.ListHeight()
	cursorRow := pane.Panel.CursorRow()

	y := statepkg.ListTop
	for line := 0; line < height; line++ {
		pos := pane.ScrollOffset + line
		if pos >= pane.Panel.Count() {
			r.fillRow(rect.x, rect.x+rect.width, y, baseStyle)
			y++
			continue
		}

		row := pane.Panel.RowAt(pos)
		style := r.rowStyle(row, pane.Panel.IsSelected(pos), pos == cursorRow, active)

		var cells [panel.NumColumns]string
		for col := panel.Column(0); col < panel.NumColumns; col++ {
			text, _ := pane.Panel.ColumnValue(pos, col)
			cells[col] = textutil.SanitizeTerminalText(text)
		}
		endX := r.drawTextLine(rect.x, y, rect.width, formatColumns(cells, widths), style)
		r.fillRow(endX, rect.x+rect.width, y, style)
		y++
	}
}

func (r *Renderer) rowStyle(row panel.Row, marked, cursor, active bool) tcell.Style {
	style := tcell.StyleDefault.Background(r.theme.Background)
	item := row.Item
	style = style.Foreground(r.theme.IconColor(item.Icon))
	if item.IsHidden() {
		style = style.Foreground(r.theme.HiddenFg)
	}
	if marked {
		style = style.Foreground(r.theme.MarkedFg).Bold(true)
	}
	if cursor {
		if active {
			style = style.Background(r.theme.CursorBg)
			if !marked {
				style = style.Foreground(r.theme.CursorFg)
			}
		} else {
			style = style.Background(r.theme.CursorInactiveBg)
		}
	}
	return style
}

// formatColumns lays out one listing line; hidden columns are skipped.
func formatColumns(cells [panel.NumColumns]string, widths [panel.NumColumns]int) string {
	var b strings.Builder
	for col := panel.Column(0); col < panel.NumColumns; col++ {
		width := widths[col]
		if width == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if col == panel.ColumnSize {
			b.WriteString(textutil.FitRight(cells[col], width))
		} else {
			b.WriteString(textutil.FitLeft(cells[col], width))
		}
	}
	return b.String()
}

// drawFilterLine shows each pane's filter prompt on the row above the
// status line.
func (r *Renderer) drawFilterLine(state *statepkg.AppState, left, right paneRect, h int) {
	y := h - 2
	if y < statepkg.ListTop {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.Foreground)
	cursorStyle := tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)

	for _, side := range []statepkg.Side{statepkg.SideLeft, statepkg.SideRight} {
		pane := state.Pane(side)
		rect := left
		if side == statepkg.SideRight {
			rect = right
		}
		if !pane.FilterActive || rect.width <= 0 {
			continue
		}
		text := "/" + textutil.SanitizeTerminalText(pane.FilterQuery)
		endX := r.drawTextLine(rect.x, y, rect.width-1, text, style)
		if state.Active == side && endX < rect.x+rect.width {
			r.screen.SetContent(endX, y, ' ', nil, cursorStyle)
			endX++
		}
		r.fillRow(endX, rect.x+rect.width, y, style)
	}
}

// drawStatusLine renders the bottom line: error, message or pane summary on
// the left, drive description on the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h <= 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	text := statusText(state)
	if state.LastError != nil {
		style = style.Foreground(r.theme.ErrorFg)
	}
	text = textutil.SanitizeTerminalText(text)

	right := ""
	pane := state.ActivePane()
	if d, ok := pane.Drives.At(pane.Drives.Active()); ok && d.Description != "" {
		right = textutil.SanitizeTerminalText(d.Description)
	}

	rightWidth := r.measureTextWidth(right)
	if rightWidth > 0 && rightWidth+r.measureTextWidth(text)+2 > w {
		right = ""
		rightWidth = 0
	}

	endX := r.drawTextLine(0, y, w, r.truncateTextToWidth(text, w), style)
	r.fillRow(endX, w, y, style)
	if right != "" {
		r.drawTextLine(w-rightWidth, y, rightWidth, right, style)
	}
}

func statusText(state *statepkg.AppState) string {
	if state.LastError != nil {
		return "error: " + state.LastError.Error()
	}
	if state.StatusMessage != "" {
		return state.StatusMessage
	}

	pane := state.ActivePane()
	var parts []string
	if item, ok := pane.Panel.CurrentItem(); ok && !item.IsParent() {
		desc := item.FileName()
		if !item.IsDir() {
			desc += ", " + humanize.IBytes(uint64(max(item.Size, 0)))
		}
		if !item.Modified.IsZero() {
			desc += ", " + humanize.Time(item.Modified)
		}
		parts = append(parts, desc)
	}
	if n := pane.Panel.SelectedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	parts = append(parts, fmt.Sprintf("%d items", max(pane.Panel.Count()-parentRows(pane), 0)))
	return strings.Join(parts, " | ")
}

func parentRows(pane *statepkg.PaneState) int {
	if pane.Panel.Count() > 0 && pane.Panel.RowAt(0).Item.IsParent() {
		return 1
	}
	return 0
}
