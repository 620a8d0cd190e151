package panel

import (
	"time"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	"github.com/rs/zerolog"
)

// RebuildResult describes the listing after a reconciliation.
type RebuildResult struct {
	Count     int
	Cursor    fsutil.IdentityHash
	CursorRow int
	Selected  HashSet
	Elapsed   time.Duration
}

// Panel rebuilds its listing from snapshots while keeping selection and
// cursor attached to item identities. A Panel is owned by one goroutine;
// callers serialise Reconcile.
type Panel struct {
	store     *RowStore
	view      *View
	sel       *Selection
	cursorRow int
	log       zerolog.Logger
}

// New creates an empty panel.
func New(log zerolog.Logger) *Panel {
	p := &Panel{
		store:     NewRowStore(),
		view:      NewView(),
		sel:       NewSelection(),
		cursorRow: -1,
		log:       log,
	}
	p.view.Attach(p.store)
	return p
}

// View exposes the sorted projection, e.g. to register observers.
func (p *Panel) View() *View {
	return p.view
}

// Reconcile replaces the listing with items and restores the given
// selection and cursor against the new rows.
func (p *Panel) Reconcile(items []fsutil.Item, prevSelection HashSet, prevCursor, bookmark fsutil.IdentityHash) RebuildResult {
	start := time.Now()
	prevRow := max(p.cursorRow, 0)

	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = NewRow(item)
	}

	p.view.Detach()
	p.store.ReplaceAll(rows)
	p.view.Attach(p.store)
	p.sel.markReconciled()

	p.cursorRow = p.sel.RestoreCursor(prevCursor, bookmark, prevRow, p.view)
	// selection survives on store presence; rows the filter hides stay marked
	if err := p.sel.Restore(prevSelection, p.store.Position); err != nil {
		panic(err)
	}

	res := RebuildResult{
		Count:     p.view.Count(),
		Cursor:    p.sel.Cursor(),
		CursorRow: p.cursorRow,
		Selected:  p.sel.Snapshot(),
		Elapsed:   time.Since(start),
	}
	p.log.Debug().
		Int("items", len(items)).
		Int("rows", res.Count).
		Int("selected", len(res.Selected)).
		Int("cursor_row", res.CursorRow).
		Dur("elapsed", res.Elapsed).
		Msg("listing reconciled")
	return res
}

// Refresh reconciles against the panel's own current selection and cursor.
func (p *Panel) Refresh(items []fsutil.Item, bookmark fsutil.IdentityHash) RebuildResult {
	return p.Reconcile(items, p.sel.Snapshot(), p.sel.Cursor(), bookmark)
}

// Count returns the number of visible rows.
func (p *Panel) Count() int {
	return p.view.Count()
}

// RowAt returns the row at view position pos.
func (p *Panel) RowAt(pos int) Row {
	return p.view.RowAt(pos)
}

// ColumnValue returns the cell at view position pos.
func (p *Panel) ColumnValue(pos int, col Column) (string, fsutil.IdentityHash) {
	return p.view.ColumnValue(pos, col)
}

// HashAt returns the identity at view position pos.
func (p *Panel) HashAt(pos int) fsutil.IdentityHash {
	return p.view.HashAt(pos)
}

// PositionOf resolves an identity to its view position.
func (p *Panel) PositionOf(h fsutil.IdentityHash) (int, bool) {
	return p.view.PositionOf(h)
}

// Cursor returns the cursor identity.
func (p *Panel) Cursor() fsutil.IdentityHash {
	return p.sel.Cursor()
}

// CursorRow returns the cursor view position, -1 when the listing is empty.
func (p *Panel) CursorRow() int {
	return p.cursorRow
}

// CurrentItem returns the item under the cursor.
func (p *Panel) CurrentItem() (fsutil.Item, bool) {
	if p.cursorRow < 0 || p.cursorRow >= p.view.Count() {
		return fsutil.Item{}, false
	}
	return p.view.RowAt(p.cursorRow).Item, true
}

// IsSelected reports whether the row at pos is selected.
func (p *Panel) IsSelected(pos int) bool {
	return p.sel.Selected(p.view.HashAt(pos))
}

// Selection returns a copy of the selected identities.
func (p *Panel) Selection() HashSet {
	return p.sel.Snapshot()
}

// SelectedCount returns the number of selected identities.
func (p *Panel) SelectedCount() int {
	return p.sel.Len()
}

// ClearSelection drops selection and cursor, e.g. when changing directory.
func (p *Panel) ClearSelection() {
	p.sel.Clear()
	p.cursorRow = -1
}

// SetCursorRow moves the cursor to pos, clamped to the listing.
func (p *Panel) SetCursorRow(pos int) {
	n := p.view.Count()
	if n == 0 {
		p.cursorRow = -1
		p.sel.SetCursor(fsutil.NoIdentity)
		return
	}
	p.cursorRow = min(max(pos, 0), n-1)
	p.sel.SetCursor(p.view.HashAt(p.cursorRow))
}

// MoveCursor moves the cursor by delta rows.
func (p *Panel) MoveCursor(delta int) {
	p.SetCursorRow(max(p.cursorRow, 0) + delta)
}

// MoveCursorNext advances the cursor one row; it stays on the last row.
func (p *Panel) MoveCursorNext() {
	if p.cursorRow+1 < p.view.Count() {
		p.SetCursorRow(p.cursorRow + 1)
	}
}

// ToggleCurrentSelection flips the selection of the cursor row.
func (p *Panel) ToggleCurrentSelection() {
	if h := p.sel.Cursor(); h.Valid() {
		p.sel.Toggle(h)
	}
}

// SelectedTargets returns the items an operation should act on, in view
// order: the selection, or the cursor item when nothing is selected. The
// parent row is dropped from (and deselected in) a multi-item selection.
func (p *Panel) SelectedTargets() []fsutil.Item {
	if p.sel.Len() == 0 {
		if item, ok := p.CurrentItem(); ok {
			return []fsutil.Item{item}
		}
		return nil
	}

	targets := make([]fsutil.Item, 0, p.sel.Len())
	multi := p.sel.Len() > 1
	for pos := 0; pos < p.view.Count(); pos++ {
		row := p.view.RowAt(pos)
		if !p.sel.Selected(row.Hash()) {
			continue
		}
		if multi && row.Item.IsParent() {
			p.sel.Deselect(row.Hash())
			continue
		}
		targets = append(targets, row.Item)
	}
	return targets
}

// Order returns the active sort order.
func (p *Panel) Order() SortOrder {
	return p.view.Order()
}

// SetOrder resorts the listing keeping the cursor on the same item.
func (p *Panel) SetOrder(order SortOrder) {
	p.view.SetOrder(order)
	p.followCursor()
}

// SetFilter applies f keeping the cursor on the same item when it stays
// visible, else on the nearest row.
func (p *Panel) SetFilter(f Filter) {
	p.view.SetFilter(f)
	p.followCursor()
}

func (p *Panel) followCursor() {
	if pos, ok := p.view.PositionOf(p.sel.Cursor()); ok {
		p.cursorRow = pos
		return
	}
	p.SetCursorRow(p.cursorRow)
}
