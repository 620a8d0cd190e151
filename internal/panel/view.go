package panel

import (
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// SortOrder selects the sort column and direction.
type SortOrder struct {
	Column     Column
	Descending bool
}

// Filter decides whether a row is visible. A nil Filter shows everything.
type Filter func(Row) bool

// View is a sorted, filtered projection over a RowStore. It can be detached
// from its store while the store is rebuilt; observers are only notified
// once it is attached again.
type View struct {
	store     *RowStore
	order     SortOrder
	filter    Filter
	toStore   []int
	fromStore []int
	observers []func()
}

// NewView creates a detached view sorted by name.
func NewView() *View {
	return &View{}
}

// OnReset registers fn to run whenever the visible rows are recomputed.
func (v *View) OnReset(fn func()) {
	if fn != nil {
		v.observers = append(v.observers, fn)
	}
}

// Detach unbinds the store. Until Attach, Count is 0 and positional
// queries panic with ErrDetached.
func (v *View) Detach() {
	v.store = nil
	v.toStore = nil
	v.fromStore = nil
}

// Attach binds store, recomputes the projection and notifies observers.
func (v *View) Attach(store *RowStore) {
	v.store = store
	v.rebuild()
}

// Attached reports whether a store is bound.
func (v *View) Attached() bool {
	return v.store != nil
}

// Order returns the active sort order.
func (v *View) Order() SortOrder {
	return v.order
}

// SetOrder changes the sort order.
func (v *View) SetOrder(order SortOrder) {
	v.order = order
	if v.Attached() {
		v.rebuild()
	}
}

// SetFilter replaces the row predicate.
func (v *View) SetFilter(f Filter) {
	v.filter = f
	if v.Attached() {
		v.rebuild()
	}
}

// Count returns the number of visible rows.
func (v *View) Count() int {
	return len(v.toStore)
}

// ViewToStore maps a view position to its store position.
func (v *View) ViewToStore(pos int) int {
	v.mustBeAttached()
	checkIndex("view row", pos, len(v.toStore))
	return v.toStore[pos]
}

// StoreToView maps a store position to its view position; false when the
// row is filtered out.
func (v *View) StoreToView(pos int) (int, bool) {
	v.mustBeAttached()
	checkIndex("store row", pos, len(v.fromStore))
	vp := v.fromStore[pos]
	return vp, vp >= 0
}

// RowAt returns the row shown at view position pos.
func (v *View) RowAt(pos int) Row {
	return v.store.RowAt(v.ViewToStore(pos))
}

// ColumnValue returns one cell at view position pos.
func (v *View) ColumnValue(pos int, col Column) (string, fsutil.IdentityHash) {
	return v.store.ColumnValue(v.ViewToStore(pos), col)
}

// HashAt returns the identity shown at view position pos.
func (v *View) HashAt(pos int) fsutil.IdentityHash {
	return v.RowAt(pos).Hash()
}

// PositionOf resolves an identity to its view position.
func (v *View) PositionOf(h fsutil.IdentityHash) (int, bool) {
	if !v.Attached() {
		return -1, false
	}
	sp, ok := v.store.Position(h)
	if !ok {
		return -1, false
	}
	return v.StoreToView(sp)
}

func (v *View) mustBeAttached() {
	if v.store == nil {
		panic(ErrDetached)
	}
}

func (v *View) rebuild() {
	n := v.store.Count()
	toStore := make([]int, 0, n)
	for i := 0; i < n; i++ {
		row := v.store.rows[i]
		if v.filter != nil && !row.Item.IsParent() && !v.filter(row) {
			continue
		}
		toStore = append(toStore, i)
	}

	rows := v.store.rows
	order := v.order
	sort.SliceStable(toStore, func(a, b int) bool {
		return rowLess(rows[toStore[a]], rows[toStore[b]], order)
	})

	fromStore := make([]int, n)
	for i := range fromStore {
		fromStore[i] = -1
	}
	for vp, sp := range toStore {
		fromStore[sp] = vp
	}

	v.toStore = toStore
	v.fromStore = fromStore
	for _, fn := range v.observers {
		fn()
	}
}

// rowLess keeps the parent row on top and directories ahead of files in
// both directions; only the column comparison is reversed.
func rowLess(a, b Row, order SortOrder) bool {
	ai, bi := a.Item, b.Item
	if ai.IsParent() != bi.IsParent() {
		return ai.IsParent()
	}
	if ai.IsDir() != bi.IsDir() {
		return ai.IsDir()
	}

	if c := compareColumn(ai, bi, order.Column); c != 0 {
		if order.Descending {
			return c > 0
		}
		return c < 0
	}
	if c := compareNames(ai.FileName(), bi.FileName()); c != 0 {
		return c < 0
	}
	return ai.Hash < bi.Hash
}

func compareColumn(a, b fsutil.Item, col Column) int {
	switch col {
	case ColumnExt:
		return compareNames(a.Extension, b.Extension)
	case ColumnSize:
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	case ColumnDate:
		return a.Modified.Compare(b.Modified)
	default:
		return compareNames(a.FileName(), b.FileName())
	}
}

func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
