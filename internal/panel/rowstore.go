package panel

import (
	"github.com/dustin/go-humanize"
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// Column identifies one of the fixed listing columns.
type Column int

const (
	ColumnName Column = iota
	ColumnExt
	ColumnSize
	ColumnDate
	NumColumns
)

// ColumnTitles are the header labels in column order.
var ColumnTitles = [NumColumns]string{"Name", "Ext", "Size", "Date"}

func (c Column) String() string {
	if c < 0 || c >= NumColumns {
		return "invalid"
	}
	return ColumnTitles[c]
}

const dateLayout = "02.01.2006 15:04"

// Cell is one rendered column value tagged with its row identity.
type Cell struct {
	Text string
	Hash fsutil.IdentityHash
}

// Row is the display projection of one Item.
type Row struct {
	Cells [NumColumns]Cell
	Item  fsutil.Item
}

// Hash returns the row identity.
func (r Row) Hash() fsutil.IdentityHash {
	return r.Item.Hash
}

// NewRow renders item into the fixed columns.
func NewRow(item fsutil.Item) Row {
	var name, ext, size string
	switch {
	case item.Type == fsutil.ItemParent:
		name = "[..]"
	case item.Type == fsutil.ItemDirectory:
		name = "[" + item.Name + "]"
	case item.Name == "":
		// nameless file such as ".profile": show it whole in the name column
		name = "." + item.Extension
	default:
		name = item.Name
		ext = item.Extension
	}
	if !item.IsDir() {
		size = humanize.IBytes(uint64(max(item.Size, 0)))
	}

	date := ""
	if !item.Modified.IsZero() {
		date = item.Modified.Local().Format(dateLayout)
	}

	row := Row{Item: item}
	for col, text := range [NumColumns]string{name, ext, size, date} {
		row.Cells[col] = Cell{Text: text, Hash: item.Hash}
	}
	return row
}

// RowStore is the positional table of rows backing a view.
type RowStore struct {
	rows  []Row
	index map[fsutil.IdentityHash]int
}

// NewRowStore creates an empty store.
func NewRowStore() *RowStore {
	return &RowStore{index: make(map[fsutil.IdentityHash]int)}
}

// ReplaceAll swaps the whole row set and rebuilds the identity index.
func (s *RowStore) ReplaceAll(rows []Row) {
	index := make(map[fsutil.IdentityHash]int, len(rows))
	for pos, row := range rows {
		h := row.Hash()
		if !h.Valid() {
			continue
		}
		if _, dup := index[h]; !dup {
			index[h] = pos
		}
	}
	s.rows = rows
	s.index = index
}

// Count returns the number of rows.
func (s *RowStore) Count() int {
	return len(s.rows)
}

// RowAt returns the row at pos. It panics with *RangeError when out of range.
func (s *RowStore) RowAt(pos int) Row {
	checkIndex("row", pos, len(s.rows))
	return s.rows[pos]
}

// ColumnValue returns the rendered text and identity of one cell.
func (s *RowStore) ColumnValue(pos int, col Column) (string, fsutil.IdentityHash) {
	checkIndex("row", pos, len(s.rows))
	checkIndex("column", int(col), int(NumColumns))
	cell := s.rows[pos].Cells[col]
	return cell.Text, cell.Hash
}

// Position resolves an identity to its store position.
func (s *RowStore) Position(h fsutil.IdentityHash) (int, bool) {
	if !h.Valid() {
		return -1, false
	}
	pos, ok := s.index[h]
	return pos, ok
}
