package panel

import (
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// HashSet is a set of identities.
type HashSet = map[fsutil.IdentityHash]struct{}

// Resolver maps an identity to a position in the current listing.
type Resolver func(fsutil.IdentityHash) (int, bool)

// Listing is the read side of a view used for cursor restoration.
type Listing interface {
	Count() int
	PositionOf(fsutil.IdentityHash) (int, bool)
	HashAt(pos int) fsutil.IdentityHash
}

// Selection tracks selected identities and the cursor independently of
// row positions. Entries may be stale until the next Restore.
type Selection struct {
	selected   HashSet
	cursor     fsutil.IdentityHash
	reconciled bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{selected: make(HashSet)}
}

// Snapshot copies the selected set.
func (s *Selection) Snapshot() HashSet {
	out := make(HashSet, len(s.selected))
	for h := range s.selected {
		out[h] = struct{}{}
	}
	return out
}

// Len returns the number of selected identities.
func (s *Selection) Len() int {
	return len(s.selected)
}

// Selected reports whether h is selected.
func (s *Selection) Selected(h fsutil.IdentityHash) bool {
	_, ok := s.selected[h]
	return ok
}

// Toggle flips the selection state of h.
func (s *Selection) Toggle(h fsutil.IdentityHash) {
	if !h.Valid() {
		return
	}
	if _, ok := s.selected[h]; ok {
		delete(s.selected, h)
		return
	}
	s.selected[h] = struct{}{}
}

// Deselect removes h from the selection.
func (s *Selection) Deselect(h fsutil.IdentityHash) {
	delete(s.selected, h)
}

// Clear drops the whole selection and the cursor.
func (s *Selection) Clear() {
	s.selected = make(HashSet)
	s.cursor = fsutil.NoIdentity
}

// Cursor returns the cursor identity, NoIdentity when none.
func (s *Selection) Cursor() fsutil.IdentityHash {
	return s.cursor
}

// SetCursor moves the cursor to h.
func (s *Selection) SetCursor(h fsutil.IdentityHash) {
	s.cursor = h
}

func (s *Selection) markReconciled() {
	s.reconciled = true
}

// Restore replaces the live selection with the hashes that resolve in the
// new listing. Unresolved hashes are dropped, not retained.
func (s *Selection) Restore(hashes HashSet, resolve Resolver) error {
	if !s.reconciled {
		return ErrNotReconciled
	}
	live := make(HashSet, len(hashes))
	for h := range hashes {
		if _, ok := resolve(h); ok {
			live[h] = struct{}{}
		}
	}
	s.selected = live
	return nil
}

// RestoreCursor places the cursor after a rebuild: on the previous cursor
// identity, else on the bookmark, else on prevRow clamped to the listing.
// It returns the new cursor row, -1 for an empty listing.
func (s *Selection) RestoreCursor(prev, bookmark fsutil.IdentityHash, prevRow int, list Listing) int {
	n := list.Count()
	if n == 0 {
		s.cursor = fsutil.NoIdentity
		return -1
	}

	for _, h := range []fsutil.IdentityHash{prev, bookmark} {
		if !h.Valid() {
			continue
		}
		if pos, ok := list.PositionOf(h); ok {
			s.cursor = h
			return pos
		}
	}

	row := min(max(prevRow, 0), n-1)
	s.cursor = list.HashAt(row)
	return row
}
