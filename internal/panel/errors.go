package panel

import (
	"errors"
	"fmt"
)

var (
	// ErrDetached is raised by positional queries on a view that has no store.
	ErrDetached = errors.New("panel: view is detached from its row store")
	// ErrNotReconciled is returned when selection is restored before the
	// first reconciliation.
	ErrNotReconciled = errors.New("panel: selection restored before any reconciliation")
)

// RangeError reports an out-of-range row or column access.
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("panel: %s %d out of range [0,%d)", e.What, e.Index, e.Len)
}

func checkIndex(what string, idx, n int) {
	if idx < 0 || idx >= n {
		panic(&RangeError{What: what, Index: idx, Len: n})
	}
}
