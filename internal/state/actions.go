package state

import (
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== CURSOR & SELECTION ACTIONS =====

type MoveCursorAction struct {
	Delta int
}
type CursorHomeAction struct{}
type CursorEndAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type MouseSelectAction struct {
	Side Side
	Row  int // view row
}
type ToggleSelectionAction struct{}
type ClearSelectionAction struct{}

// ===== NAVIGATION ACTIONS =====

type ActivateAction struct{} // enter directory under cursor
type GoUpAction struct{}
type GoHomeAction struct{}
type GoToPathAction struct {
	Path string
}
type GoToHistoryAction struct {
	Direction string // "back" or "forward"
}
type SelectDriveAction struct {
	Index int
}

// ===== PANE ACTIONS =====

type SwitchPaneAction struct{}
type FocusPaneAction struct {
	Side Side
}

// ===== LISTING ACTIONS =====

type RefreshAction struct{}

// PathChangedAction is dispatched when a watched directory changed on disk.
type PathChangedAction struct {
	Path string
}

// DirectoryLoadResultAction carries an async snapshot back to the reducer.
type DirectoryLoadResultAction struct {
	Side   Side
	Result fsutil.LoadResult
}

// DrivesChangedAction carries a fresh volume enumeration.
type DrivesChangedAction struct {
	Drives []fsutil.Drive
}

type CycleSortAction struct{}
type ReverseSortAction struct{}
type ToggleHiddenFilesAction struct{}

// ===== FILTER ACTIONS =====

type FilterStartAction struct{}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterClearAction struct{}

// ===== MISC ACTIONS =====

type ContextMenuAction struct {
	X, Y int
}

type ResizeAction struct {
	Width  int
	Height int
}

type QuitAction struct{}
type SuspendAction struct{}

// YankPathsAction copies the target paths of the active pane to the clipboard.
type YankPathsAction struct{}
