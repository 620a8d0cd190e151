package state

import (
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	"github.com/kk-code-lab/dpane/internal/panel"
	"github.com/rs/zerolog"
)

// Side identifies one of the two panes.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Other returns the opposite pane.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// ===== STATE DEFINITIONS =====

// PaneState is one side of the file manager.
type PaneState struct {
	Path         string
	Panel        *panel.Panel
	Drives       *panel.DriveBar
	History      []string
	HistoryIndex int
	ScrollOffset int

	FilterActive bool
	FilterQuery  string

	pending pendingLoad
}

type pendingLoad struct {
	token int
	path  string
	mode  loadMode
}

// Loading reports whether a directory read is in flight.
func (p *PaneState) Loading() bool {
	return p.pending.token != 0
}

// AppState is the single source of truth
type AppState struct {
	Panes  [2]*PaneState
	Active Side

	HideHiddenFiles bool

	// Last visited item per directory, restored when the directory is
	// listed again.
	Bookmarks map[string]fsutil.IdentityHash

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	StatusMessage string
	LastError     error

	Loader         fsutil.Loader
	dispatchAction func(Action)
	nextToken      int
	log            zerolog.Logger
}

// NewAppState builds two empty panes. Directories are loaded by the reducer.
func NewAppState(log zerolog.Logger, leftPath, rightPath string) *AppState {
	s := &AppState{
		HideHiddenFiles: true,
		Bookmarks:       make(map[string]fsutil.IdentityHash),
		log:             log,
	}
	for i, path := range []string{leftPath, rightPath} {
		s.Panes[i] = &PaneState{
			Path:   path,
			Panel:  panel.New(log.With().Str("pane", Side(i).String()).Logger()),
			Drives: panel.NewDriveBar(),
		}
	}
	return s
}

// ActivePane returns the focused pane.
func (s *AppState) ActivePane() *PaneState {
	return s.Panes[s.Active]
}

// Pane returns the pane on side.
func (s *AppState) Pane(side Side) *PaneState {
	return s.Panes[side]
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// WatchedPaths returns the directories currently shown.
func (s *AppState) WatchedPaths() []string {
	paths := make([]string, 0, 2)
	for _, p := range s.Panes {
		if p.Path != "" && (len(paths) == 0 || paths[0] != p.Path) {
			paths = append(paths, p.Path)
		}
	}
	return paths
}

// ListHeight is the number of listing rows that fit on screen: header,
// drive bar, column titles and status line take four rows.
func (s *AppState) ListHeight() int {
	h := s.ScreenHeight - 4
	if s.anyFilterActive() {
		h--
	}
	return max(h, 1)
}

func (s *AppState) anyFilterActive() bool {
	for _, p := range s.Panes {
		if p.FilterActive {
			return true
		}
	}
	return false
}

// ListTop is the first screen row of the listings.
const ListTop = 3

// SideAt returns the pane drawn at screen column x.
func (s *AppState) SideAt(x int) Side {
	if x < s.ScreenWidth/2 {
		return SideLeft
	}
	return SideRight
}

// ListRowAt maps a screen cell to a pane and view row. ok is false outside
// the listings or past the last row.
func (s *AppState) ListRowAt(x, y int) (side Side, row int, ok bool) {
	side = s.SideAt(x)
	line := y - ListTop
	if line < 0 || line >= s.ListHeight() {
		return side, -1, false
	}
	pane := s.Pane(side)
	row = pane.ScrollOffset + line
	if row >= pane.Panel.Count() {
		return side, -1, false
	}
	return side, row, true
}

// RememberCursors bookmarks the cursor item of both panes, e.g. before the
// bookmarks are persisted. The active pane wins when both show one directory.
func (s *AppState) RememberCursors() {
	s.rememberCursor(s.Pane(s.Active.Other()))
	s.rememberCursor(s.ActivePane())
}
