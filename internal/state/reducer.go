package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	"github.com/kk-code-lab/dpane/internal/panel"
	"github.com/kk-code-lab/dpane/internal/search"
	"golang.org/x/text/unicode/norm"
)

var userHomeDirFn = os.UserHomeDir

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// loadMode says how a finished directory read is merged into a pane.
type loadMode struct {
	refresh bool // same directory: keep selection and cursor
	push    bool // record the directory in history
	jump    bool // history step: HistoryIndex becomes historyIndex
	// committed only once the directory is shown
	historyIndex int
}

var (
	navigate = loadMode{push: true}
	refresh  = loadMode{refresh: true}
)

func historyJump(index int) loadMode {
	return loadMode{jump: true, historyIndex: index}
}

// Reduce applies action to state and returns it.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	pane := state.ActivePane()

	switch a := action.(type) {

	// ===== CURSOR & SELECTION =====

	case MoveCursorAction:
		pane.Panel.MoveCursor(a.Delta)
		state.ensureCursorVisible(pane)
		return state, nil

	case CursorHomeAction:
		pane.Panel.SetCursorRow(0)
		state.ensureCursorVisible(pane)
		return state, nil

	case CursorEndAction:
		pane.Panel.SetCursorRow(pane.Panel.Count() - 1)
		state.ensureCursorVisible(pane)
		return state, nil

	case PageUpAction:
		pane.Panel.MoveCursor(-state.ListHeight())
		state.ensureCursorVisible(pane)
		return state, nil

	case PageDownAction:
		pane.Panel.MoveCursor(state.ListHeight())
		state.ensureCursorVisible(pane)
		return state, nil

	case MouseSelectAction:
		state.Active = a.Side
		target := state.ActivePane()
		if a.Row >= 0 && a.Row < target.Panel.Count() {
			target.Panel.SetCursorRow(a.Row)
			state.ensureCursorVisible(target)
		}
		return state, nil

	case ToggleSelectionAction:
		pane.Panel.ToggleCurrentSelection()
		return state, nil

	case ClearSelectionAction:
		cursor := pane.Panel.CursorRow()
		pane.Panel.ClearSelection()
		pane.Panel.SetCursorRow(cursor)
		return state, nil

	// ===== NAVIGATION =====

	case ActivateAction:
		item, ok := pane.Panel.CurrentItem()
		if !ok || !item.IsDir() {
			return state, nil
		}
		if item.IsParent() {
			return state, r.goUp(state, state.Active)
		}
		return state, r.changeDirectory(state, state.Active, item.FullPath, navigate)

	case GoUpAction:
		return state, r.goUp(state, state.Active)

	case GoHomeAction:
		home, err := userHomeDirFn()
		if err != nil {
			return state, fmt.Errorf("resolve home directory: %w", err)
		}
		return state, r.changeDirectory(state, state.Active, home, navigate)

	case GoToPathAction:
		if a.Path == "" {
			return state, nil
		}
		return state, r.changeDirectory(state, state.Active, a.Path, navigate)

	case GoToHistoryAction:
		target := pane.HistoryIndex
		switch a.Direction {
		case "back":
			target--
		case "forward":
			target++
		}
		if target < 0 || target >= len(pane.History) || target == pane.HistoryIndex {
			return state, nil
		}
		return state, r.changeDirectory(state, state.Active, pane.History[target], historyJump(target))

	case SelectDriveAction:
		drive, ok := pane.Drives.At(a.Index)
		if !ok {
			return state, nil
		}
		return state, r.changeDirectory(state, state.Active, drive.Path, navigate)

	// ===== PANES =====

	case SwitchPaneAction:
		state.Active = state.Active.Other()
		return state, nil

	case FocusPaneAction:
		state.Active = a.Side
		return state, nil

	// ===== LISTING =====

	case RefreshAction:
		return state, r.changeDirectory(state, state.Active, pane.Path, refresh)

	case PathChangedAction:
		changed := filepath.Clean(a.Path)
		var firstErr error
		for i, p := range state.Panes {
			if p.Path != changed {
				continue
			}
			if err := r.changeDirectory(state, Side(i), p.Path, refresh); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return state, firstErr

	case DirectoryLoadResultAction:
		target := state.Pane(a.Side)
		pending := target.pending
		if pending.token == 0 || pending.token != a.Result.Token {
			return state, nil
		}
		target.pending = pendingLoad{}
		mode := pending.mode
		if a.Result.Err != nil {
			return state, r.handleLoadError(state, a.Side, pending.path, mode, a.Result.Err)
		}
		state.applySnapshot(a.Side, a.Result.Snapshot, mode)
		return state, nil

	case DrivesChangedAction:
		for _, p := range state.Panes {
			p.Drives.Update(a.Drives, fsutil.ActiveDrive(a.Drives, p.Path))
		}
		return state, nil

	case CycleSortAction:
		order := pane.Panel.Order()
		order.Column = (order.Column + 1) % panel.NumColumns
		pane.Panel.SetOrder(order)
		state.ensureCursorVisible(pane)
		return state, nil

	case ReverseSortAction:
		order := pane.Panel.Order()
		order.Descending = !order.Descending
		pane.Panel.SetOrder(order)
		state.ensureCursorVisible(pane)
		return state, nil

	case ToggleHiddenFilesAction:
		state.HideHiddenFiles = !state.HideHiddenFiles
		for _, p := range state.Panes {
			state.applyFilter(p)
		}
		return state, nil

	// ===== FILTER =====

	case FilterStartAction:
		pane.FilterActive = true
		pane.FilterQuery = ""
		state.applyFilter(pane)
		return state, nil

	case FilterCharAction:
		if !pane.FilterActive {
			return state, nil
		}
		pane.FilterQuery += string(a.Char)
		state.applyFilter(pane)
		return state, nil

	case FilterBackspaceAction:
		if !pane.FilterActive || pane.FilterQuery == "" {
			return state, nil
		}
		_, size := utf8.DecodeLastRuneInString(pane.FilterQuery)
		pane.FilterQuery = pane.FilterQuery[:len(pane.FilterQuery)-size]
		state.applyFilter(pane)
		return state, nil

	case FilterClearAction:
		pane.FilterActive = false
		pane.FilterQuery = ""
		state.applyFilter(pane)
		return state, nil

	// ===== MISC =====

	case ContextMenuAction:
		state.StatusMessage = contextMenuSummary(pane)
		return state, nil

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		for _, p := range state.Panes {
			state.ensureCursorVisible(p)
		}
		return state, nil
	}

	return state, nil
}

// LoadInitial lists both panes synchronously.
func (r *StateReducer) LoadInitial(state *AppState) error {
	for i, p := range state.Panes {
		snap, err := fsutil.ScanDirectory(p.Path)
		if err != nil {
			return err
		}
		state.applySnapshot(Side(i), snap, navigate)
	}
	return nil
}

func (r *StateReducer) goUp(state *AppState, side Side) error {
	pane := state.Pane(side)
	parent := filepath.Dir(pane.Path)
	if parent == pane.Path {
		return nil
	}

	// land on the directory we came from
	base := norm.NFC.String(filepath.Base(pane.Path))
	state.Bookmarks[parent] = fsutil.Identity(fsutil.Item{Name: base, Type: fsutil.ItemDirectory})
	return r.changeDirectory(state, side, parent, navigate)
}

func (r *StateReducer) changeDirectory(state *AppState, side Side, path string, mode loadMode) error {
	pane := state.Pane(side)
	dirPath := filepath.Clean(path)
	if !mode.refresh {
		state.rememberCursor(pane)
	}

	loader := state.Loader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		snap, err := fsutil.ScanDirectory(dirPath)
		if err != nil {
			return r.handleLoadError(state, side, dirPath, mode, err)
		}
		state.applySnapshot(side, snap, mode)
		return nil
	}

	if prev := pane.pending.token; prev != 0 {
		loader.Cancel(prev)
	}
	state.nextToken++
	token := state.nextToken
	pane.pending = pendingLoad{token: token, path: dirPath, mode: mode}

	loader.Start(fsutil.LoadRequest{
		Token: token,
		Path:  dirPath,
		Callback: func(result fsutil.LoadResult) {
			dispatch(DirectoryLoadResultAction{Side: side, Result: result})
		},
	})
	return nil
}

// handleLoadError moves a pane whose directory vanished (deleted, disk
// detached) to the nearest existing ancestor.
func (r *StateReducer) handleLoadError(state *AppState, side Side, path string, mode loadMode, err error) error {
	if !mode.refresh {
		return err
	}
	ancestor := existingAncestor(path)
	if ancestor == "" || ancestor == path {
		return err
	}
	state.log.Info().Str("path", path).Str("fallback", ancestor).Msg("directory vanished")
	return r.changeDirectory(state, side, ancestor, navigate)
}

func existingAncestor(path string) string {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}

// ===== PRIVATE HELPER METHODS =====

func (s *AppState) rememberCursor(pane *PaneState) {
	if pane.Path == "" {
		return
	}
	if h := pane.Panel.Cursor(); h.Valid() {
		s.Bookmarks[pane.Path] = h
	}
}

func (s *AppState) applySnapshot(side Side, snap fsutil.Snapshot, mode loadMode) {
	pane := s.Pane(side)
	bookmark := s.Bookmarks[snap.Path]

	if mode.refresh && snap.Path == pane.Path {
		pane.Panel.Refresh(snap.Items, bookmark)
	} else {
		pane.Path = snap.Path
		pane.ScrollOffset = 0
		pane.FilterActive = false
		pane.FilterQuery = ""
		s.applyFilter(pane)
		pane.Panel.ClearSelection()
		pane.Panel.Reconcile(snap.Items, nil, fsutil.NoIdentity, bookmark)
		if mode.push {
			addToHistory(pane, snap.Path)
		}
	}
	if mode.jump && mode.historyIndex < len(pane.History) {
		pane.HistoryIndex = mode.historyIndex
	}

	pane.Drives.SetActive(fsutil.ActiveDrive(pane.Drives.Drives(), pane.Path))
	s.ensureCursorVisible(pane)
}

func (s *AppState) applyFilter(pane *PaneState) {
	hideHidden := s.HideHiddenFiles
	query := ""
	if pane.FilterActive {
		query = pane.FilterQuery
	}
	if !hideHidden && query == "" {
		pane.Panel.SetFilter(nil)
		return
	}

	q := search.NewQuery(query)
	pane.Panel.SetFilter(func(row panel.Row) bool {
		if hideHidden && row.Item.IsHidden() {
			return false
		}
		_, ok := q.Match(row.Item.FileName())
		return ok
	})
	s.ensureCursorVisible(pane)
}

func (s *AppState) ensureCursorVisible(pane *PaneState) {
	row := pane.Panel.CursorRow()
	visible := s.ListHeight()
	if row < 0 {
		pane.ScrollOffset = 0
		return
	}

	if row < pane.ScrollOffset {
		pane.ScrollOffset = row
	} else if row >= pane.ScrollOffset+visible {
		pane.ScrollOffset = row - visible + 1
	}

	maxOffset := max(pane.Panel.Count()-visible, 0)
	pane.ScrollOffset = min(max(pane.ScrollOffset, 0), maxOffset)
}

// addToHistory adds path to history, removing forward history if needed
func addToHistory(pane *PaneState, path string) {
	if len(pane.History) > 0 && pane.History[pane.HistoryIndex] == path {
		return
	}
	if pane.HistoryIndex < len(pane.History)-1 {
		pane.History = pane.History[:pane.HistoryIndex+1]
	}
	pane.History = append(pane.History, path)
	pane.HistoryIndex = len(pane.History) - 1
}

func contextMenuSummary(pane *PaneState) string {
	targets := pane.Panel.SelectedTargets()
	if len(targets) == 0 {
		return "context menu: " + pane.Path
	}
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.FileName())
	}
	const maxNames = 3
	if len(names) > maxNames {
		return fmt.Sprintf("context menu: %s and %d more", strings.Join(names[:maxNames], ", "), len(names)-maxNames)
	}
	return "context menu: " + strings.Join(names, ", ")
}
