package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// makeTree creates files and directories under root; names ending in "/"
// are directories.
func makeTree(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		full := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newLoadedState(t *testing.T, left, right string) (*AppState, *StateReducer) {
	t.Helper()
	state := NewAppState(zerolog.Nop(), left, right)
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	reducer := NewStateReducer()
	if err := reducer.LoadInitial(state); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	return state, reducer
}

func mustReduce(t *testing.T, r *StateReducer, s *AppState, action Action) {
	t.Helper()
	if _, err := r.Reduce(s, action); err != nil {
		t.Fatalf("Reduce(%T): %v", action, err)
	}
}

func cursorName(p *PaneState) string {
	item, ok := p.Panel.CurrentItem()
	if !ok {
		return ""
	}
	return item.FileName()
}

// moveCursorTo puts the cursor of the active pane on name.
func moveCursorTo(t *testing.T, s *AppState, name string) {
	t.Helper()
	pane := s.ActivePane()
	for pos := 0; pos < pane.Panel.Count(); pos++ {
		if pane.Panel.RowAt(pos).Item.FileName() == name {
			pane.Panel.SetCursorRow(pos)
			return
		}
	}
	t.Fatalf("%s not listed in %s", name, pane.Path)
}

func listedNames(p *PaneState) []string {
	names := make([]string, 0, p.Panel.Count())
	for pos := 0; pos < p.Panel.Count(); pos++ {
		names = append(names, p.Panel.RowAt(pos).Item.FileName())
	}
	return names
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
