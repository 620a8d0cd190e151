package state

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/kk-code-lab/dpane/internal/panel"
)

// ===== FILTER & SORT TESTS =====

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Alphabet.md", "alpha.txt", "beta.txt")
	state, reducer := newLoadedState(t, root, root)
	pane := state.ActivePane()

	mustReduce(t, reducer, state, FilterStartAction{})
	for _, r := range "ALP" {
		mustReduce(t, reducer, state, FilterCharAction{Char: r})
	}

	want := []string{"..", "alpha.txt", "Alphabet.md"}
	if got := listedNames(pane); !reflect.DeepEqual(got, want) {
		t.Fatalf("filtered = %v, want %v", got, want)
	}

	mustReduce(t, reducer, state, FilterBackspaceAction{})
	mustReduce(t, reducer, state, FilterBackspaceAction{})
	mustReduce(t, reducer, state, FilterBackspaceAction{})
	if pane.FilterQuery != "" || !pane.FilterActive {
		t.Fatalf("query = %q active = %v", pane.FilterQuery, pane.FilterActive)
	}
	if n := pane.Panel.Count(); n != 4 {
		t.Fatalf("rows with empty query = %d, want 4", n)
	}

	mustReduce(t, reducer, state, FilterCharAction{Char: 'z'})
	mustReduce(t, reducer, state, FilterClearAction{})
	if pane.FilterActive || pane.Panel.Count() != 4 {
		t.Fatalf("clear left active=%v rows=%d", pane.FilterActive, pane.Panel.Count())
	}
}

func TestFilterKeepsSelectionOfHiddenRows(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "keep.txt", "other.txt")
	state, reducer := newLoadedState(t, root, root)
	pane := state.ActivePane()

	moveCursorTo(t, state, "other.txt")
	mustReduce(t, reducer, state, ToggleSelectionAction{})
	mustReduce(t, reducer, state, FilterStartAction{})
	for _, r := range "keep" {
		mustReduce(t, reducer, state, FilterCharAction{Char: r})
	}
	if pane.Panel.SelectedCount() != 1 {
		t.Fatalf("selection lost while filtering")
	}
	mustReduce(t, reducer, state, FilterClearAction{})
	if pane.Panel.SelectedCount() != 1 {
		t.Fatalf("selection lost after clearing filter")
	}
}

func TestFilterCharWithoutActiveFilterIsIgnored(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt")
	state, reducer := newLoadedState(t, root, root)

	mustReduce(t, reducer, state, FilterCharAction{Char: 'x'})
	if state.ActivePane().FilterQuery != "" {
		t.Fatal("query changed without an active filter")
	}
}

func TestToggleHiddenFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dot files are not hidden by attribute on windows")
	}
	root := t.TempDir()
	makeTree(t, root, ".secret", "plain.txt")
	state, reducer := newLoadedState(t, root, root)

	if got := listedNames(state.ActivePane()); !reflect.DeepEqual(got, []string{"..", "plain.txt"}) {
		t.Fatalf("hidden listing = %v", got)
	}
	mustReduce(t, reducer, state, ToggleHiddenFilesAction{})
	for _, side := range []Side{SideLeft, SideRight} {
		if n := state.Pane(side).Panel.Count(); n != 3 {
			t.Fatalf("%v rows = %d, want 3", side, n)
		}
	}
}

func TestCycleAndReverseSort(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.zip", "b.txt", "c.md")
	state, reducer := newLoadedState(t, root, root)
	pane := state.ActivePane()

	mustReduce(t, reducer, state, CycleSortAction{})
	if pane.Panel.Order().Column != panel.ColumnExt {
		t.Fatalf("column = %v, want ext", pane.Panel.Order().Column)
	}
	want := []string{"..", "c.md", "b.txt", "a.zip"}
	if got := listedNames(pane); !reflect.DeepEqual(got, want) {
		t.Fatalf("by ext = %v, want %v", got, want)
	}

	mustReduce(t, reducer, state, ReverseSortAction{})
	want = []string{"..", "a.zip", "b.txt", "c.md"}
	if got := listedNames(pane); !reflect.DeepEqual(got, want) {
		t.Fatalf("by ext desc = %v, want %v", got, want)
	}

	for i := 0; i < int(panel.NumColumns)-1; i++ {
		mustReduce(t, reducer, state, CycleSortAction{})
	}
	if pane.Panel.Order().Column != panel.ColumnName {
		t.Fatalf("cycle did not wrap: %v", pane.Panel.Order().Column)
	}
}

func TestSortKeepsCursorOnItem(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.zip", "b.txt", "c.md")
	state, reducer := newLoadedState(t, root, root)

	moveCursorTo(t, state, "a.zip")
	mustReduce(t, reducer, state, ReverseSortAction{})
	if got := cursorName(state.ActivePane()); got != "a.zip" {
		t.Fatalf("cursor = %q, want a.zip", got)
	}
}

func TestContextMenuSummarisesTargets(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt")
	state, reducer := newLoadedState(t, root, root)

	moveCursorTo(t, state, "b.txt")
	mustReduce(t, reducer, state, ContextMenuAction{})
	if state.StatusMessage != "context menu: b.txt" {
		t.Fatalf("status = %q", state.StatusMessage)
	}

	mustReduce(t, reducer, state, CursorHomeAction{})
	mustReduce(t, reducer, state, ToggleSelectionAction{})
	moveCursorTo(t, state, "a.txt")
	mustReduce(t, reducer, state, ToggleSelectionAction{})
	mustReduce(t, reducer, state, ContextMenuAction{})
	if state.StatusMessage != "context menu: a.txt" {
		t.Fatalf("status with parent selected = %q", state.StatusMessage)
	}
}

func TestResizeKeepsCursorVisible(t *testing.T) {
	root := t.TempDir()
	names := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		names = append(names, string(rune('a'+i%26))+string(rune('a'+i/26))+".txt")
	}
	makeTree(t, root, names...)
	state, reducer := newLoadedState(t, root, root)
	pane := state.ActivePane()

	mustReduce(t, reducer, state, CursorEndAction{})
	mustReduce(t, reducer, state, ResizeAction{Width: 80, Height: 10})

	visible := state.ListHeight()
	row := pane.Panel.CursorRow()
	if row < pane.ScrollOffset || row >= pane.ScrollOffset+visible {
		t.Fatalf("cursor row %d outside [%d,%d)", row, pane.ScrollOffset, pane.ScrollOffset+visible)
	}
}

func TestRefreshKeepsSelectionHiddenByFilter(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "keep.txt", "other.txt")
	state, reducer := newLoadedState(t, root, root)
	pane := state.ActivePane()

	moveCursorTo(t, state, "other.txt")
	mustReduce(t, reducer, state, ToggleSelectionAction{})
	mustReduce(t, reducer, state, FilterStartAction{})
	for _, r := range "keep" {
		mustReduce(t, reducer, state, FilterCharAction{Char: r})
	}

	mustReduce(t, reducer, state, RefreshAction{})
	mustReduce(t, reducer, state, FilterClearAction{})

	if n := pane.Panel.SelectedCount(); n != 1 {
		t.Fatalf("selected after refresh under filter = %d, want 1", n)
	}
	moveCursorTo(t, state, "other.txt")
	if !pane.Panel.IsSelected(pane.Panel.CursorRow()) {
		t.Fatalf("other.txt no longer marked")
	}
}
