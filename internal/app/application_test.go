package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dpane/internal/config"
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
	"github.com/rs/zerolog"
)

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
		if err := os.WriteFile(full, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 30)

	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	opts.Config.Watch = false
	opts.Logger = zerolog.Nop()

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		t.Fatalf("newApplication: %v", err)
	}
	// synchronous loads keep the tests deterministic
	app.state.Loader = nil
	app.clipboardCmd = nil
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func rowOf(t *testing.T, pane *statepkg.PaneState, name string) int {
	t.Helper()
	for pos := 0; pos < pane.Panel.Count(); pos++ {
		if pane.Panel.RowAt(pos).Item.FileName() == name {
			return pos
		}
	}
	t.Fatalf("%s not listed in %s", name, pane.Path)
	return -1
}

func cursorName(pane *statepkg.PaneState) string {
	item, ok := pane.Panel.CurrentItem()
	if !ok {
		return ""
	}
	return item.FileName()
}

func click(app *Application, x, y int) {
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.processActions()
}

func TestNewApplicationLoadsBothPanes(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	makeTree(t, left, "a.txt", "sub/")
	makeTree(t, right, "b.txt")

	app := newTestApp(t, Options{LeftPath: left, RightPath: right})

	if got := app.state.Pane(statepkg.SideLeft).Path; got != left {
		t.Fatalf("left path = %q, want %q", got, left)
	}
	if got := app.state.Pane(statepkg.SideRight).Path; got != right {
		t.Fatalf("right path = %q, want %q", got, right)
	}
	rowOf(t, app.state.Pane(statepkg.SideLeft), "a.txt")
	rowOf(t, app.state.Pane(statepkg.SideRight), "b.txt")
	if app.ActivePath() != left {
		t.Fatalf("ActivePath = %q", app.ActivePath())
	}
}

func TestNewApplicationRightDefaultsToLeft(t *testing.T) {
	left := t.TempDir()
	app := newTestApp(t, Options{LeftPath: left})

	if got := app.state.Pane(statepkg.SideRight).Path; got != left {
		t.Fatalf("right path = %q, want %q", got, left)
	}
}

func TestNewApplicationRejectsMissingDirectory(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	cfg := config.Default()
	cfg.Watch = false
	_, err := newApplication(screen, Options{
		LeftPath: filepath.Join(t.TempDir(), "missing"),
		Config:   cfg,
		Logger:   zerolog.Nop(),
	})
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestMouseClickMovesCursorAndFocusesPane(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt")
	app := newTestApp(t, Options{LeftPath: root})

	right := app.state.Pane(statepkg.SideRight)
	row := rowOf(t, right, "b.txt")
	click(app, app.state.ScreenWidth-5, statepkg.ListTop+row)

	if app.state.Active != statepkg.SideRight {
		t.Fatalf("active pane = %s, want right", app.state.Active)
	}
	if got := cursorName(right); got != "b.txt" {
		t.Fatalf("cursor = %q, want b.txt", got)
	}
}

func TestDoubleClickEntersDirectory(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "sub/", "sub/inner.txt")
	app := newTestApp(t, Options{LeftPath: root})

	left := app.state.Pane(statepkg.SideLeft)
	row := rowOf(t, left, "sub")
	click(app, 2, statepkg.ListTop+row)
	click(app, 2, statepkg.ListTop+row)

	if want := filepath.Join(root, "sub"); left.Path != want {
		t.Fatalf("path = %q, want %q", left.Path, want)
	}
}

func TestSlowSecondClickOnlySelects(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "sub/")
	app := newTestApp(t, Options{LeftPath: root})

	left := app.state.Pane(statepkg.SideLeft)
	row := rowOf(t, left, "sub")
	click(app, 2, statepkg.ListTop+row)
	app.lastClickTime = time.Now().Add(-time.Second)
	click(app, 2, statepkg.ListTop+row)

	if left.Path != root {
		t.Fatalf("slow double click navigated to %q", left.Path)
	}
}

func TestKeyClearsStatusMessage(t *testing.T) {
	app := newTestApp(t, Options{LeftPath: t.TempDir()})
	app.state.StatusMessage = "hello"
	app.state.LastError = errors.New("boom")

	app.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	if app.state.StatusMessage != "" || app.state.LastError != nil {
		t.Fatalf("messages not cleared: %q %v", app.state.StatusMessage, app.state.LastError)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	app := newTestApp(t, Options{LeftPath: t.TempDir()})

	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	app.processActions()

	if !app.shouldQuit {
		t.Fatalf("expected quit after q")
	}
}

func TestFailedActionRecordsError(t *testing.T) {
	app := newTestApp(t, Options{LeftPath: t.TempDir()})

	app.handleAction(statepkg.GoToPathAction{Path: filepath.Join(t.TempDir(), "missing")})

	if app.state.LastError == nil {
		t.Fatalf("expected LastError to be set")
	}
}

func TestPathChangedRefreshesListing(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt")
	app := newTestApp(t, Options{LeftPath: root})

	makeTree(t, root, "new.txt")
	app.handleAction(statepkg.PathChangedAction{Path: root})

	rowOf(t, app.state.Pane(statepkg.SideLeft), "new.txt")
}

func TestCloseSavesBookmarksForNextStart(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt", "c.txt")
	store := config.NewBookmarkStore(filepath.Join(t.TempDir(), "bookmarks.yaml"))

	first := newTestApp(t, Options{LeftPath: root, Bookmarks: store})
	left := first.state.Pane(statepkg.SideLeft)
	left.Panel.SetCursorRow(rowOf(t, left, "b.txt"))
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := newTestApp(t, Options{LeftPath: root, Bookmarks: store})
	if got := cursorName(second.state.Pane(statepkg.SideLeft)); got != "b.txt" {
		t.Fatalf("cursor after restart = %q, want b.txt", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	app := newTestApp(t, Options{LeftPath: t.TempDir()})
	if err := app.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestYankWithoutClipboardReportsStatus(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt")
	app := newTestApp(t, Options{LeftPath: root})
	left := app.state.Pane(statepkg.SideLeft)
	left.Panel.SetCursorRow(rowOf(t, left, "a.txt"))

	app.handleAction(statepkg.YankPathsAction{})

	if app.state.StatusMessage != "no clipboard command available" {
		t.Fatalf("status = %q", app.state.StatusMessage)
	}
}

func TestPollDrivesDispatchesOnlyChanges(t *testing.T) {
	app := newTestApp(t, Options{LeftPath: t.TempDir()})
	app.cfg.DrivePollInterval = 10 * time.Millisecond

	calls := 0
	orig := enumerateDrives
	enumerateDrives = func(context.Context) ([]fsutil.Drive, error) {
		calls++
		if calls < 3 {
			return []fsutil.Drive{{Name: "root", Path: "/"}}, nil
		}
		return []fsutil.Drive{{Name: "root", Path: "/"}, {Name: "usb", Path: "/media/usb"}}, nil
	}
	t.Cleanup(func() { enumerateDrives = orig })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.pollDrives(ctx)
		close(done)
	}()

	var got []statepkg.DrivesChangedAction
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case action := <-app.actionCh:
			if dc, ok := action.(statepkg.DrivesChangedAction); ok {
				got = append(got, dc)
			}
		case <-deadline:
			cancel()
			t.Fatalf("received %d drive updates, want 2", len(got))
		}
	}
	cancel()
	<-done

	if len(got[0].Drives) != 1 || len(got[1].Drives) != 2 {
		t.Fatalf("unexpected drive updates: %+v", got)
	}
	if calls < 3 {
		t.Fatalf("enumerateDrives called %d times", calls)
	}
}
