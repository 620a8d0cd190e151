package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/dpane/internal/config"
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
	inputui "github.com/kk-code-lab/dpane/internal/ui/input"
	renderui "github.com/kk-code-lab/dpane/internal/ui/render"
	"github.com/rs/zerolog"
)

// Options configures a new Application.
type Options struct {
	LeftPath  string // defaults to the working directory
	RightPath string // defaults to LeftPath
	Config    config.Config
	Bookmarks *config.BookmarkStore // nil disables persistence
	Logger    zerolog.Logger
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool

	cfg       config.Config
	log       zerolog.Logger
	watcher   *fsutil.Watcher
	watched   []string
	bookmarks *config.BookmarkStore

	clipboardCmd  []string
	lastClickKey  string
	lastClickTime time.Time
	closed        bool
}

// NewApplication initialises the terminal and loads both panes.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	left, right, err := resolvePanePaths(opts.LeftPath, opts.RightPath)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	state := statepkg.NewAppState(log, left, right)
	state.HideHiddenFiles = !cfg.ShowHidden
	for _, p := range state.Panes {
		p.Panel.SetOrder(cfg.SortOrder())
	}
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	if opts.Bookmarks != nil {
		marks, err := opts.Bookmarks.Load()
		if err != nil {
			log.Warn().Err(err).Msg("bookmarks not loaded")
		} else {
			state.Bookmarks = marks
		}
	}

	reducer := statepkg.NewStateReducer()
	if err := reducer.LoadInitial(state); err != nil {
		return nil, err
	}

	actionCh := make(chan statepkg.Action, 64)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})
	state.Loader = fsutil.NewAsyncLoader()

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)
	clipboardCmd, _ := detectClipboard()

	app := &Application{
		screen:       screen,
		state:        state,
		reducer:      reducer,
		renderer:     renderui.NewRenderer(screen),
		input:        inputHandler,
		actionCh:     actionCh,
		cfg:          cfg,
		log:          log,
		bookmarks:    opts.Bookmarks,
		clipboardCmd: clipboardCmd,
	}

	if cfg.Watch {
		watcher, err := fsutil.NewWatcher(log)
		if err != nil {
			log.Warn().Err(err).Msg("change notifications disabled")
		} else {
			app.watcher = watcher
			app.syncWatcher()
		}
	}

	log.Info().Str("left", left).Str("right", right).Msg("started")
	return app, nil
}

func resolvePanePaths(left, right string) (string, string, error) {
	if left == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("resolve working directory: %w", err)
		}
		left = cwd
	}
	if right == "" {
		right = left
	}

	var err error
	if left, err = filepath.Abs(left); err != nil {
		return "", "", err
	}
	if right, err = filepath.Abs(right); err != nil {
		return "", "", err
	}
	return left, right, nil
}

// ActivePath returns the directory shown in the focused pane.
func (app *Application) ActivePath() string {
	return app.state.ActivePane().Path
}

// Close saves bookmarks, stops watching and restores the terminal.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true

	var firstErr error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			firstErr = err
		}
	}
	if app.bookmarks != nil {
		app.state.RememberCursors()
		if err := app.bookmarks.Save(app.state.Bookmarks, app.state.WatchedPaths()...); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.screen.Fini()
	app.log.Info().Msg("stopped")
	return firstErr
}

// syncWatcher points the watcher at the directories currently shown.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	paths := app.state.WatchedPaths()
	if slices.Equal(paths, app.watched) {
		return
	}
	app.watcher.SetPaths(paths...)
	app.watched = append(app.watched[:0], paths...)
}

func (app *Application) dispatch(ctx context.Context, action statepkg.Action) {
	select {
	case app.actionCh <- action:
	case <-ctx.Done():
	}
}
