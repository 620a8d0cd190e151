package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
)

const doubleClickThreshold = 300 * time.Millisecond

var enumerateDrives = fsutil.EnumerateDrives

// Run processes input, filesystem and drive events until the user quits or
// ctx is cancelled.
func (app *Application) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go app.pollDrives(ctx)

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var changes <-chan string
	if app.watcher != nil {
		changes = app.watcher.Changes()
	}

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case dir, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if app.handleAction(statepkg.PathChangedAction{Path: dir}) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

// pollDrives enumerates volumes now and on every tick, reporting changes.
func (app *Application) pollDrives(ctx context.Context) {
	ticker := time.NewTicker(app.cfg.DrivePollInterval)
	defer ticker.Stop()

	var last []fsutil.Drive
	first := true
	for {
		drives, err := enumerateDrives(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			app.log.Debug().Err(err).Msg("drive enumeration failed")
		case first || !slices.Equal(drives, last):
			first = false
			last = drives
			app.dispatch(ctx, statepkg.DrivesChangedAction{Drives: drives})
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.clearMessages()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			app.clearMessages()
			return app.handleMouse(ev)
		}
	case *tcell.EventResize, *tcell.EventFocus:
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}

	if !app.input.ProcessEvent(ev) {
		app.shouldQuit = true
	}
	return true
}

func (app *Application) clearMessages() {
	app.state.StatusMessage = ""
	app.state.LastError = nil
}

// handleMouse maps primary clicks to cursor moves; a double click opens
// the row.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	side, row, ok := app.state.ListRowAt(x, y)
	if !ok {
		app.actionCh <- statepkg.FocusPaneAction{Side: side}
		return true
	}

	clickKey := fmt.Sprintf("%s-%d", side, row)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.MouseSelectAction{Side: side, Row: row}
	if doubleClick {
		app.lastClickKey = ""
		app.actionCh <- statepkg.ActivateAction{}
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathsAction:
		app.handleYank()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.log.Warn().Err(err).Str("action", fmt.Sprintf("%T", action)).Msg("action failed")
	}
	app.syncWatcher()
	return true
}

func (app *Application) handleYank() {
	targets := app.state.ActivePane().Panel.SelectedTargets()
	if len(targets) == 0 {
		return
	}
	if len(app.clipboardCmd) == 0 {
		app.state.StatusMessage = "no clipboard command available"
		return
	}

	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		paths = append(paths, t.FullPath)
	}
	if err := copyToClipboard(app.clipboardCmd, paths); err != nil {
		app.state.LastError = err
		return
	}
	if len(paths) == 1 {
		app.state.StatusMessage = "copied " + normalizeClipboardPath(paths[0])
	} else {
		app.state.StatusMessage = fmt.Sprintf("copied %d paths", len(paths))
	}
}
