//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dpane/internal/state"
)

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// stop this process only; the process group may hold the parent shell
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.EnableFocus()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))

	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	// the directories may have changed while we were stopped
	if _, err := app.reducer.Reduce(app.state, statepkg.RefreshAction{}); err != nil {
		app.state.LastError = err
	}
	return true
}
