//go:build windows

package app

// Windows has no job control; suspend is ignored.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
