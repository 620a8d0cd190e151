//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals are the signals that mean the process was resumed by job
// control.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
