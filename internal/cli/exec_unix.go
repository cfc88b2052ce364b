//go:build !windows

package cli

import (
	"os/exec"
	"syscall"
)

// exitStatus maps a finished child to the wrapper's exit code. A child
// killed by a signal exits 128+signal, matching shell conventions.
func exitStatus(exit *exec.ExitError) int {
	if ws, ok := exit.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exit.ExitCode()
}
