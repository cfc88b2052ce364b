package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// runCommand launches the target with the decoded argument vector and
// waits for it, propagating exit status and signal-derived termination so
// the wrapper behaves like a process-image replacement. stdin is the
// spooled decoded stream in filter mode; nil inherits the caller's stdin.
func runCommand(cmd *cobra.Command, exe string, args []string, stdin io.Reader) error {
	child := exec.Command(exe, args...)
	if stdin != nil {
		child.Stdin = stdin
	} else {
		child.Stdin = os.Stdin
	}
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	if err := child.Start(); err != nil {
		return launchError(exe, err)
	}

	// Relay termination signals to the child; the wrapper itself exits
	// only once the child does.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = child.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := child.Wait()
	close(done)
	signal.Stop(signals)

	if err == nil {
		return nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &exitError{code: exitStatus(exit)}
	}
	return &exitError{code: 126, err: fmt.Errorf("wait for %s: %w", exe, err)}
}

// launchError mirrors shell exit conventions: 127 when the executable
// cannot be found, 126 when it exists but cannot be run.
func launchError(exe string, err error) error {
	code := 126
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		code = 127
	}
	return &exitError{code: code, err: fmt.Errorf("cannot run %s: %w", exe, err)}
}
