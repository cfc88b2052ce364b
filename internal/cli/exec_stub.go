//go:build windows

package cli

import "os/exec"

func exitStatus(exit *exec.ExitError) int {
	return exit.ExitCode()
}
