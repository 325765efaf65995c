//go:build windows

package progress

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps installer subprocesses from flashing a console window.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
