//go:build !windows

package utils

import (
	"os/exec"
	"syscall"
)

// AddSysProcAttr puts the command into its own process group so that Kill can
// take down helpers the tool forks itself.
func AddSysProcAttr(command *exec.Cmd) {
	command.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
