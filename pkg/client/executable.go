package client

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const flatpakInfoPath = "/.flatpak-info"

var (
	ErrNoWorkingExecutableFound = errors.New("could not find a working executable")
)

// Executable is a resolved external tool. Host is set when the tool has to be
// reached through flatpak-spawn from inside a sandbox.
type Executable struct {
	Path string
	Host bool
}

// Command returns the argv prefix to start the executable in dir.
func (e Executable) Command(dir string) []string {
	if !e.Host {
		return []string{e.Path}
	}

	argv := []string{"flatpak-spawn", "--host"}
	if dir != "" {
		argv = append(argv, "--directory="+dir)
	}

	return append(argv, e.Path)
}

func DiscoverExecutable(name string) (Executable, error) {
	if _, err := os.Stat(flatpakInfoPath); err == nil {
		if err := exec.Command("flatpak-spawn", "--host", "which", name).Run(); err == nil {
			return Executable{Path: name, Host: true}, nil
		}

		return Executable{}, fmt.Errorf("%w: %s", ErrNoWorkingExecutableFound, name)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return Executable{}, fmt.Errorf("%w: %s", ErrNoWorkingExecutableFound, name)
	}

	return Executable{Path: path}, nil
}
