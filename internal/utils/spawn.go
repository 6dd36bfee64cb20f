package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pojntfx/buildextra/pkg/client"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyCommand = errors.New("could not spawn an empty command")
)

// Command is one external tool invocation. Args[0] is the tool name; Dir is the
// working directory and Env holds KEY=VALUE pairs added to the environment.
type Command struct {
	Dir  string
	Args []string
	Env  []string
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

type Spawner interface {
	Spawn(ctx context.Context, command Command) error
}

// SpawnError is returned for tools that could not be started or that exited
// with a non-zero status.
type SpawnError struct {
	Args     []string
	ExitCode int
	Err      error
}

func (e *SpawnError) Error() string {
	name := ""
	if len(e.Args) > 0 {
		name = e.Args[0]
	}

	if e.ExitCode > 0 {
		return fmt.Sprintf("command '%s' failed with exit status %d", name, e.ExitCode)
	}

	return fmt.Sprintf("command '%s' failed: %v", name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Exec runs commands as blocking subprocesses with their output passed through.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	DryRun bool

	Discover func(name string) (client.Executable, error)
}

func NewExec(stdout, stderr io.Writer, dryRun bool) *Exec {
	return &Exec{
		Stdout:   stdout,
		Stderr:   stderr,
		DryRun:   dryRun,
		Discover: client.DiscoverExecutable,
	}
}

func (e *Exec) Spawn(ctx context.Context, command Command) error {
	if len(command.Args) == 0 {
		return ErrEmptyCommand
	}

	log.Info().
		Str("dir", command.Dir).
		Strs("env", command.Env).
		Str("command", command.String()).
		Msg("Spawning")

	if e.DryRun {
		return nil
	}

	executable, err := e.Discover(command.Args[0])
	if err != nil {
		return &SpawnError{Args: command.Args, Err: err}
	}

	argv := append(executable.Command(command.Dir), command.Args[1:]...)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = command.Dir
	cmd.Env = append(os.Environ(), command.Env...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	AddSysProcAttr(cmd)
	cmd.Cancel = func() error {
		return Kill(cmd.Process)
	}

	if err := cmd.Run(); err != nil {
		spawnErr := &SpawnError{Args: command.Args, Err: err}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			spawnErr.ExitCode = exitErr.ExitCode()
		}

		return spawnErr
	}

	return nil
}
