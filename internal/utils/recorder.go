package utils

import (
	"context"
)

// Recorder is a Spawner that records commands instead of running them. Hooks
// keyed by tool name can simulate the tool, e.g. by writing its output file.
type Recorder struct {
	Commands []Command
	Hooks    map[string]func(command Command) error
}

func (r *Recorder) Spawn(ctx context.Context, command Command) error {
	if len(command.Args) == 0 {
		return ErrEmptyCommand
	}

	r.Commands = append(r.Commands, Command{
		Dir:  command.Dir,
		Args: append([]string{}, command.Args...),
		Env:  append([]string{}, command.Env...),
	})

	if hook, ok := r.Hooks[command.Args[0]]; ok {
		return hook(command)
	}

	return nil
}

// Named returns the recorded invocations of one tool.
func (r *Recorder) Named(name string) []Command {
	commands := []Command{}
	for _, command := range r.Commands {
		if command.Args[0] == name {
			commands = append(commands, command)
		}
	}

	return commands
}
