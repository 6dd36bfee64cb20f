package build

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const BuildCommand = "build"

// SubCommands is the order in which Build runs its registered steps.
var SubCommands = []string{
	I18nCommand,
	IconsCommand,
	HelpCommand,
	DataCommand,
}

// Registry maps step names to implementations. Steps missing from it are
// skipped by Build.
type Registry map[string]Command

func NewRegistry(commands ...Command) Registry {
	r := Registry{}
	for _, command := range commands {
		r[command.Name()] = command
	}

	return r
}

func DefaultRegistry() Registry {
	return NewRegistry(
		&I18n{},
		&Icons{},
		&Help{},
		&Data{},
	)
}

func (r Registry) Has(name string) bool {
	_, ok := r[name]

	return ok
}

// Build runs every registered step in SubCommands order.
type Build struct {
	Registry Registry
}

func (c *Build) Name() string {
	return BuildCommand
}

func (c *Build) Run(ctx context.Context, bc *Context) error {
	for _, name := range SubCommands {
		command, ok := c.Registry[name]
		if !ok {
			log.Debug().
				Str("command", name).
				Msg("Skipping unregistered command")

			continue
		}

		if err := RunCommand(ctx, bc, command); err != nil {
			return err
		}
	}

	return nil
}

// RunCommand runs a single step with logging around it.
func RunCommand(ctx context.Context, bc *Context, command Command) error {
	log.Info().
		Str("command", command.Name()).
		Msg("Running")

	before := bc.Manifest.Len()
	if err := command.Run(ctx, bc); err != nil {
		return fmt.Errorf("%s: %w", command.Name(), err)
	}

	log.Debug().
		Str("command", command.Name()).
		Int("entries", bc.Manifest.Len()-before).
		Msg("Registered data files")

	return nil
}
