package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pojntfx/buildextra/pkg/linguas"
)

// Env holds the settings read from the process environment.
type Env struct {
	Linguas          string `env:"LINGUAS"`
	NoCompileSchemas string `env:"NO_COMPILE_SCHEMAS"`

	Verbose int    `env:"BUILD_EXTRA_VERBOSE" envDefault:"5"`
	Project string `env:"BUILD_EXTRA_PROJECT" envDefault:"buildextra.toml"`

	// LinguasSet is true when LINGUAS is present, even if empty.
	LinguasSet bool
}

// ParseEnv loads configuration from environment variables. A nil environment
// reads the process environment.
func ParseEnv(target any, environment map[string]string) error {
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	environment := map[string]string{}
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		environment[key] = value
	}

	return environment
}

func LoadEnv(environment map[string]string) (Env, error) {
	var e Env
	if err := ParseEnv(&e, environment); err != nil {
		return Env{}, err
	}

	_, e.LinguasSet = environment[linguas.EnvName]

	return e, nil
}

// SchemaCompilationDisabled reports whether NO_COMPILE_SCHEMAS holds any
// non-empty value.
func (e Env) SchemaCompilationDisabled() bool {
	return e.NoCompileSchemas != ""
}

func (e Env) LinguasSource(file, dir string) linguas.Source {
	return linguas.Source{
		Env:    e.Linguas,
		EnvSet: e.LinguasSet,
		File:   file,
		Dir:    dir,
	}
}
