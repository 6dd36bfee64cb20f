package build

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pojntfx/buildextra/internal/config"
	"github.com/pojntfx/buildextra/internal/utils"
	"github.com/pojntfx/buildextra/pkg/manifest"
)

// Command is one build step. Commands run one at a time and append their data
// files to the shared manifest.
type Command interface {
	Name() string
	Run(ctx context.Context, bc *Context) error
}

// Context is the state shared by the commands of one build invocation. All
// paths handed to commands, tools and the manifest are relative to Dir.
type Context struct {
	Dir      string
	Env      config.Env
	Project  config.Project
	Spawner  utils.Spawner
	Manifest *manifest.Manifest
}

func NewContext(cfg config.Config, spawner utils.Spawner) *Context {
	return &Context{
		Dir:      cfg.Dir,
		Env:      cfg.Env,
		Project:  cfg.Project,
		Spawner:  spawner,
		Manifest: manifest.New(),
	}
}

// Abs resolves a project-relative path against the source tree.
func (bc *Context) Abs(elem ...string) string {
	p := filepath.Join(elem...)
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(bc.Dir, p)
}

func (bc *Context) Spawn(ctx context.Context, args ...string) error {
	return bc.Spawner.Spawn(ctx, utils.Command{
		Dir:  bc.Dir,
		Args: args,
	})
}

func (bc *Context) Exists(elem ...string) (bool, error) {
	if _, err := os.Stat(bc.Abs(elem...)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Glob expands a project-relative pattern and returns sorted project-relative
// matches. Hidden entries only match patterns that start with a dot.
func (bc *Context) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(bc.Abs(pattern))
	if err != nil {
		return nil, err
	}

	hiddenPattern := strings.HasPrefix(filepath.Base(pattern), ".")

	files := []string{}
	for _, match := range matches {
		if !hiddenPattern && strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}

		rel, err := filepath.Rel(bc.Dir, match)
		if err != nil {
			return nil, err
		}

		files = append(files, rel)
	}

	return files, nil
}

// GlobAll expands every pattern in order and concatenates the results.
func (bc *Context) GlobAll(patterns ...string) ([]string, error) {
	files := []string{}
	for _, pattern := range patterns {
		matches, err := bc.Glob(pattern)
		if err != nil {
			return nil, err
		}

		files = append(files, matches...)
	}

	return files, nil
}
