package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

const DotEnvFile = ".env"

type Config struct {
	// Dir is the source tree root; every project path is relative to it.
	Dir string

	Env     Env
	Project Project
}

// Load reads an optional .env file from dir, then the environment, then the
// project file named by BUILD_EXTRA_PROJECT relative to dir.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, DotEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	e, err := LoadEnv(Environ())
	if err != nil {
		return Config{}, err
	}

	projectPath := e.Project
	if !filepath.IsAbs(projectPath) {
		projectPath = filepath.Join(dir, projectPath)
	}

	project, err := LoadProject(projectPath)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Dir:     dir,
		Env:     e,
		Project: project,
	}, nil
}
