package install

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pojntfx/buildextra/internal/config"
	"github.com/pojntfx/buildextra/internal/utils"
	"github.com/pojntfx/buildextra/pkg/gschema"
	"github.com/pojntfx/buildextra/pkg/manifest"
	"github.com/rs/zerolog/log"
)

const (
	InstallDataCommand = "install_data"

	DefaultInstallDir = "/usr/local"
)

type Options struct {
	// InstallDir is the base directory relative targets are installed into.
	InstallDir string
	// Root is prepended to every installed path, for staged installs.
	Root string

	NoCompileSchemas bool
	DryRun           bool
}

// InstallData copies the data files of a manifest into place and then
// compiles the installed GSettings schemas.
type InstallData struct {
	Options

	// Dir is the source tree the manifest paths are relative to.
	Dir      string
	Env      config.Env
	Project  config.Project
	Spawner  utils.Spawner
	Manifest *manifest.Manifest

	outfiles []string
}

func (c *InstallData) Name() string {
	return InstallDataCommand
}

// Outputs returns the files installed by the last run.
func (c *InstallData) Outputs() []string {
	return append([]string{}, c.outfiles...)
}

func (c *InstallData) Run(ctx context.Context) error {
	c.outfiles = []string{}

	for _, entry := range c.Manifest.Entries() {
		if err := c.installEntry(entry); err != nil {
			return err
		}
	}

	if c.SchemaCompilationDisabled() {
		log.Info().Msg("Skipping schema compilation")

		return nil
	}

	return c.CompileSchemas(ctx)
}

// SchemaCompilationDisabled reports whether the flag or NO_COMPILE_SCHEMAS
// suppress the post-install schema compilation.
func (c *InstallData) SchemaCompilationDisabled() bool {
	return c.NoCompileSchemas || c.Env.SchemaCompilationDisabled()
}

func (c *InstallData) CompileSchemas(ctx context.Context) error {
	if len(c.Project.GSchemas) == 0 {
		log.Debug().Msg("No schemas registered, skipping schema compilation")

		return nil
	}

	dir := c.targetDir(c.Project.GSchemas[0].Target)

	return c.Spawner.Spawn(ctx, utils.Command{
		Dir:  c.Dir,
		Args: gschema.CompileArgs(dir),
	})
}

func (c *InstallData) installDir() string {
	installDir := c.InstallDir
	if installDir == "" {
		installDir = DefaultInstallDir
	}

	return changeRoot(c.Root, installDir)
}

func (c *InstallData) targetDir(target string) string {
	if filepath.IsAbs(target) {
		return changeRoot(c.Root, target)
	}

	return filepath.Join(c.installDir(), target)
}

func (c *InstallData) installEntry(entry manifest.Entry) error {
	dir := c.targetDir(entry.Target)

	log.Info().
		Str("dir", dir).
		Int("files", len(entry.Files)).
		Msg("Installing data files")

	if !c.DryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	for _, file := range entry.Files {
		src := file
		if !filepath.IsAbs(src) {
			src = filepath.Join(c.Dir, src)
		}

		dst := filepath.Join(dir, filepath.Base(file))

		log.Debug().
			Str("src", src).
			Str("dst", dst).
			Msg("Copying")

		if !c.DryRun {
			if err := utils.CopyFile(src, dst); err != nil {
				return err
			}
		}

		c.outfiles = append(c.outfiles, dst)
	}

	return nil
}

func changeRoot(root, path string) string {
	if root == "" {
		return path
	}

	return filepath.Join(root, path)
}
