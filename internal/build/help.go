package build

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pojntfx/buildextra/internal/resources"
	"github.com/pojntfx/buildextra/internal/utils"
	"github.com/pojntfx/buildextra/pkg/linguas"
	"github.com/pojntfx/buildextra/pkg/manifest"
	"github.com/rs/zerolog/log"
)

const (
	HelpCommand = "build_help"

	pageCommand = "itstool"
	lintCommand = "xmllint"
)

// Help builds the Mallard help pages of every selected locale and lints the
// result.
type Help struct {
	languages []string
	pages     []string
}

func (c *Help) Name() string {
	return HelpCommand
}

func (c *Help) Run(ctx context.Context, bc *Context) error {
	entries, err := c.DataFiles(ctx, bc)
	if err != nil {
		return err
	}

	if err := bc.Manifest.Extend(entries...); err != nil {
		return err
	}

	return c.Check(ctx, bc)
}

// resolve reads the selected locales and the pages of the base locale. Both
// DataFiles and Check call it, so either works on its own.
func (c *Help) resolve(bc *Context) error {
	languages, err := linguas.ForHelp(bc.Env.LinguasSource("", bc.Abs(bc.Project.HelpDir)))
	if err != nil {
		return err
	}
	c.languages = languages

	c.pages, err = bc.Glob(filepath.Join(bc.Project.HelpDir, resources.BaseLocale, "*.page"))

	return err
}

// DataFiles builds every selected locale that has a source directory and
// returns the resulting pages and figures.
func (c *Help) DataFiles(ctx context.Context, bc *Context) ([]manifest.Entry, error) {
	helpDir := bc.Project.HelpDir

	if err := c.resolve(bc); err != nil {
		return nil, err
	}

	extras, err := bc.Glob(filepath.Join(helpDir, resources.BaseLocale, "*.xml"))
	if err != nil {
		return nil, err
	}

	entries := []manifest.Entry{}
	for _, lang := range c.languages {
		sourcePath := filepath.Join(helpDir, lang)

		info, err := os.Stat(bc.Abs(sourcePath))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, err
		}

		if !info.IsDir() {
			continue
		}

		buildPath := c.buildPath(bc, lang)
		if err := os.MkdirAll(bc.Abs(buildPath), 0o755); err != nil {
			return nil, err
		}

		if lang == resources.BaseLocale {
			if err := utils.CopyTree(bc.Abs(sourcePath), bc.Abs(buildPath)); err != nil {
				return nil, err
			}
		} else if err := c.translate(ctx, bc, lang, sourcePath, buildPath, extras); err != nil {
			return nil, err
		}

		xmlFiles, err := bc.GlobAll(filepath.Join(buildPath, "*.xml"), filepath.Join(buildPath, "*.page"))
		if err != nil {
			return nil, err
		}

		figures, err := bc.Glob(filepath.Join(buildPath, "figures", "*.png"))
		if err != nil {
			return nil, err
		}

		target := filepath.Join("share", "help", lang, bc.Project.Name)
		entries = append(entries,
			manifest.Entry{Target: target, Files: xmlFiles},
			manifest.Entry{Target: filepath.Join(target, "figures"), Files: figures},
		)
	}

	return entries, nil
}

func (c *Help) translate(ctx context.Context, bc *Context, lang, sourcePath, buildPath string, extras []string) error {
	poFile := filepath.Join(sourcePath, lang+".po")
	moFile := filepath.Join(buildPath, lang+".mo")

	if err := bc.Spawn(ctx, catalogCommand, poFile, "-o", moFile); err != nil {
		return err
	}

	for _, page := range c.pages {
		if err := bc.Spawn(ctx, pageCommand, "-m", moFile, "-o", buildPath, page); err != nil {
			return err
		}
	}

	for _, extra := range extras {
		link := bc.Abs(buildPath, filepath.Base(extra))

		if _, err := os.Lstat(link); err == nil {
			if err := os.Remove(link); err != nil {
				return err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		target, err := filepath.Rel(sourcePath, extra)
		if err != nil {
			return err
		}

		if err := os.Symlink(target, link); err != nil {
			return err
		}
	}

	return nil
}

// Check lints every built page of the selected locales. Pages missing from a
// locale are reported and skipped.
func (c *Help) Check(ctx context.Context, bc *Context) error {
	if err := c.resolve(bc); err != nil {
		return err
	}

	for _, lang := range c.languages {
		buildPath := c.buildPath(bc, lang)

		exists, err := bc.Exists(buildPath)
		if err != nil {
			return err
		}

		if !exists {
			continue
		}

		for _, page := range c.pages {
			pagePath := filepath.Join(buildPath, filepath.Base(page))

			exists, err := bc.Exists(pagePath)
			if err != nil {
				return err
			}

			if !exists {
				log.Warn().
					Str("path", pagePath).
					Msg("Skipping missing file")

				continue
			}

			if err := bc.Spawn(ctx, lintCommand, "--noout", "--noent", "--path", buildPath, "--xinclude", pagePath); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Help) buildPath(bc *Context, lang string) string {
	return filepath.Join(bc.Project.BuildDir, bc.Project.HelpDir, lang)
}
