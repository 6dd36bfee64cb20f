package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pojntfx/buildextra/internal/resources"
	"github.com/pojntfx/buildextra/internal/utils"
	"github.com/pojntfx/buildextra/pkg/linguas"
	"github.com/pojntfx/buildextra/pkg/rebuild"
	"github.com/rs/zerolog/log"
)

const (
	I18nCommand = "build_i18n"

	extractorCommand = "intltool-update"
	mergeCommand     = "intltool-merge"
	catalogCommand   = "msgfmt"

	templateSuffix = ".in"
)

// Merge switches of intltool-merge per template kind.
const (
	XMLSwitch     = "-x"
	DesktopSwitch = "-d"
	SchemasSwitch = "-s"
	KeysSwitch    = "-k"
)

// I18n updates the translation templates, compiles the selected catalogs and
// merges translations into the desktop, appdata, MIME, schema and key
// templates.
type I18n struct {
	maxPOMtime time.Time
}

func (c *I18n) Name() string {
	return I18nCommand
}

// MaxPOMtime is the newest modification time seen across the compiled text
// catalogs of the last run.
func (c *I18n) MaxPOMtime() time.Time {
	return c.maxPOMtime
}

func (c *I18n) Run(ctx context.Context, bc *Context) error {
	if err := c.rebuildPO(ctx, bc); err != nil {
		return err
	}

	switches := []struct {
		groups []resources.Group
		flag   string
	}{
		{bc.Project.XMLFiles, XMLSwitch},
		{bc.Project.DesktopFiles, DesktopSwitch},
		{bc.Project.SchemasFiles, SchemasSwitch},
		{bc.Project.KeyFiles, KeysSwitch},
	}

	for _, s := range switches {
		for _, group := range s.groups {
			if err := c.mergeTemplates(ctx, bc, group, s.flag); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *I18n) rebuildPO(ctx context.Context, bc *Context) error {
	poDir := bc.Project.PODir

	selected, err := linguas.ForCatalogs(bc.Env.LinguasSource(bc.Abs(poDir, "LINGUAS"), ""))
	if err != nil {
		return err
	}

	mode := "-p"
	if bc.Project.MergePO {
		mode = "-r"
	}

	update := utils.Command{
		Dir:  bc.Abs(poDir),
		Args: []string{extractorCommand, mode, "-g", bc.Project.Domain},
	}
	if bc.Project.BugContact != "" {
		update.Env = append(update.Env, "XGETTEXT_ARGS=--msgid-bugs-address="+bc.Project.BugContact+" ")
	}

	if err := bc.Spawner.Spawn(ctx, update); err != nil {
		return err
	}

	poFiles, err := bc.Glob(filepath.Join(poDir, "*.po"))
	if err != nil {
		return err
	}

	c.maxPOMtime = time.Time{}
	for _, poFile := range poFiles {
		lang := strings.TrimSuffix(filepath.Base(poFile), ".po")
		if !linguas.Selected(selected, lang) {
			log.Debug().
				Str("lang", lang).
				Msg("Skipping unselected language")

			continue
		}

		moDir := filepath.Join(bc.Project.BuildDir, "mo", lang, "LC_MESSAGES")
		moFile := filepath.Join(moDir, bc.Project.Domain+".mo")

		if err := os.MkdirAll(bc.Abs(moDir), 0o755); err != nil {
			return err
		}

		poMtime, err := rebuild.ModTime(bc.Abs(poFile))
		if err != nil {
			return err
		}

		c.maxPOMtime = rebuild.Newest(c.maxPOMtime, poMtime)

		stale, err := rebuild.NeedsRebuild(bc.Abs(moFile), poMtime)
		if err != nil {
			return err
		}

		if stale {
			if err := bc.Spawn(ctx, catalogCommand, poFile, "-o", moFile); err != nil {
				return err
			}
		} else {
			log.Debug().
				Str("catalog", moFile).
				Msg("Binary catalog is up to date")
		}

		if err := bc.Manifest.Append(filepath.Join("share", "locale", lang, "LC_MESSAGES"), moFile); err != nil {
			return err
		}
	}

	return nil
}

// MergedName is the file name intltool-merge writes for a template.
func MergedName(template string) string {
	return strings.TrimSuffix(filepath.Base(template), templateSuffix)
}

func (c *I18n) mergeTemplates(ctx context.Context, bc *Context, group resources.Group, flag string) error {
	buildTarget := filepath.Join(bc.Project.BuildDir, group.Target)
	if err := os.MkdirAll(bc.Abs(buildTarget), 0o755); err != nil {
		return err
	}

	templates, err := bc.GlobAll(group.Patterns...)
	if err != nil {
		return err
	}

	merged := []string{}
	for _, template := range templates {
		output := filepath.Join(buildTarget, MergedName(template))

		templateMtime, err := rebuild.ModTime(bc.Abs(template))
		if err != nil {
			return err
		}

		stale, err := rebuild.NeedsRebuild(bc.Abs(output), rebuild.Newest(c.maxPOMtime, templateMtime))
		if err != nil {
			return err
		}

		if stale {
			if err := bc.Spawn(ctx, mergeCommand, flag, bc.Project.PODir, template, output); err != nil {
				return err
			}
		} else {
			// A merged file at least as new as its inputs is reused as is.
			log.Debug().
				Str("file", output).
				Msg("Merged file is up to date")
		}

		merged = append(merged, output)
	}

	return bc.Manifest.Append(group.Target, merged...)
}
