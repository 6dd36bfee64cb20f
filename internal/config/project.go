package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/pojntfx/buildextra/internal/resources"
)

// Project describes the layout of the source tree being packaged.
type Project struct {
	Name       string `mapstructure:"name"`
	Domain     string `mapstructure:"domain"`
	BugContact string `mapstructure:"bug_contact"`
	MergePO    bool   `mapstructure:"merge_po"`

	PODir    string `mapstructure:"po_dir"`
	HelpDir  string `mapstructure:"help_dir"`
	IconDir  string `mapstructure:"icon_dir"`
	BuildDir string `mapstructure:"build_dir"`

	DesktopFiles []resources.Group `mapstructure:"desktop_files"`
	XMLFiles     []resources.Group `mapstructure:"xml_files"`
	SchemasFiles []resources.Group `mapstructure:"schemas_files"`
	KeyFiles     []resources.Group `mapstructure:"key_files"`

	GSchemas []resources.DataFiles `mapstructure:"gschemas"`
}

func DefaultProject() Project {
	return Project{
		Name:   resources.AppName,
		Domain: resources.GettextDomain,

		PODir:    resources.PODir,
		HelpDir:  resources.HelpDir,
		IconDir:  resources.IconDir,
		BuildDir: resources.BuildDir,

		DesktopFiles: append([]resources.Group{}, resources.DesktopFiles...),
		XMLFiles:     append([]resources.Group{}, resources.XMLFiles...),
		SchemasFiles: []resources.Group{},
		KeyFiles:     []resources.Group{},

		GSchemas: append([]resources.DataFiles{}, resources.GSchemas...),
	}
}

// LoadProject reads a TOML project file on top of the defaults. A missing
// file yields the defaults; unknown keys are rejected.
func LoadProject(path string) (Project, error) {
	project := DefaultProject()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return project, nil
		}

		return Project{}, err
	}

	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Project{}, fmt.Errorf("parse project file %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		ZeroFields:  true,
		Result:      &project,
	})
	if err != nil {
		return Project{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return Project{}, fmt.Errorf("decode project file %s: %w", path, err)
	}

	return project, nil
}
