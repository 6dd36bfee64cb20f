package resources

import (
	"path"
)

const (
	AppName       = "meld"
	AppID         = "org.gnome.meld"
	GettextDomain = "meld"
)

const (
	PODir    = "po"
	HelpDir  = "help"
	BuildDir = "build"

	// BaseLocale is the untranslated help locale that every other one is
	// generated from.
	BaseLocale = "C"
)

var (
	IconDir = path.Join("data", "icons")

	GSchemaTarget = "share/glib-2.0/schemas/"
	GSchemaFile   = path.Join("data", AppID+".gschema.xml")
)

// Group is a set of file patterns installed into one target directory.
type Group struct {
	Target   string   `mapstructure:"target"`
	Patterns []string `mapstructure:"patterns"`
}

// DataFiles are installed into Target as listed, without globbing.
type DataFiles struct {
	Target string   `mapstructure:"target"`
	Files  []string `mapstructure:"files"`
}

var (
	DesktopFiles = []Group{
		{Target: "share/applications", Patterns: []string{"data/*.desktop.in"}},
	}

	XMLFiles = []Group{
		{Target: "share/appdata", Patterns: []string{"data/*.appdata.xml.in"}},
		{Target: "share/mime/packages", Patterns: []string{"data/mime/*.xml.in"}},
	}

	GSchemas = []DataFiles{
		{Target: GSchemaTarget, Files: []string{GSchemaFile}},
	}
)
