package linguas

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

const EnvName = "LINGUAS"

// Source describes where a selected-language set may come from. EnvSet
// distinguishes an empty LINGUAS from an unset one.
type Source struct {
	Env    string
	EnvSet bool

	File string
	Dir  string
}

func Parse(s string) []string {
	return strings.Fields(s)
}

// ForCatalogs resolves the languages to compile catalogs for: LINGUAS, else
// the LINGUAS control file, else nil. A nil or empty result means no
// restriction.
func ForCatalogs(src Source) ([]string, error) {
	if src.EnvSet {
		return Parse(src.Env), nil
	}

	if src.File == "" {
		return nil, nil
	}

	info, err := os.Stat(src.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, nil
	}

	data, err := os.ReadFile(src.File)
	if err != nil {
		return nil, err
	}

	return Parse(string(data)), nil
}

// ForHelp resolves the documentation locales: LINGUAS if set (an empty value
// selects nothing), else every entry of the help directory. A missing help
// directory selects nothing.
func ForHelp(src Source) ([]string, error) {
	if src.EnvSet {
		return Parse(src.Env), nil
	}

	return FromDir(src.Dir)
}

func FromDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		langs = append(langs, entry.Name())
	}

	return langs, nil
}

// Selected reports whether lang passes the selection. An empty selection
// selects every language.
func Selected(langs []string, lang string) bool {
	if len(langs) == 0 {
		return true
	}

	for _, l := range langs {
		if l == lang {
			return true
		}
	}

	return false
}
