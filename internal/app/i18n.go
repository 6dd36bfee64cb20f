package app

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/pojntfx/buildextra/internal/utils"
)

const GettextDomain = "build-extra"

// Binder binds the catalogs of domain found in localeDir and returns the
// matching lookup function.
type Binder func(domain, localeDir string) (func(string) string, error)

// SetupTranslations extracts the embedded catalogs into a temporary locale
// directory and switches Translate to the bound lookup. On error Translate is
// left untouched. The returned function removes the locale directory.
func SetupTranslations(catalogs fs.FS, bind Binder) (func(), error) {
	localeDir, err := os.MkdirTemp("", GettextDomain)
	if err != nil {
		return func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(localeDir)
	}

	if err := utils.ExtractFS(catalogs, localeDir); err != nil {
		return cleanup, fmt.Errorf("extract catalogs: %w", err)
	}

	translate, err := callBinder(bind, localeDir)
	if err != nil {
		return cleanup, fmt.Errorf("bind catalogs: %w", err)
	}

	if translate != nil {
		Translate = translate
	}

	return cleanup, nil
}

// callBinder turns a panic while loading the native gettext library into an
// error.
func callBinder(bind Binder, localeDir string) (translate func(string) string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	return bind(GettextDomain, localeDir)
}
