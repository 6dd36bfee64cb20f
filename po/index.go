// Package po holds the message catalogs of the build-extra command line, laid
// out as <lang>/LC_MESSAGES/build-extra.mo.
package po

import "embed"

//go:generate sh -c "find ../cmd ../internal -name '*.go' ! -name '*_test.go' | xgettext --language=C++ --keyword=L --keyword=Translate --from-code=UTF-8 --omit-header -o build-extra.pot --files-from=-"
//go:generate sh -c "find . -name 'build-extra.po' -print0 | xargs -0 -I {} msgmerge --update --backup=none \"{}\" build-extra.pot"
//go:generate sh -c "find . -type f -name 'build-extra.po' -print0 | xargs -0 -I {} sh -c 'msgfmt -o \"$(dirname \"{}\")/build-extra.mo\" \"{}\"'"
//go:embed *
var FS embed.FS
