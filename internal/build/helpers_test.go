package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pojntfx/buildextra/internal/config"
	"github.com/pojntfx/buildextra/internal/utils"
)

var past = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestContext returns a build context rooted in a fresh directory whose
// recorder simulates the external tools by writing their output files.
func newTestContext(t *testing.T) (*Context, *utils.Recorder) {
	t.Helper()

	dir := t.TempDir()

	writeOutput := func(path string) error {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		return os.WriteFile(path, []byte("generated"), 0o644)
	}

	recorder := &utils.Recorder{
		Hooks: map[string]func(utils.Command) error{
			// msgfmt <po> -o <mo>
			"msgfmt": func(c utils.Command) error {
				return writeOutput(c.Args[3])
			},
			// intltool-merge <switch> <po_dir> <template> <output>
			"intltool-merge": func(c utils.Command) error {
				return writeOutput(c.Args[4])
			},
			// itstool -m <mo> -o <build_dir> <page>
			"itstool": func(c utils.Command) error {
				return writeOutput(filepath.Join(c.Args[4], filepath.Base(c.Args[5])))
			},
		},
	}

	env, err := config.LoadEnv(map[string]string{})
	if err != nil {
		t.Fatalf("load env: %v", err)
	}

	bc := NewContext(config.Config{
		Dir:     dir,
		Env:     env,
		Project: config.DefaultProject(),
	}, recorder)

	return bc, recorder
}

func setLinguas(t *testing.T, bc *Context, value string) {
	t.Helper()

	bc.Env.Linguas = value
	bc.Env.LinguasSet = true
}

func writeFile(t *testing.T, bc *Context, rel string, mtime time.Time) {
	t.Helper()

	path := bc.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(rel), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}

	touch(t, bc, rel, mtime)
}

func touch(t *testing.T, bc *Context, rel string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(bc.Abs(rel), mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", rel, err)
	}
}

func symlink(t *testing.T, bc *Context, target, rel string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(bc.Abs(rel)), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.Symlink(target, bc.Abs(rel)); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
}

func filesFor(bc *Context, target string) [][]string {
	files := [][]string{}
	for _, entry := range bc.Manifest.Entries() {
		if entry.Target == target {
			files = append(files, entry.Files)
		}
	}

	return files
}

func writeLinguas(bc *Context, content string) error {
	return os.WriteFile(bc.Abs("po", "LINGUAS"), []byte(content), 0o644)
}
