package build

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pojntfx/buildextra/internal/resources"
	"github.com/pojntfx/buildextra/internal/utils"
)

func TestI18nCompilesOnlyLinguasFromControlFile(t *testing.T) {
	bc, recorder := newTestContext(t)

	writeFile(t, bc, "po/LINGUAS", past)
	if err := writeLinguas(bc, "fr de\n"); err != nil {
		t.Fatalf("write LINGUAS: %v", err)
	}
	for _, lang := range []string{"de", "es", "fr"} {
		writeFile(t, bc, "po/"+lang+".po", past)
	}

	if err := (&I18n{}).Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	compiled := [][]string{}
	for _, c := range recorder.Named("msgfmt") {
		compiled = append(compiled, c.Args)
	}
	want := [][]string{
		{"msgfmt", "po/de.po", "-o", "build/mo/de/LC_MESSAGES/meld.mo"},
		{"msgfmt", "po/fr.po", "-o", "build/mo/fr/LC_MESSAGES/meld.mo"},
	}
	if !reflect.DeepEqual(compiled, want) {
		t.Fatalf("expected %v, got %v", want, compiled)
	}

	if got := filesFor(bc, "share/locale/de/LC_MESSAGES"); !reflect.DeepEqual(got, [][]string{{"build/mo/de/LC_MESSAGES/meld.mo"}}) {
		t.Fatalf("unexpected de entries %v", got)
	}
	if got := filesFor(bc, "share/locale/fr/LC_MESSAGES"); len(got) != 1 {
		t.Fatalf("unexpected fr entries %v", got)
	}
	if got := filesFor(bc, "share/locale/es/LC_MESSAGES"); len(got) != 0 {
		t.Fatalf("expected no es entries, got %v", got)
	}
}

func TestI18nEnvLinguasOverridesControlFile(t *testing.T) {
	bc, recorder := newTestContext(t)
	setLinguas(t, bc, "es")

	writeFile(t, bc, "po/LINGUAS", past)
	if err := writeLinguas(bc, "fr\n"); err != nil {
		t.Fatalf("write LINGUAS: %v", err)
	}
	writeFile(t, bc, "po/es.po", past)
	writeFile(t, bc, "po/fr.po", past)

	if err := (&I18n{}).Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	compiled := recorder.Named("msgfmt")
	if len(compiled) != 1 || compiled[0].Args[1] != "po/es.po" {
		t.Fatalf("expected only es to be compiled, got %+v", compiled)
	}
}

func TestI18nCompilesEverythingWithoutSelection(t *testing.T) {
	bc, recorder := newTestContext(t)

	writeFile(t, bc, "po/es.po", past)
	writeFile(t, bc, "po/fr.po", past)

	if err := (&I18n{}).Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := len(recorder.Named("msgfmt")); got != 2 {
		t.Fatalf("expected 2 compiled catalogs, got %d", got)
	}
}

func TestI18nUpdatesTemplates(t *testing.T) {
	bc, recorder := newTestContext(t)
	bc.Project.MergePO = true
	bc.Project.BugContact = "bugs@example.org"

	if err := (&I18n{}).Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	updates := recorder.Named("intltool-update")
	if len(updates) != 1 {
		t.Fatalf("expected one template update, got %+v", updates)
	}
	if want := []string{"intltool-update", "-r", "-g", "meld"}; !reflect.DeepEqual(updates[0].Args, want) {
		t.Fatalf("expected %v, got %v", want, updates[0].Args)
	}
	if updates[0].Dir != bc.Abs("po") {
		t.Fatalf("expected update to run in the po dir, got %q", updates[0].Dir)
	}
	if want := []string{"XGETTEXT_ARGS=--msgid-bugs-address=bugs@example.org "}; !reflect.DeepEqual(updates[0].Env, want) {
		t.Fatalf("expected %v, got %v", want, updates[0].Env)
	}
}

func TestI18nRecompilesOnlyNewerCatalogs(t *testing.T) {
	bc, recorder := newTestContext(t)

	writeFile(t, bc, "po/fr.po", past)

	c := &I18n{}
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if got := len(recorder.Named("msgfmt")); got != 1 {
		t.Fatalf("expected first run to compile, got %d", got)
	}
	if !c.MaxPOMtime().Equal(past) {
		t.Fatalf("expected max po mtime %v, got %v", past, c.MaxPOMtime())
	}

	// Equal times do not trigger a rebuild.
	touch(t, bc, "build/mo/fr/LC_MESSAGES/meld.mo", past)
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := len(recorder.Named("msgfmt")); got != 1 {
		t.Fatalf("expected up to date catalog to be skipped, got %d compilations", got)
	}
	if got := filesFor(bc, "share/locale/fr/LC_MESSAGES"); len(got) != 2 {
		t.Fatalf("expected the catalog to be registered on every run, got %v", got)
	}

	touch(t, bc, "po/fr.po", past.Add(time.Hour))
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if got := len(recorder.Named("msgfmt")); got != 2 {
		t.Fatalf("expected newer catalog to be recompiled, got %d compilations", got)
	}
}

func TestI18nMergesTemplatesWithSwitches(t *testing.T) {
	bc, recorder := newTestContext(t)
	bc.Project.SchemasFiles = []resources.Group{{Target: "share/gconf/schemas", Patterns: []string{"data/*.schemas.in"}}}
	bc.Project.KeyFiles = []resources.Group{{Target: "share/mime-info", Patterns: []string{"data/*.keys.in"}}}

	writeFile(t, bc, "po/fr.po", past)
	writeFile(t, bc, "data/org.gnome.meld.desktop.in", past)
	writeFile(t, bc, "data/org.gnome.meld.appdata.xml.in", past)
	writeFile(t, bc, "data/mime/org.gnome.meld.xml.in", past)
	writeFile(t, bc, "data/meld.schemas.in", past)
	writeFile(t, bc, "data/meld.keys.in", past)

	if err := (&I18n{}).Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	merges := [][]string{}
	for _, c := range recorder.Named("intltool-merge") {
		merges = append(merges, c.Args)
	}
	want := [][]string{
		{"intltool-merge", "-x", "po", "data/org.gnome.meld.appdata.xml.in", "build/share/appdata/org.gnome.meld.appdata.xml"},
		{"intltool-merge", "-x", "po", "data/mime/org.gnome.meld.xml.in", "build/share/mime/packages/org.gnome.meld.xml"},
		{"intltool-merge", "-d", "po", "data/org.gnome.meld.desktop.in", "build/share/applications/org.gnome.meld.desktop"},
		{"intltool-merge", "-s", "po", "data/meld.schemas.in", "build/share/gconf/schemas/meld.schemas"},
		{"intltool-merge", "-k", "po", "data/meld.keys.in", "build/share/mime-info/meld.keys"},
	}
	if !reflect.DeepEqual(merges, want) {
		t.Fatalf("expected %v, got %v", want, merges)
	}

	targets := []string{}
	for _, entry := range bc.Manifest.Entries() {
		targets = append(targets, entry.Target)
	}
	wantTargets := []string{
		"share/locale/fr/LC_MESSAGES",
		"share/appdata",
		"share/mime/packages",
		"share/applications",
		"share/gconf/schemas",
		"share/mime-info",
	}
	if !reflect.DeepEqual(targets, wantTargets) {
		t.Fatalf("expected targets %v, got %v", wantTargets, targets)
	}
}

func TestI18nMergeGate(t *testing.T) {
	bc, recorder := newTestContext(t)

	writeFile(t, bc, "po/fr.po", past)
	writeFile(t, bc, "data/org.gnome.meld.desktop.in", past)

	merged := "build/share/applications/org.gnome.meld.desktop"
	c := &I18n{}

	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if got := len(recorder.Named("intltool-merge")); got != 1 {
		t.Fatalf("expected missing merged file to be built, got %d merges", got)
	}

	// Merged output as new as every input is reused but still registered.
	touch(t, bc, merged, past)
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := len(recorder.Named("intltool-merge")); got != 1 {
		t.Fatalf("expected up to date merge to be skipped, got %d merges", got)
	}
	if got := filesFor(bc, "share/applications"); !reflect.DeepEqual(got[len(got)-1], []string{merged}) {
		t.Fatalf("expected stale merged file to be registered, got %v", got)
	}

	touch(t, bc, "po/fr.po", past.Add(time.Minute))
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if got := len(recorder.Named("intltool-merge")); got != 2 {
		t.Fatalf("expected newer catalog to trigger a merge, got %d merges", got)
	}

	touch(t, bc, "po/fr.po", past)
	touch(t, bc, merged, past)
	touch(t, bc, "data/org.gnome.meld.desktop.in", past.Add(time.Minute))
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("fourth run: %v", err)
	}
	if got := len(recorder.Named("intltool-merge")); got != 3 {
		t.Fatalf("expected newer template to trigger a merge, got %d merges", got)
	}
}

func TestI18nUnselectedCatalogsDoNotAffectMergeGate(t *testing.T) {
	bc, recorder := newTestContext(t)
	setLinguas(t, bc, "fr")

	writeFile(t, bc, "po/fr.po", past)
	writeFile(t, bc, "po/es.po", past.Add(time.Hour))
	writeFile(t, bc, "data/org.gnome.meld.desktop.in", past)
	writeFile(t, bc, "build/share/applications/org.gnome.meld.desktop", past)

	c := &I18n{}
	if err := c.Run(context.Background(), bc); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !c.MaxPOMtime().Equal(past) {
		t.Fatalf("expected max po mtime of selected catalogs only, got %v", c.MaxPOMtime())
	}
	if got := len(recorder.Named("intltool-merge")); got != 0 {
		t.Fatalf("expected no merge, got %d", got)
	}
}

func TestI18nAbortsOnToolFailure(t *testing.T) {
	bc, recorder := newTestContext(t)
	failure := &utils.SpawnError{Args: []string{"msgfmt"}, ExitCode: 1}
	recorder.Hooks["msgfmt"] = func(utils.Command) error {
		return failure
	}

	writeFile(t, bc, "po/fr.po", past)
	writeFile(t, bc, "data/org.gnome.meld.desktop.in", past)

	err := (&I18n{}).Run(context.Background(), bc)
	if !errors.Is(err, failure) {
		t.Fatalf("expected spawn failure, got %v", err)
	}
	if got := len(recorder.Named("intltool-merge")); got != 0 {
		t.Fatalf("expected no merge after a failure, got %d", got)
	}
	if bc.Manifest.Len() != 0 {
		t.Fatalf("expected no manifest entries, got %+v", bc.Manifest.Entries())
	}
}

func TestMergedName(t *testing.T) {
	tests := map[string]string{
		"data/org.gnome.meld.desktop.in":     "org.gnome.meld.desktop",
		"data/mime/org.gnome.meld.xml.in":    "org.gnome.meld.xml",
		"data/org.gnome.meld.appdata.xml":    "org.gnome.meld.appdata.xml",
		filepath.Join("data", "inline.in.x"): "inline.in.x",
	}

	for template, want := range tests {
		if got := MergedName(template); got != want {
			t.Fatalf("MergedName(%q): expected %q, got %q", template, want, got)
		}
	}
}
