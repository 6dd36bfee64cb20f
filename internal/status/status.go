// Package status reports how complete the text catalogs of a project are.
package status

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pojntfx/buildextra/pkg/linguas"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Report struct {
	Domain  string         `json:"domain"`
	Locales []LocaleStatus `json:"locales"`
}

type LocaleStatus struct {
	Locale     string  `json:"locale"`
	Name       string  `json:"name"`
	Counts     Counts  `json:"counts"`
	Total      int     `json:"total"`
	Completion float64 `json:"completion"`
}

// Build counts the messages of every selected PO file in poDir.
func Build(domain, poDir string, selected []string) (Report, error) {
	poFiles, err := filepath.Glob(filepath.Join(poDir, "*.po"))
	if err != nil {
		return Report{}, err
	}

	statuses := []LocaleStatus{}
	for _, poFile := range poFiles {
		locale := strings.TrimSuffix(filepath.Base(poFile), ".po")
		if !linguas.Selected(selected, locale) {
			continue
		}

		f, err := os.Open(poFile)
		if err != nil {
			return Report{}, err
		}

		counts, err := CountPO(f)
		_ = f.Close()
		if err != nil {
			return Report{}, fmt.Errorf("read %s: %w", poFile, err)
		}

		statuses = append(statuses, LocaleStatus{
			Locale:     locale,
			Name:       DisplayName(locale),
			Counts:     counts,
			Total:      counts.Total(),
			Completion: percent(counts.Translated, counts.Total()),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Locale < statuses[j].Locale
	})

	return Report{Domain: domain, Locales: statuses}, nil
}

// DisplayName returns the English name of a gettext locale such as pt_BR, or
// the locale itself if it is not a valid language tag.
func DisplayName(locale string) string {
	code, _, _ := strings.Cut(locale, "@")

	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return locale
	}

	name := display.English.Tags().Name(tag)
	if name == "" {
		return locale
	}

	return name
}

func WriteJSON(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func WriteMarkdown(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	var b strings.Builder
	b.WriteString("# Translation status\n\n")
	b.WriteString("Domain: `")
	b.WriteString(rep.Domain)
	b.WriteString("`.\n\n")
	b.WriteString("| Locale | Language | Translated | Fuzzy | Untranslated | Completion |\n")
	b.WriteString("| --- | --- | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		b.WriteString(fmt.Sprintf("| `%s` | %s | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.Name, locale.Counts.Translated, locale.Counts.Fuzzy, locale.Counts.Untranslated, locale.Completion))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}

	value := float64(numerator) * 100 / float64(denominator)

	return math.Round(value*10) / 10
}
