package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const DefaultPath = "build/data_files.json"

var (
	ErrEmptyTarget = errors.New("could not append data files without a target directory")
)

// Entry maps an installation subdirectory to the files that get copied into it.
type Entry struct {
	Target string   `json:"target"`
	Files  []string `json:"files"`
}

// Manifest is the ordered list of data files consumed by the install step.
// Entries are only ever appended; two entries may share a target.
type Manifest struct {
	entries []Entry
}

func New() *Manifest {
	return &Manifest{}
}

func (m *Manifest) Append(target string, files ...string) error {
	if target == "" {
		return ErrEmptyTarget
	}

	m.entries = append(m.entries, Entry{
		Target: target,
		Files:  append([]string{}, files...),
	})

	return nil
}

func (m *Manifest) Extend(entries ...Entry) error {
	for _, entry := range entries {
		if err := m.Append(entry.Target, entry.Files...); err != nil {
			return err
		}
	}

	return nil
}

func (m *Manifest) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	for i, entry := range m.entries {
		entries[i] = Entry{
			Target: entry.Target,
			Files:  append([]string{}, entry.Files...),
		}
	}

	return entries
}

func (m *Manifest) Len() int {
	return len(m.entries)
}

// Save writes the manifest as JSON, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	entries := m.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	m := New()
	if err := m.Extend(entries...); err != nil {
		return nil, err
	}

	return m, nil
}
