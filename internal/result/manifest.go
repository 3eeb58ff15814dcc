package result

import (
	"fmt"
	"os"
)

// DefaultManifest is the list of pose files produced by a generation run.
const DefaultManifest = "generated_files.txt"

// Manifest is a newline-delimited list of generated filenames. It is
// truncated on creation; every Append is written through immediately so a
// failed batch leaves the lines produced so far.
type Manifest struct {
	f     *os.File
	lines int
}

func CreateManifest(path string) (*Manifest, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating manifest: %w", err)
	}
	return &Manifest{f: f}, nil
}

func (m *Manifest) Append(name string) error {
	if _, err := m.f.WriteString(name + "\n"); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	m.lines++
	return nil
}

func (m *Manifest) Lines() int { return m.lines }

func (m *Manifest) Name() string { return m.f.Name() }

func (m *Manifest) Close() error {
	return m.f.Close()
}
