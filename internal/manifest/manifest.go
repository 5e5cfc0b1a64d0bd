package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the manifest file at the project root.
const FileName = "package.json"

// Dependency sections of the manifest.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
)

// Manifest is the authoritative in-memory copy of a project's package.json.
// It is read once per run and shared by every stage that mutates it; Save
// only touches the disk when something changed since the last write.
type Manifest struct {
	path   string
	doc    *Document
	dirty  bool
	writes int
}

// Path returns the manifest path for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidManifest, path, result.Summary())
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Manifest{path: path, doc: doc}, nil
}

// Name returns the project name field.
func (m *Manifest) Name() string {
	name, _ := m.doc.String("name")
	return name
}

// SetName sets the project name field.
func (m *Manifest) SetName(name string) {
	if current, ok := m.doc.String("name"); ok && current == name {
		return
	}
	m.doc.SetString("name", name)
	m.dirty = true
}

// SetDependency adds or replaces a runtime dependency.
func (m *Manifest) SetDependency(name, constraint string) error {
	return m.setEntry(SectionDependencies, name, constraint)
}

// SetDevDependency adds or replaces a development dependency.
func (m *Manifest) SetDevDependency(name, constraint string) error {
	return m.setEntry(SectionDevDependencies, name, constraint)
}

func (m *Manifest) setEntry(section, name, constraint string) error {
	for _, e := range m.doc.Entries(section) {
		if e.Key == name && e.Value == constraint {
			return nil
		}
	}
	if err := m.doc.SetEntry(section, name, constraint); err != nil {
		return fmt.Errorf("setting %s.%s: %w", section, name, err)
	}
	m.dirty = true
	return nil
}

// Dependencies returns the runtime dependencies in manifest order.
func (m *Manifest) Dependencies() []Entry {
	return m.doc.Entries(SectionDependencies)
}

// DevDependencies returns the development dependencies in manifest order.
func (m *Manifest) DevDependencies() []Entry {
	return m.doc.Entries(SectionDevDependencies)
}

// Dirty reports whether the document changed since it was loaded or last saved.
func (m *Manifest) Dirty() bool { return m.dirty }

// Writes reports how many times Save wrote the file.
func (m *Manifest) Writes() int { return m.writes }

// Bytes returns the encoded document.
func (m *Manifest) Bytes() []byte { return m.doc.Encode() }

// Save writes the document back to its file when it is dirty. It reports
// whether a write happened. The file keeps its permission bits.
func (m *Manifest) Save() (bool, error) {
	if !m.dirty {
		return false, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(m.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(m.path, m.doc.Encode(), mode); err != nil {
		return false, fmt.Errorf("writing manifest %s: %w", m.path, err)
	}
	m.dirty = false
	m.writes++
	return true, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
