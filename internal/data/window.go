package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowEntry describes one window opened at startup.
type WindowEntry struct {
	Title  string `yaml:"title"`
	XPos   uint16 `yaml:"x"`
	YPos   uint16 `yaml:"y"`
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
}

type windowListFile struct {
	Windows []WindowEntry `yaml:"windows"`
}

// WindowTable is the ordered list of startup windows.
type WindowTable struct {
	entries []WindowEntry
}

// LoadWindowTable loads windows.yaml.
func LoadWindowTable(path string) (*WindowTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read window list: %w", err)
	}
	return ParseWindowTable(raw)
}

// ParseWindowTable decodes a window list. Entries with a zero size are
// rejected; missing titles get a numbered default.
func ParseWindowTable(raw []byte) (*WindowTable, error) {
	var f windowListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse window list: %w", err)
	}
	for i := range f.Windows {
		e := &f.Windows[i]
		if e.Width == 0 || e.Height == 0 {
			return nil, fmt.Errorf("window list entry %d (%q): width and height must be > 0", i, e.Title)
		}
		if e.Title == "" {
			e.Title = fmt.Sprintf("GojoWindow %d", i+1)
		}
	}
	return &WindowTable{entries: f.Windows}, nil
}

// All returns the entries in file order.
func (t *WindowTable) All() []WindowEntry {
	return t.entries
}

// Count returns the total number of windows loaded.
func (t *WindowTable) Count() int {
	return len(t.entries)
}
