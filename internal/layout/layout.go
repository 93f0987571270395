// Package layout persists the boxes of a board and the surface they sit on.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/geom"
)

// Layout is the persisted form of a board.
type Layout struct {
	Surface geom.Size `yaml:"surface" json:"surface"`
	Boxes   []Entry   `yaml:"boxes" json:"boxes"`
}

// Entry is one persisted box.
type Entry struct {
	ID      string      `yaml:"id" json:"id"`
	Options box.Options `yaml:"options" json:"options"`
}

// UnmarshalYAML decodes an entry on top of box.DefaultOptions so that omitted
// options keep their defaults.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		ID      string      `yaml:"id"`
		Options box.Options `yaml:"options"`
	}{Options: box.DefaultOptions()}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	e.ID, e.Options = raw.ID, raw.Options
	return nil
}

// Validate checks ids are present and unique and every box is valid.
func (l Layout) Validate() error {
	seen := make(map[string]bool, len(l.Boxes))
	for i, e := range l.Boxes {
		if e.ID == "" {
			return fmt.Errorf("box %d: id is required", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("box %q: duplicate id", e.ID)
		}
		seen[e.ID] = true
		if err := e.Options.Validate(); err != nil {
			return fmt.Errorf("box %q: %w", e.ID, err)
		}
	}
	if l.Surface.W < 0 || l.Surface.H < 0 {
		return fmt.Errorf("surface size must be >= 0")
	}
	return nil
}

// Load reads a layout from disk. Missing files return an empty layout.
func Load(path string) (Layout, error) {
	var l Layout
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return l, err
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Save writes a layout to disk, creating parent directories as needed.
func Save(path string, l Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
