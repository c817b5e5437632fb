// Package manifest reads the generated JSON index of CLI commands.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// FileName is the fixed relative path of the command index, generated next
// to the binary at build time.
const FileName = "cli.manifest.json"

var (
	// ErrNotFound is returned when no manifest file exists.
	ErrNotFound = errors.New("manifest not found")
	// ErrNoCommands is returned when the manifest lacks a commands section.
	ErrNoCommands = errors.New("manifest has no commands section")
)

// Command is the metadata recorded for a single command.
type Command struct {
	Description string   `mapstructure:"description"`
	Usage       string   `mapstructure:"usage"`
	Aliases     []string `mapstructure:"aliases"`
	Hidden      bool     `mapstructure:"hidden"`
}

// Manifest is the decoded command index.
type Manifest struct {
	Version  string             `json:"version,omitempty"`
	Commands map[string]Command `json:"-"`
}

// Load reads and decodes the manifest at path. An empty path reads the
// default FileName from the working directory.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Manifest, error) {
	var raw struct {
		Version  string                    `json:"version"`
		Commands map[string]map[string]any `json:"commands"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Commands == nil {
		return nil, ErrNoCommands
	}

	m := &Manifest{
		Version:  raw.Version,
		Commands: make(map[string]Command, len(raw.Commands)),
	}
	for name, meta := range raw.Commands {
		var cmd Command
		if err := mapstructure.Decode(meta, &cmd); err != nil {
			return nil, fmt.Errorf("decode command %s: %w", name, err)
		}
		m.Commands[name] = cmd
	}
	return m, nil
}

// CommandNames returns the declared command names in sorted order.
func (m *Manifest) CommandNames() []string {
	names := make([]string, 0, len(m.Commands))
	for name := range m.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
