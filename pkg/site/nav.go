// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package site

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🗺️ NavEntry is one ordered entry of the navigation specification:
// either a document page (Path set) or a section grouping children
// (Path empty). Order is display order.
type NavEntry struct {
	Title    string
	Path     string
	Children []NavEntry
}

// navFile is the on-disk shape of a nav file: a `nav:` key holding a
// mkdocs-style list of single-key mappings.
type navFile struct {
	Nav yaml.Node `yaml:"nav"`
}

// 📖 LoadNav reads a YAML navigation file. Supported entry shapes,
// matching mkdocs.yml conventions:
//
//	nav:
//	  - Home: index.md
//	  - User Guide:
//	      - Installation: guide/install.md
//	      - Usage: guide/usage.md
func LoadNav(path string) ([]NavEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading nav file: %w", err)
	}
	return ParseNav(data)
}

// ParseNav parses navigation entries from raw YAML.
func ParseNav(data []byte) ([]NavEntry, error) {
	var f navFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Errorf("parsing nav file: %w", err)
	}
	if f.Nav.Kind == 0 {
		return nil, errors.New("nav file has no nav key")
	}
	return parseEntries(&f.Nav)
}

func parseEntries(list *yaml.Node) ([]NavEntry, error) {
	if list.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("nav entries must be a list, got %s at line %d", kindName(list.Kind), list.Line)
	}

	entries := make([]NavEntry, 0, len(list.Content))
	for _, item := range list.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, errors.Errorf("nav entry at line %d must be a single `title: value` mapping", item.Line)
		}
		key, value := item.Content[0], item.Content[1]

		entry := NavEntry{Title: key.Value}
		switch value.Kind {
		case yaml.ScalarNode:
			entry.Path = value.Value
		case yaml.SequenceNode:
			children, err := parseEntries(value)
			if err != nil {
				return nil, err
			}
			entry.Children = children
		default:
			return nil, errors.Errorf("nav entry %q at line %d must map to a document path or a list", entry.Title, item.Line)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}
