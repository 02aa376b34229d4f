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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNav(t *testing.T) {
	data := []byte(`
nav:
  - Home: index.md
  - User Guide:
      - Installation: guide/install.md
      - Usage: guide/usage.md
  - FAQ: faq.md
`)

	entries, err := ParseNav(data)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, NavEntry{Title: "Home", Path: "index.md"}, entries[0])
	assert.Equal(t, "User Guide", entries[1].Title)
	assert.Empty(t, entries[1].Path, "section entries carry no document path")
	require.Len(t, entries[1].Children, 2)
	assert.Equal(t, "guide/install.md", entries[1].Children[0].Path)
	assert.Equal(t, NavEntry{Title: "FAQ", Path: "faq.md"}, entries[2])
}

func TestParseNavErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing_nav_key",
			data: "pages:\n  - Home: index.md\n",
		},
		{
			name: "nav_is_not_a_list",
			data: "nav:\n  Home: index.md\n",
		},
		{
			name: "entry_with_two_keys",
			data: "nav:\n  - Home: index.md\n    FAQ: faq.md\n",
		},
		{
			name: "entry_maps_to_mapping",
			data: "nav:\n  - Home:\n      path: index.md\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNav([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoadNav(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nav:\n  - Home: index.md\n"), 0o644))

	entries, err := LoadNav(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Home", entries[0].Title)

	_, err = LoadNav(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err, "missing nav file should fail")
}
