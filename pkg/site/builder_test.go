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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/render"
	"gitlab.com/tozd/go/errors"
)

// failingRenderer fails on demand so render error paths can be exercised
type failingRenderer struct {
	err error
}

func (r *failingRenderer) Render(ctx context.Context, source []byte) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return string(source), nil
}

// writeDocs lays out a docs tree in a temp dir
func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestBuildTree(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"index.md":         "# Home\n\nwelcome\n",
		"guide/install.md": "# Install\n\nsteps\n",
		"guide/usage.md":   "# Usage\n\nexamples\n",
	})

	nav := []NavEntry{
		{Title: "Home", Path: "index.md"},
		{Title: "User Guide", Children: []NavEntry{
			{Title: "Installation", Path: "guide/install.md"},
			{Title: "Usage", Path: "guide/usage.md"},
		}},
	}

	tree, err := Build(context.Background(), nav, BuildOptions{
		DocsDir:  docs,
		Renderer: render.NewMarkdown(),
	})
	require.NoError(t, err)

	var titles []string
	require.NoError(t, tree.Walk(func(idx int, n *page.Node) error {
		titles = append(titles, n.Title)
		return nil
	}))
	assert.Equal(t, []string{"Home", "User Guide", "Installation", "Usage"}, titles,
		"tree order should follow nav order, parents first")

	home := tree.Node(0)
	assert.Contains(t, home.Body, "<h1>Home</h1>", "markdown headings should render")
	assert.Contains(t, home.Body, "<p>welcome</p>")
	assert.Equal(t, "index.md", home.SourcePath)

	section := tree.Node(1)
	assert.Empty(t, section.Body, "section pages have no source document")
}

func TestBuildMissingDocument(t *testing.T) {
	docs := writeDocs(t, map[string]string{"index.md": "# Home\n"})

	nav := []NavEntry{
		{Title: "Home", Path: "index.md"},
		{Title: "Ghost", Path: "ghost.md"},
	}

	_, err := Build(context.Background(), nav, BuildOptions{DocsDir: docs, Renderer: &failingRenderer{}})
	require.Error(t, err)

	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "Ghost", structErr.Title)
}

func TestBuildDuplicateSiblingTitle(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"a.md": "a\n",
		"b.md": "b\n",
	})

	nav := []NavEntry{
		{Title: "Page", Path: "a.md"},
		{Title: "Page", Path: "b.md"},
	}

	_, err := Build(context.Background(), nav, BuildOptions{DocsDir: docs, Renderer: &failingRenderer{}})
	require.Error(t, err)

	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "Page", structErr.Title)
}

func TestBuildEntryWithoutTitleOrContent(t *testing.T) {
	tests := []struct {
		name string
		nav  []NavEntry
	}{
		{
			name: "no_title",
			nav:  []NavEntry{{Path: "index.md"}},
		},
		{
			name: "no_document_and_no_children",
			nav:  []NavEntry{{Title: "Empty Section"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.nav, BuildOptions{DocsDir: t.TempDir(), Renderer: &failingRenderer{}})
			require.Error(t, err)

			var structErr *StructureError
			assert.ErrorAs(t, err, &structErr)
		})
	}
}

func TestBuildRenderFailure(t *testing.T) {
	docs := writeDocs(t, map[string]string{"index.md": "# Home\n"})

	base := errors.New("bad markup")
	_, err := Build(context.Background(), []NavEntry{{Title: "Home", Path: "index.md"}}, BuildOptions{
		DocsDir:  docs,
		Renderer: &failingRenderer{err: base},
	})
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "Home", renderErr.Title)
	assert.Equal(t, "index.md", renderErr.Path)
	assert.ErrorIs(t, err, base, "render errors must unwrap to the renderer's error")
}

func TestBuildExcludePatterns(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"index.md":       "home\n",
		"drafts/wip.md":  "draft\n",
		"guide/usage.md": "usage\n",
	})

	nav := []NavEntry{
		{Title: "Home", Path: "index.md"},
		{Title: "WIP", Path: "drafts/wip.md"},
		{Title: "Usage", Path: "guide/usage.md"},
	}

	tree, err := Build(context.Background(), nav, BuildOptions{
		DocsDir:         docs,
		Renderer:        &failingRenderer{},
		ExcludePatterns: []string{"drafts/**"},
	})
	require.NoError(t, err)

	_, ok := tree.Titles()["WIP"]
	assert.False(t, ok, "excluded entry should not appear in the tree")
	assert.Equal(t, 2, tree.Len())
}

func TestBuildDiscoversAttachments(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"guide/usage.md":   "usage\n",
		"guide/shot.png":   "pngdata",
		"guide/diagram.md": "not an attachment\n",
		"guide/extra.gif":  "gifdata",
	})

	nav := []NavEntry{
		{Title: "Usage", Path: "guide/usage.md"},
	}

	tree, err := Build(context.Background(), nav, BuildOptions{
		DocsDir:            docs,
		Renderer:           &failingRenderer{},
		AttachmentPatterns: []string{"*.png", "*.gif"},
	})
	require.NoError(t, err)

	usage := tree.Node(0)
	require.Len(t, usage.Attachments, 2)
	names := []string{usage.Attachments[0].Filename, usage.Attachments[1].Filename}
	assert.ElementsMatch(t, []string{"shot.png", "extra.gif"}, names)
	for _, a := range usage.Attachments {
		assert.NotEmpty(t, a.Content, "attachment content should be loaded")
	}
}
