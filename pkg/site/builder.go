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
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/render"
	"gitlab.com/tozd/go/errors"
)

// StructureError reports a malformed navigation entry. It is always
// fatal and raised before any rendering side effects survive.
type StructureError struct {
	Title  string
	Parent string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("nav entry %q: %s", e.Title, e.Reason)
	}
	return fmt.Sprintf("nav entry %q under %q: %s", e.Title, e.Parent, e.Reason)
}

// RenderError reports a failure rendering one source document. The
// build stops; no partial tree is returned.
type RenderError struct {
	Title string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %q (%s): %v", e.Title, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// 🔧 BuildOptions configure tree construction
type BuildOptions struct {
	// DocsDir is the root directory source document paths resolve
	// against.
	DocsDir string
	// Renderer turns source documents into storage bodies.
	Renderer render.Renderer
	// AttachmentPatterns are doublestar globs matched against filenames
	// in each document's directory; matches become page attachments.
	AttachmentPatterns []string
	// ExcludePatterns are doublestar globs matched against nav document
	// paths; matching entries (and their children) are skipped.
	ExcludePatterns []string
}

// 🏗️ Build walks the navigation specification and produces the page
// forest. Construction is pure aside from reading source documents: a
// missing document or duplicate sibling title fails with
// *StructureError, a renderer failure with *RenderError, and in either
// case no tree is returned.
func Build(ctx context.Context, nav []NavEntry, opts BuildOptions) (*page.Tree, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}

	tree := page.NewTree()
	if err := buildLevel(ctx, tree, page.NoParent, "", nav, opts); err != nil {
		return nil, err
	}

	logger.Debug().Int("pages", tree.Len()).Msg("built site tree")
	return tree, nil
}

func buildLevel(ctx context.Context, tree *page.Tree, parent int, parentTitle string, entries []NavEntry, opts BuildOptions) error {
	for _, entry := range entries {
		if entry.Title == "" {
			return &StructureError{Parent: parentTitle, Reason: "entry has no title"}
		}
		if entry.Path == "" && len(entry.Children) == 0 {
			return &StructureError{Title: entry.Title, Parent: parentTitle, Reason: "entry has neither a document nor children"}
		}
		if excluded(entry.Path, opts.ExcludePatterns) {
			zerolog.Ctx(ctx).Debug().Str("title", entry.Title).Str("path", entry.Path).Msg("nav entry excluded by pattern")
			continue
		}

		node := page.Node{Title: entry.Title}
		if entry.Path != "" {
			abs := filepath.Join(opts.DocsDir, filepath.FromSlash(entry.Path))
			source, err := os.ReadFile(abs)
			if err != nil {
				return &StructureError{Title: entry.Title, Parent: parentTitle, Reason: fmt.Sprintf("source document %s not readable: %v", entry.Path, err)}
			}

			body, err := opts.Renderer.Render(ctx, source)
			if err != nil {
				return &RenderError{Title: entry.Title, Path: entry.Path, Err: err}
			}
			node.Body = body
			node.SourcePath = entry.Path

			attachments, err := discoverAttachments(filepath.Dir(abs), opts.AttachmentPatterns)
			if err != nil {
				return errors.Errorf("discovering attachments for %q: %w", entry.Title, err)
			}
			node.Attachments = attachments
		}

		idx, err := tree.Add(parent, node)
		if err != nil {
			return &StructureError{Title: entry.Title, Parent: parentTitle, Reason: err.Error()}
		}

		if err := buildLevel(ctx, tree, idx, entry.Title, entry.Children, opts); err != nil {
			return err
		}
	}
	return nil
}

// discoverAttachments collects files in the document's directory whose
// names match any attachment pattern.
func discoverAttachments(dir string, patterns []string) ([]page.Attachment, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	var attachments []page.Attachment
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if !matchesAny(de.Name(), patterns) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, errors.Errorf("reading attachment %s: %w", de.Name(), err)
		}
		attachments = append(attachments, page.Attachment{Filename: de.Name(), Content: data})
	}
	return attachments, nil
}

func excluded(path string, patterns []string) bool {
	if path == "" {
		return false
	}
	return matchesAny(path, patterns)
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
