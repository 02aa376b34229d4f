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

package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/confsync/pkg/page"
	"gitlab.com/tozd/go/errors"
)

// pageMetadata is the per-page descriptor written next to page.html
type pageMetadata struct {
	Title       string   `json:"title"`
	Parent      string   `json:"parent"`
	Space       string   `json:"space"`
	Attachments []string `json:"attachments"`
	Children    []string `json:"children"`
}

// rootMetadata is the export-level descriptor written at the root
type rootMetadata struct {
	Space      string   `json:"space"`
	ExportDate string   `json:"export_date"`
	TotalPages int      `json:"total_pages"`
	RootPages  []string `json:"root_pages"`
}

// 💾 Exporter serializes a page forest to a directory layout: one
// directory per page (title sanitized for the filesystem) holding
// page.html, metadata.json and an attachments/ subdirectory, nested to
// mirror the navigation hierarchy.
//
// Re-running over an unchanged tree rewrites byte-identical files.
// Stale directories from a previous export with a different tree shape
// are left in place; deleting them silently would turn a misconfigured
// rerun into data loss.
type Exporter struct {
	root  string
	space string

	// now is swappable so exports are reproducible under test
	now func() time.Time

	// filter, when set, transforms each body before it is written;
	// the executor wires the H1 strip pre-pass through here so exported
	// bodies match what reconciliation compares
	filter func(string) string
}

// 🏭 New creates an exporter rooted at the destination directory
func New(root, space string) *Exporter {
	return &Exporter{
		root:  filepath.Clean(root),
		space: space,
		now:   time.Now,
	}
}

// Export writes the whole forest plus the root descriptor.
func (e *Exporter) Export(ctx context.Context, tree *page.Tree) error {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(e.root, 0755); err != nil {
		return errors.Errorf("creating export root: %w", err)
	}

	for _, r := range tree.Roots() {
		if err := e.exportSubtree(ctx, tree, r, e.root); err != nil {
			return err
		}
	}

	if err := e.Finish(ctx, tree); err != nil {
		return err
	}

	logger.Info().Int("pages", tree.Len()).Str("dir", e.root).Msg("export complete")
	return nil
}

// ExportPage writes a single page's directory (without descending into
// children); used by executors that want per-page progress reporting.
func (e *Exporter) ExportPage(ctx context.Context, tree *page.Tree, idx int) error {
	dir := e.root
	for _, anc := range tree.Ancestors(idx) {
		dir = filepath.Join(dir, SanitizeTitle(tree.Node(anc).Title))
	}
	dir = filepath.Join(dir, SanitizeTitle(tree.Node(idx).Title))
	return e.writePage(tree, idx, dir)
}

// Finish writes the root descriptor after per-page exports.
func (e *Exporter) Finish(ctx context.Context, tree *page.Tree) error {
	rootTitles := make([]string, 0, len(tree.Roots()))
	for _, r := range tree.Roots() {
		rootTitles = append(rootTitles, tree.Node(r).Title)
	}
	meta := rootMetadata{
		Space:      e.space,
		ExportDate: e.now().UTC().Format(time.RFC3339),
		TotalPages: tree.Len(),
		RootPages:  rootTitles,
	}
	return e.writeJSON(filepath.Join(e.root, "metadata.json"), meta)
}

func (e *Exporter) exportSubtree(ctx context.Context, tree *page.Tree, idx int, parentDir string) error {
	dir := filepath.Join(parentDir, SanitizeTitle(tree.Node(idx).Title))
	if err := e.writePage(tree, idx, dir); err != nil {
		return err
	}
	for _, c := range tree.Children(idx) {
		if err := e.exportSubtree(ctx, tree, c, dir); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writePage(tree *page.Tree, idx int, dir string) error {
	n := tree.Node(idx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating page directory for %q: %w", n.Title, err)
	}

	body := n.Body
	if e.filter != nil {
		body = e.filter(body)
	}
	if err := e.writeFileAtomic(filepath.Join(dir, "page.html"), []byte(body)); err != nil {
		return errors.Errorf("writing body for %q: %w", n.Title, err)
	}

	attachmentNames := make([]string, 0, len(n.Attachments))
	for _, a := range n.Attachments {
		attachmentNames = append(attachmentNames, a.Filename)
	}
	childTitles := make([]string, 0, len(tree.Children(idx)))
	for _, c := range tree.Children(idx) {
		childTitles = append(childTitles, tree.Node(c).Title)
	}

	meta := pageMetadata{
		Title:       n.Title,
		Parent:      tree.ParentTitle(idx),
		Space:       e.space,
		Attachments: attachmentNames,
		Children:    childTitles,
	}
	if err := e.writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return errors.Errorf("writing metadata for %q: %w", n.Title, err)
	}

	if len(n.Attachments) > 0 {
		attachDir := filepath.Join(dir, "attachments")
		if err := os.MkdirAll(attachDir, 0755); err != nil {
			return errors.Errorf("creating attachments directory for %q: %w", n.Title, err)
		}
		for _, a := range n.Attachments {
			if err := e.writeFileAtomic(filepath.Join(attachDir, SanitizeTitle(a.Filename)), a.Content); err != nil {
				return errors.Errorf("writing attachment %s for %q: %w", a.Filename, n.Title, err)
			}
		}
	}

	return nil
}

func (e *Exporter) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return e.writeFileAtomic(path, append(data, '\n'))
}

// writeFileAtomic writes through a temp file and renames into place
func (e *Exporter) writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// SetClock overrides the timestamp source for the root descriptor.
func (e *Exporter) SetClock(now func() time.Time) {
	e.now = now
}

// SetBodyFilter installs a body transform applied to every page body
// before it is written.
func (e *Exporter) SetBodyFilter(filter func(string) string) {
	e.filter = filter
}

// 🧹 SanitizeTitle maps a page title onto a safe directory name,
// replacing filesystem-illegal characters with underscores.
func SanitizeTitle(title string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, title)
	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		return "_"
	}
	return sanitized
}
