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

package render

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gitlab.com/tozd/go/errors"
)

// 🖋️ Renderer turns a source document into a storage-format body. The
// site builder only depends on this interface; the goldmark renderer
// below is the default the CLI wires in.
type Renderer interface {
	// Render converts raw source bytes into the target markup body.
	Render(ctx context.Context, source []byte) (string, error)
}

// 🏭 NewMarkdown creates the default Markdown renderer, producing XHTML
// suitable for a Confluence storage body.
func NewMarkdown() Renderer {
	return &markdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

type markdownRenderer struct {
	md goldmark.Markdown
}

func (r *markdownRenderer) Render(ctx context.Context, source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", errors.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
