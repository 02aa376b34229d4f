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

package status

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterTallies(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Page(PageLine{Title: "Home", Action: "Created", IsNew: true})
	r.Page(PageLine{Title: "Guide", Action: "Updated", IsModified: true})
	r.Page(PageLine{Title: "FAQ", Action: "No Change"})
	r.Page(PageLine{Title: "Old Doc", Action: "Orphaned", IsOrphan: true})
	r.Page(PageLine{Title: "Stale", Action: "Deleted", IsRemoved: true})
	r.Page(PageLine{Title: "Broken", Action: "Failed", Detail: "Conflict", IsFailed: true})

	s := r.Summary()
	assert.Equal(t, 1, s.Created)
	assert.Equal(t, 1, s.Updated)
	assert.Equal(t, 1, s.Unchanged)
	assert.Equal(t, 1, s.Orphans)
	assert.Equal(t, 1, s.Deleted)
	assert.Equal(t, 1, s.Failed)
}

func TestReporterLineContent(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Page(PageLine{Title: "Home", Action: "Created", IsNew: true})
	r.Page(PageLine{Title: "Broken", Action: "Failed", Detail: "Conflict", IsFailed: true})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "✓")
	assert.Contains(t, lines[0], "Home")
	assert.Contains(t, lines[0], "Created")

	assert.Contains(t, lines[1], "✗")
	assert.Contains(t, lines[1], "Broken")
	assert.Contains(t, lines[1], "Conflict", "the detail should trail the line")
}

func TestReporterExported(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Exported("Home")
	r.Exported("Guide")

	assert.Equal(t, 2, r.Summary().Exported)
	assert.Contains(t, buf.String(), "Queued For Export")
}

func TestReporterFinish(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		fill func(r *Reporter)
		want string
	}{
		{
			name: "clean_run",
			fill: func(r *Reporter) {
				r.Page(PageLine{Title: "Home", Action: "Created", IsNew: true})
				r.Page(PageLine{Title: "FAQ", Action: "No Change"})
			},
			want: "1 created, 0 updated, 1 unchanged",
		},
		{
			name: "run_with_orphans_warns",
			fill: func(r *Reporter) {
				r.Page(PageLine{Title: "Old", Action: "Orphaned", IsOrphan: true})
			},
			want: "orphaned remote page(s) left in place",
		},
		{
			name: "run_with_failures",
			fill: func(r *Reporter) {
				r.Page(PageLine{Title: "Broken", Action: "Failed", IsFailed: true})
			},
			want: "1 failed",
		},
		{
			name: "export_run",
			fill: func(r *Reporter) {
				r.Exported("Home")
				r.Exported("Guide")
			},
			want: "2 pages exported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporter(&buf)
			tt.fill(r)
			r.Finish("Publish")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
