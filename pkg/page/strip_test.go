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

package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLeadingH1(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "sole_leading_h1_stripped",
			body: "<h1>Home</h1>\n<p>welcome</p>",
			want: "<p>welcome</p>",
		},
		{
			name: "h1_with_attributes_stripped",
			body: `<h1 id="home">Home</h1><p>welcome</p>`,
			want: "<p>welcome</p>",
		},
		{
			name: "leading_whitespace_before_h1",
			body: "\n\n  <h1>Home</h1>\n<p>welcome</p>",
			want: "<p>welcome</p>",
		},
		{
			name: "two_h1_headings_unchanged",
			body: "<h1>Home</h1>\n<p>a</p>\n<h1>Again</h1>",
			want: "<h1>Home</h1>\n<p>a</p>\n<h1>Again</h1>",
		},
		{
			name: "content_before_h1_unchanged",
			body: "<p>intro</p>\n<h1>Home</h1>",
			want: "<p>intro</p>\n<h1>Home</h1>",
		},
		{
			name: "no_h1_unchanged",
			body: "<h2>Section</h2>\n<p>a</p>",
			want: "<h2>Section</h2>\n<p>a</p>",
		},
		{
			name: "unclosed_h1_unchanged",
			body: "<h1>Home\n<p>welcome</p>",
			want: "<h1>Home\n<p>welcome</p>",
		},
		{
			name: "empty_body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLeadingH1(tt.body))
		})
	}
}
