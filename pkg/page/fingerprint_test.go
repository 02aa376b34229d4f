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

func TestFingerprintDeterminism(t *testing.T) {
	body := "<p>hello world</p>\n<p>second paragraph</p>"

	assert.Equal(t, Fingerprint(body), Fingerprint(body), "same body must hash identically")
	assert.NotEqual(t, Fingerprint(body), Fingerprint(body+"!"), "any byte change must change the fingerprint")
}

func TestFingerprintNormalization(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "line_ending_flavor",
			a:    "<p>a</p>\n<p>b</p>",
			b:    "<p>a</p>\r\n<p>b</p>",
			same: true,
		},
		{
			name: "trailing_whitespace",
			a:    "<p>a</p>  \n<p>b</p>\t",
			b:    "<p>a</p>\n<p>b</p>",
			same: true,
		},
		{
			name: "surrounding_blank_lines",
			a:    "\n\n<p>a</p>\n\n",
			b:    "<p>a</p>",
			same: true,
		},
		{
			name: "real_content_change",
			a:    "<p>a</p>",
			b:    "<p>b</p>",
			same: false,
		},
		{
			name: "internal_whitespace_is_content",
			a:    "<p>a b</p>",
			b:    "<p>a  b</p>",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.same {
				assert.Equal(t, Fingerprint(tt.a), Fingerprint(tt.b))
			} else {
				assert.NotEqual(t, Fingerprint(tt.a), Fingerprint(tt.b))
			}
		})
	}
}

func TestNodeFingerprintCached(t *testing.T) {
	n := &Node{Title: "Home", Body: "<p>content</p>"}

	first := n.Fingerprint()
	assert.Equal(t, Fingerprint("<p>content</p>"), first, "node fingerprint should match the free function")
	assert.Equal(t, first, n.Fingerprint(), "second call should return the cached value")
}
