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
	"regexp"
	"strings"
)

var (
	h1Open  = regexp.MustCompile(`(?i)<h1(\s[^>]*)?>`)
	h1Close = regexp.MustCompile(`(?i)</h1\s*>`)
)

// ✂️ StripLeadingH1 removes a leading H1 heading from a rendered body.
// The heading is only stripped when it is the sole H1 in the body and
// nothing but whitespace precedes it; a body with two H1 headings, or
// with content before the first one, is returned unchanged. Confluence
// already renders the page title above the content, so a single leading
// H1 would show the title twice.
func StripLeadingH1(body string) string {
	opens := h1Open.FindAllStringIndex(body, -1)
	if len(opens) != 1 {
		return body
	}
	open := opens[0]
	if strings.TrimSpace(body[:open[0]]) != "" {
		return body
	}
	end := h1Close.FindStringIndex(body[open[1]:])
	if end == nil {
		return body
	}
	return strings.TrimLeft(body[open[1]+end[1]:], "\n\r\t ")
}
