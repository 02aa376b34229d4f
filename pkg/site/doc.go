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

/*
Package site builds the page forest from a navigation specification.

	+----------+     +-----------+
	| nav file |     | docs dir  |
	| (YAML)   |     | (sources) |
	+----+-----+     +-----+-----+
	     |                 |
	     +--------+--------+
	              |
	       +------+------+
	       |    Build    |
	       | (+Renderer) |
	       +------+------+
	              |
	          page.Tree

🎯 Purpose:
- Parses mkdocs-style navigation files into ordered entries
- Renders each source document through the configured Renderer
- Discovers attachments next to source documents via glob patterns

⚡ Key Responsibilities:
- Structural validation: missing documents, empty entries and duplicate
  sibling titles fail with *StructureError before any tree is returned
- Renderer failures surface as *RenderError; no partial trees escape
*/
package site
