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

// 📎 Attachment is a file associated with a page, uploaded alongside it
type Attachment struct {
	Filename string // Name of the attachment file
	Content  []byte // Raw attachment bytes, written/uploaded verbatim
}

// 📄 Node is one documentation page. Nodes are built once from the
// navigation snapshot and are read-only during reconciliation.
type Node struct {
	Title       string       // Page title, unique among siblings
	Body        string       // Rendered storage-format body
	SourcePath  string       // Path of the source document (empty for section pages)
	Attachments []Attachment // Files owned by this page

	// arena links, managed by Tree
	parent   int   // index of parent node, -1 for roots
	children []int // child indices in navigation order

	// cached fingerprint of Body, computed on demand
	fp string
}

// IsRoot reports whether this node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent < 0
}
