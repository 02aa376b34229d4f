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
	"gitlab.com/tozd/go/errors"
)

// NoParent marks a node added at the root level of the tree.
const NoParent = -1

// 🌳 Tree is an arena of page nodes. Parent links are indices into the
// arena rather than pointers, so the structure is acyclic by
// construction and traversal order is a pure function of insertion
// order.
type Tree struct {
	nodes []Node
	roots []int
}

// 🏭 NewTree creates an empty page tree
func NewTree() *Tree {
	return &Tree{}
}

// ➕ Add inserts a node under the given parent index (NoParent for a
// root) and returns its arena index. Fails if a sibling under the same
// parent already carries the same title.
func (t *Tree) Add(parent int, n Node) (int, error) {
	if parent != NoParent && (parent < 0 || parent >= len(t.nodes)) {
		return 0, errors.Errorf("parent index %d out of range", parent)
	}

	for _, sib := range t.siblings(parent) {
		if t.nodes[sib].Title == n.Title {
			return 0, errors.Errorf("duplicate sibling title %q under %q", n.Title, t.parentTitle(parent))
		}
	}

	n.parent = parent
	n.children = nil
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)

	if parent == NoParent {
		t.roots = append(t.roots, idx)
	} else {
		t.nodes[parent].children = append(t.nodes[parent].children, idx)
	}
	return idx, nil
}

// Len returns the number of pages in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at the given arena index.
func (t *Tree) Node(idx int) *Node {
	return &t.nodes[idx]
}

// Roots returns the arena indices of the root-level pages in
// navigation order.
func (t *Tree) Roots() []int {
	return t.roots
}

// Children returns the arena indices of a node's children in
// navigation order.
func (t *Tree) Children(idx int) []int {
	return t.nodes[idx].children
}

// ParentTitle returns the title of a node's parent, or "" for roots.
func (t *Tree) ParentTitle(idx int) string {
	return t.parentTitle(t.nodes[idx].parent)
}

// Ancestors returns the arena indices of a node's ancestors,
// root-first, excluding the node itself.
func (t *Tree) Ancestors(idx int) []int {
	var chain []int
	for p := t.nodes[idx].parent; p != NoParent; p = t.nodes[p].parent {
		chain = append(chain, p)
	}
	// reverse to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// 🚶 Walk visits every node in pre-order: a page is always visited
// before any of its children. Returning an error from fn stops the
// walk.
func (t *Tree) Walk(fn func(idx int, n *Node) error) error {
	var visit func(idx int) error
	visit = func(idx int) error {
		if err := fn(idx, &t.nodes[idx]); err != nil {
			return err
		}
		for _, c := range t.nodes[idx].children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range t.roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// Titles returns the set of every title in the tree.
func (t *Tree) Titles() map[string]struct{} {
	set := make(map[string]struct{}, len(t.nodes))
	for i := range t.nodes {
		set[t.nodes[i].Title] = struct{}{}
	}
	return set
}

func (t *Tree) siblings(parent int) []int {
	if parent == NoParent {
		return t.roots
	}
	return t.nodes[parent].children
}

func (t *Tree) parentTitle(parent int) string {
	if parent == NoParent {
		return ""
	}
	return t.nodes[parent].Title
}
