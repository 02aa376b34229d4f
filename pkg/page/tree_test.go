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
	"github.com/stretchr/testify/require"
)

func TestTreeAdd(t *testing.T) {
	tree := NewTree()

	home, err := tree.Add(NoParent, Node{Title: "Home"})
	require.NoError(t, err, "adding root should succeed")

	_, err = tree.Add(home, Node{Title: "Getting Started"})
	require.NoError(t, err, "adding child should succeed")

	_, err = tree.Add(home, Node{Title: "Getting Started"})
	require.Error(t, err, "duplicate sibling title should fail")
	assert.Contains(t, err.Error(), "Getting Started", "error should name the duplicate title")

	// Same title under a different parent is allowed by the model
	other, err := tree.Add(NoParent, Node{Title: "Other"})
	require.NoError(t, err)
	_, err = tree.Add(other, Node{Title: "Getting Started"})
	require.NoError(t, err, "same title under a different parent should be allowed")

	_, err = tree.Add(99, Node{Title: "Stray"})
	require.Error(t, err, "out of range parent index should fail")
}

func TestTreeWalkPreOrder(t *testing.T) {
	tree := NewTree()
	home, err := tree.Add(NoParent, Node{Title: "Home"})
	require.NoError(t, err)
	guide, err := tree.Add(home, Node{Title: "Guide"})
	require.NoError(t, err)
	_, err = tree.Add(guide, Node{Title: "Install"})
	require.NoError(t, err)
	_, err = tree.Add(guide, Node{Title: "Usage"})
	require.NoError(t, err)
	_, err = tree.Add(home, Node{Title: "FAQ"})
	require.NoError(t, err)
	_, err = tree.Add(NoParent, Node{Title: "Changelog"})
	require.NoError(t, err)

	var titles []string
	err = tree.Walk(func(idx int, n *Node) error {
		titles = append(titles, n.Title)
		return nil
	})
	require.NoError(t, err)

	// Pre-order: each page before its children, siblings in insertion order
	assert.Equal(t, []string{"Home", "Guide", "Install", "Usage", "FAQ", "Changelog"}, titles)
}

func TestTreeWalkVisitsEachTitleOnce(t *testing.T) {
	tree := NewTree()
	root, err := tree.Add(NoParent, Node{Title: "Root"})
	require.NoError(t, err)
	for _, title := range []string{"A", "B", "C"} {
		child, err := tree.Add(root, Node{Title: title})
		require.NoError(t, err)
		_, err = tree.Add(child, Node{Title: title + "1"})
		require.NoError(t, err)
	}

	seen := map[string]int{}
	err = tree.Walk(func(idx int, n *Node) error {
		seen[n.Title]++
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, seen, tree.Len(), "every title should appear")
	for title, count := range seen {
		assert.Equal(t, 1, count, "title %q should be visited exactly once", title)
	}
}

func TestTreeAncestors(t *testing.T) {
	tree := NewTree()
	a, err := tree.Add(NoParent, Node{Title: "A"})
	require.NoError(t, err)
	b, err := tree.Add(a, Node{Title: "B"})
	require.NoError(t, err)
	c, err := tree.Add(b, Node{Title: "C"})
	require.NoError(t, err)

	assert.True(t, tree.Node(a).IsRoot())
	assert.False(t, tree.Node(c).IsRoot())
	assert.Empty(t, tree.Ancestors(a), "root has no ancestors")
	assert.Equal(t, []int{a, b}, tree.Ancestors(c), "ancestors should be root-first")
	assert.Equal(t, "B", tree.ParentTitle(c))
	assert.Equal(t, "", tree.ParentTitle(a), "root parent title is empty")
}
