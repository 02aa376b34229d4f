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

package remote

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// fakeLister serves a canned child map and records which ids were asked
type fakeLister struct {
	Client

	mu       sync.Mutex
	children map[string][]PageState
	failOn   string
	asked    []string
}

func (f *fakeLister) ListChildren(ctx context.Context, id string) ([]PageState, error) {
	f.mu.Lock()
	f.asked = append(f.asked, id)
	f.mu.Unlock()
	if id == f.failOn {
		return nil, errors.Errorf("listing %s: %w", id, ErrConnection)
	}
	return f.children[id], nil
}

func TestFetchDescendants(t *testing.T) {
	fake := &fakeLister{
		children: map[string][]PageState{
			"root": {
				{ID: "a", Title: "Alpha", Version: 1},
				{ID: "b", Title: "Beta", Version: 2},
			},
			"a": {
				{ID: "a1", Title: "Alpha One", Version: 1},
			},
			"b": {
				{ID: "b1", Title: "Beta One", Version: 4},
				{ID: "b2", Title: "Beta Two", Version: 1},
			},
		},
	}

	state, err := FetchDescendants(context.Background(), fake, "root")
	require.NoError(t, err)

	assert.Len(t, state, 5, "all descendants should be collected, root excluded")
	assert.NotContains(t, state, "root", "the anchor page itself is not part of the snapshot")
	assert.Equal(t, "b1", state["Beta One"].ID)
	assert.Equal(t, 4, state["Beta One"].Version)

	// Every discovered page gets its own ListChildren call
	assert.ElementsMatch(t, []string{"root", "a", "b", "a1", "b1", "b2"}, fake.asked)
}

func TestFetchDescendantsEmptyRoot(t *testing.T) {
	fake := &fakeLister{children: map[string][]PageState{}}

	state, err := FetchDescendants(context.Background(), fake, "root")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestFetchDescendantsDuplicateTitleKeepsFirst(t *testing.T) {
	fake := &fakeLister{
		children: map[string][]PageState{
			"root": {
				{ID: "a", Title: "Alpha", Version: 1},
			},
			"a": {
				{ID: "a1", Title: "Alpha", Version: 9},
			},
		},
	}

	state, err := FetchDescendants(context.Background(), fake, "root")
	require.NoError(t, err)

	require.Len(t, state, 1)
	assert.Equal(t, "a", state["Alpha"].ID, "first occurrence in traversal order wins")
}

func TestFetchDescendantsPropagatesErrors(t *testing.T) {
	fake := &fakeLister{
		children: map[string][]PageState{
			"root": {
				{ID: "a", Title: "Alpha", Version: 1},
			},
		},
		failOn: "a",
	}

	_, err := FetchDescendants(context.Background(), fake, "root")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection, "transport failures should surface with their sentinel intact")
}
