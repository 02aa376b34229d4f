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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds the number of ListChildren calls in flight
// while walking a remote subtree.
const fetchConcurrency = 4

// 🌐 FetchDescendants walks every descendant of the page with the
// given id and returns them keyed by title. Independent subtrees are
// fetched concurrently; results are collected and re-sorted into
// traversal order level by level, so the returned snapshot is
// deterministic regardless of fetch interleaving. A remote title seen
// twice (possible when the space holds duplicates outside our control)
// keeps its first occurrence in traversal order.
func FetchDescendants(ctx context.Context, client Client, rootID string) (map[string]PageState, error) {
	logger := zerolog.Ctx(ctx)

	state := make(map[string]PageState)
	level := []string{rootID}

	for len(level) > 0 {
		var mu sync.Mutex
		children := make(map[string][]PageState, len(level))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(fetchConcurrency)
		for _, id := range level {
			id := id
			g.Go(func() error {
				pages, err := client.ListChildren(gctx, id)
				if err != nil {
					return errors.Errorf("listing children of %s: %w", id, err)
				}
				mu.Lock()
				children[id] = pages
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Collect back into traversal order: parents in level order, then
		// each parent's children in the order the remote returned them.
		var next []string
		for _, id := range level {
			for _, p := range children[id] {
				if _, seen := state[p.Title]; seen {
					logger.Warn().Str("title", p.Title).Str("id", p.ID).Msg("duplicate remote title, keeping first occurrence")
					continue
				}
				state[p.Title] = p
				next = append(next, p.ID)
			}
		}
		level = next
	}

	logger.Debug().Int("pages", len(state)).Str("root", rootID).Msg("fetched remote descendants")
	return state, nil
}
