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

package reconcile

import (
	"fmt"
	"sort"

	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/remote"
)

// 🎯 Kind is the variant tag of an operation
type Kind int

const (
	// Create means the page exists locally but not remotely
	Create Kind = iota
	// Update means the page exists on both sides with differing content
	Update
	// NoChange means local and remote fingerprints match
	NoChange
	// Orphan means a remote page has no local counterpart
	Orphan
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Update:
		return "update"
	case NoChange:
		return "no change"
	case Orphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// 📋 Op is one reconciliation decision. Create/Update/NoChange carry
// the local page; Orphan carries only the remote state.
type Op struct {
	Kind        Kind
	Title       string            // Page title the operation targets
	ParentTitle string            // Local parent title, "" for roots
	Body        string            // Canonical body (post strip pre-pass); empty for Orphan
	Attachments []page.Attachment // Attachments owned by the local page
	Remote      *remote.PageState // Remote state; set for Update, NoChange and Orphan
	Reason      string            // Human-readable explanation
}

// DuplicateTitleError is returned when two local pages would map to the
// same remote title, which makes the reconciliation target ambiguous.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("duplicate page title %q: reconciliation target is ambiguous", e.Title)
}

// 🔧 Options control the reconciliation pre-pass
type Options struct {
	// StripH1 removes a sole leading H1 heading from each body before
	// fingerprinting; the stripped body becomes the canonical body for
	// the rest of the run.
	StripH1 bool
}

// 🧮 Reconcile diffs the local tree against a remote snapshot and
// returns the operation set that brings the remote in line with the
// local side. It is a pure decision function: no I/O happens here, and
// all three execution modes share it.
//
// Operations come out in the local tree's pre-order, so a parent's
// Create always precedes its children's. Orphans follow, sorted by
// title. A nil remoteState (export-only contexts, where nothing was
// fetched) makes every local page a Create.
func Reconcile(tree *page.Tree, remoteState map[string]remote.PageState, opts Options) ([]Op, error) {
	// Tie-break rule: duplicate titles anywhere in the tree are a
	// configuration error, not something to guess about.
	seen := make(map[string]struct{}, tree.Len())
	if err := tree.Walk(func(idx int, n *page.Node) error {
		if _, dup := seen[n.Title]; dup {
			return &DuplicateTitleError{Title: n.Title}
		}
		seen[n.Title] = struct{}{}
		return nil
	}); err != nil {
		return nil, err
	}

	ops := make([]Op, 0, tree.Len())
	err := tree.Walk(func(idx int, n *page.Node) error {
		body := n.Body
		if opts.StripH1 {
			body = page.StripLeadingH1(body)
		}

		op := Op{
			Title:       n.Title,
			ParentTitle: tree.ParentTitle(idx),
			Body:        body,
			Attachments: n.Attachments,
		}

		rs, exists := remoteState[n.Title]
		switch {
		case !exists:
			op.Kind = Create
			op.Reason = "no remote page with this title"
		case rs.Fingerprint == page.Fingerprint(body):
			op.Kind = NoChange
			op.Remote = &rs
			op.Reason = "content fingerprints match"
		default:
			op.Kind = Update
			op.Remote = &rs
			op.Reason = "content fingerprints differ"
		}
		ops = append(ops, op)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Remote pages nobody references locally. Sorted by title so the
	// orphan report is stable across runs.
	orphans := make([]string, 0)
	for title := range remoteState {
		if _, local := seen[title]; !local {
			orphans = append(orphans, title)
		}
	}
	sort.Strings(orphans)
	for _, title := range orphans {
		rs := remoteState[title]
		ops = append(ops, Op{
			Kind:   Orphan,
			Title:  title,
			Remote: &rs,
			Reason: "remote page has no local counterpart",
		})
	}

	return ops, nil
}
