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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/confsync/pkg/reconcile"
	"github.com/walteh/confsync/pkg/remote"
	"github.com/walteh/confsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🚀 NewPublishOperation creates a live publish operation
func NewPublishOperation(opts Options) Operation {
	return &publishOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🚀 publishOperation drives real API writes
type publishOperation struct {
	BaseOperation
}

func (op *publishOperation) Name() string {
	return "publish"
}

// pageFailure is one page that could not be written; the run continues
// past it and reports the collection at the end
type pageFailure struct {
	Title string
	Err   error
}

// 🏃 Execute reconciles and writes. Structural and remote-access
// failures are fatal; per-page version conflicts are isolated, skipped
// past, and aggregated into a failing final result.
func (op *publishOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	cfg := op.Config

	anchor, err := op.Client.FindPage(ctx, cfg.Space, cfg.ParentPageName)
	if err != nil {
		return errors.Errorf("locating parent page %q in space %s: %w", cfg.ParentPageName, cfg.Space, err)
	}

	remoteState, err := remote.FetchDescendants(ctx, op.Client, anchor.ID)
	if err != nil {
		return errors.Errorf("fetching remote state: %w", err)
	}

	ops, err := reconcile.Reconcile(op.Tree, remoteState, reconcile.Options{StripH1: cfg.StripH1})
	if err != nil {
		return err
	}

	// Remote ids by local title. Pre-order emission guarantees a parent
	// is resolved here before any of its children are written.
	ids := map[string]string{"": anchor.ID}
	var failures []pageFailure

	for _, o := range ops {
		switch o.Kind {
		case reconcile.Create:
			parentID, ok := ids[o.ParentTitle]
			if !ok {
				// Parent's create failed earlier; skip the child rather than
				// attach it in the wrong place.
				failures = append(failures, pageFailure{Title: o.Title, Err: errors.Errorf("parent %q was not created", o.ParentTitle)})
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Failed", Detail: "parent missing", IsFailed: true})
				continue
			}

			id, err := op.Client.CreatePage(ctx, cfg.Space, parentID, o.Title, o.Body)
			if err != nil {
				if fatal(err) {
					return errors.Errorf("creating page %q: %w", o.Title, err)
				}
				failures = append(failures, pageFailure{Title: o.Title, Err: err})
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Failed", Detail: err.Error(), IsFailed: true})
				continue
			}
			ids[o.Title] = id
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Created", IsNew: true})
			failures = append(failures, op.uploadAttachments(ctx, id, o)...)

		case reconcile.Update:
			if _, err := op.Client.UpdatePage(ctx, o.Remote.ID, o.Remote.Version, o.Title, o.Body); err != nil {
				if errors.Is(err, remote.ErrConflict) {
					// Someone edited the page while we were running. Fail this
					// page only; the page still exists remotely, so children
					// keep anchoring to its known id.
					logger.Warn().Str("title", o.Title).Msg("version conflict, page skipped")
					ids[o.Title] = o.Remote.ID
					failures = append(failures, pageFailure{Title: o.Title, Err: err})
					op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Conflict", Detail: "remote changed concurrently", IsFailed: true})
					continue
				}
				if fatal(err) {
					return errors.Errorf("updating page %q: %w", o.Title, err)
				}
				ids[o.Title] = o.Remote.ID
				failures = append(failures, pageFailure{Title: o.Title, Err: err})
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Failed", Detail: err.Error(), IsFailed: true})
				continue
			}
			ids[o.Title] = o.Remote.ID
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Updated", IsModified: true})
			failures = append(failures, op.uploadAttachments(ctx, o.Remote.ID, o)...)

		case reconcile.NoChange:
			ids[o.Title] = o.Remote.ID
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "No Change"})

		case reconcile.Orphan:
			if !cfg.CleanupOrphanedPages {
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Orphaned", Detail: o.Reason, IsOrphan: true})
				continue
			}
			if err := op.Client.DeletePage(ctx, o.Remote.ID); err != nil {
				if errors.Is(err, remote.ErrNotFound) {
					// Already gone, usually because it was removed along with
					// an orphaned ancestor earlier in this loop.
					logger.Debug().Str("title", o.Title).Msg("orphan already deleted remotely")
					op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Deleted", IsRemoved: true})
					continue
				}
				if fatal(err) {
					return errors.Errorf("deleting orphan %q: %w", o.Title, err)
				}
				failures = append(failures, pageFailure{Title: o.Title, Err: err})
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Failed", Detail: err.Error(), IsFailed: true})
				continue
			}
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Deleted", IsRemoved: true})
		}
	}

	op.Reporter.Finish("Publish")

	if len(failures) > 0 {
		errs := make([]error, 0, len(failures))
		for _, f := range failures {
			errs = append(errs, errors.Errorf("page %q: %w", f.Title, f.Err))
		}
		return errors.Join(errs...)
	}
	return nil
}

// uploadAttachments pushes a page's attachments; failures are per-page,
// never fatal to the run
func (op *publishOperation) uploadAttachments(ctx context.Context, pageID string, o reconcile.Op) []pageFailure {
	var failures []pageFailure
	for _, a := range o.Attachments {
		if err := op.Client.UploadAttachment(ctx, pageID, a.Filename, a.Content); err != nil {
			failures = append(failures, pageFailure{Title: o.Title, Err: errors.Errorf("attachment %s: %w", a.Filename, err)})
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Attachment Failed", Detail: a.Filename, IsFailed: true})
		}
	}
	return failures
}

// fatal reports whether a remote error poisons the rest of the run.
// Auth and connection failures do: no partial remote view is
// trustworthy after one.
func fatal(err error) bool {
	return errors.Is(err, remote.ErrAuth) || errors.Is(err, remote.ErrConnection)
}
