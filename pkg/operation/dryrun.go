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
	"github.com/walteh/confsync/pkg/export"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/reconcile"
	"github.com/walteh/confsync/pkg/remote"
	"github.com/walteh/confsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 NewDryRunOperation creates a read-only validation operation
func NewDryRunOperation(opts Options) Operation {
	return &dryRunOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🔍 dryRunOperation fetches and reconciles like publish, but issues
// no write calls of any kind
type dryRunOperation struct {
	BaseOperation
}

func (op *dryRunOperation) Name() string {
	return "dryrun"
}

// 🏃 Execute reports what publish would do. Orphans are always
// advisory here; a dry run never fails because of them.
func (op *dryRunOperation) Execute(ctx context.Context) error {
	cfg := op.Config

	ops, err := op.plan(ctx)
	if err != nil {
		return err
	}

	for _, o := range ops {
		switch o.Kind {
		case reconcile.Create:
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Would Create", IsNew: true})
		case reconcile.Update:
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Would Update", IsModified: true})
		case reconcile.NoChange:
			op.Reporter.Page(status.PageLine{Title: o.Title, Action: "No Change"})
		case reconcile.Orphan:
			if cfg.CleanupOrphanedPages {
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Would Delete", Detail: o.Reason, IsOrphan: true})
			} else {
				op.Reporter.Page(status.PageLine{Title: o.Title, Action: "Orphaned", Detail: o.Reason, IsOrphan: true})
			}
		}
	}

	// Optional inspection export of what would be published
	if cfg.ExportDir != "" {
		exporter := export.New(cfg.ExportDir, cfg.Space)
		if cfg.StripH1 {
			exporter.SetBodyFilter(page.StripLeadingH1)
		}
		if err := exporter.Export(ctx, op.Tree); err != nil {
			return errors.Errorf("writing inspection export: %w", err)
		}
	}

	op.Reporter.Finish("Dry run")
	return nil
}

// plan fetches the remote snapshot and reconciles against it
func (op *dryRunOperation) plan(ctx context.Context) ([]reconcile.Op, error) {
	cfg := op.Config

	anchor, err := op.Client.FindPage(ctx, cfg.Space, cfg.ParentPageName)
	if err != nil {
		return nil, errors.Errorf("locating parent page %q in space %s: %w", cfg.ParentPageName, cfg.Space, err)
	}

	remoteState, err := remote.FetchDescendants(ctx, op.Client, anchor.ID)
	if err != nil {
		return nil, errors.Errorf("fetching remote state: %w", err)
	}

	return reconcile.Reconcile(op.Tree, remoteState, reconcile.Options{StripH1: cfg.StripH1})
}

// 🔍 CheckStatus reports whether the remote space has drifted from the
// local tree: true when any page would be created or updated. Orphans
// only count as drift when orphan cleanup is enabled.
func CheckStatus(ctx context.Context, opts Options) (bool, error) {
	logger := zerolog.Ctx(ctx)

	op := &dryRunOperation{BaseOperation: NewBaseOperation(opts)}
	ops, err := op.plan(ctx)
	if err != nil {
		return false, err
	}

	for _, o := range ops {
		switch o.Kind {
		case reconcile.Create, reconcile.Update:
			logger.Debug().Str("title", o.Title).Str("kind", o.Kind.String()).Msg("drift detected")
			return true, nil
		case reconcile.Orphan:
			if opts.Config.CleanupOrphanedPages {
				logger.Debug().Str("title", o.Title).Msg("orphan counts as drift with cleanup enabled")
				return true, nil
			}
		}
	}
	return false, nil
}
