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
	"gitlab.com/tozd/go/errors"
)

// 📦 NewExportOperation creates an offline filesystem export operation
func NewExportOperation(opts Options) Operation {
	return &exportOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 📦 exportOperation never touches the remote: with no remote state to
// compare against, every page is create-equivalent and gets queued for
// export
type exportOperation struct {
	BaseOperation
}

func (op *exportOperation) Name() string {
	return "export"
}

// 🏃 Execute serializes the whole forest to the export directory
func (op *exportOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	cfg := op.Config

	exporter := export.New(cfg.ExportDir, cfg.Space)
	if cfg.StripH1 {
		exporter.SetBodyFilter(page.StripLeadingH1)
	}

	err := op.Tree.Walk(func(idx int, n *page.Node) error {
		if err := exporter.ExportPage(ctx, op.Tree, idx); err != nil {
			return errors.Errorf("exporting page %q: %w", n.Title, err)
		}
		op.Reporter.Exported(n.Title)
		return nil
	})
	if err != nil {
		return err
	}

	if err := exporter.Finish(ctx, op.Tree); err != nil {
		return errors.Errorf("writing export descriptor: %w", err)
	}

	logger.Info().Int("pages", op.Tree.Len()).Str("dir", cfg.ExportDir).Msg("export complete")
	op.Reporter.Finish("Export Complete")
	return nil
}
