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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/confsync/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewExportCmd creates a new export command
func NewExportCmd(factory OptsFactory) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the documentation tree to a local directory",
		Long: `Export serializes the page tree to the filesystem without touching
the remote at all: one directory per page with page.html, metadata.json
and the page's attachments, mirroring the navigation hierarchy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "export").Logger().WithContext(ctx)

			ro, err := factory(cmd)
			if err != nil {
				return err
			}
			ro.Config.ExportOnly = true
			ro.Config.DryRun = false
			if exportDir != "" {
				ro.Config.ExportDir = exportDir
			}
			if ro.Config.ExportDir == "" {
				return errors.New("export_dir must be set in config or via --dir")
			}

			op, err := operation.New(operation.Options{
				Config:   ro.Config,
				Tree:     ro.Tree,
				Reporter: ro.Reporter,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			logger := zerolog.Ctx(ctx)
			runner := operation.NewRunner(logger, ro.Config.Async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("exporting: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "dir", "", "destination directory (overrides export_dir)")

	return cmd
}
