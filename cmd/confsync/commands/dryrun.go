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

// NewDryRunCmd creates a new dryrun command
func NewDryRunCmd(factory OptsFactory) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "dryrun",
		Short: "Report what publish would do, without writing anything",
		Long: `Dryrun fetches the remote space and reconciles it against the local
tree, then prints Would Create / Would Update / No Change for every page
plus a warning for each orphaned remote page. No API writes are issued.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "dryrun").Logger().WithContext(ctx)

			ro, err := factory(cmd)
			if err != nil {
				return err
			}
			ro.Config.DryRun = true
			ro.Config.ExportOnly = false
			if exportDir != "" {
				ro.Config.ExportDir = exportDir
			}
			if err := ro.Config.Validate(); err != nil {
				return errors.Errorf("validating config for dry run: %w", err)
			}

			client, err := ro.NewClient()
			if err != nil {
				return errors.Errorf("creating remote client: %w", err)
			}

			op, err := operation.New(operation.Options{
				Config:   ro.Config,
				Tree:     ro.Tree,
				Client:   client,
				Reporter: ro.Reporter,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			logger := zerolog.Ctx(ctx)
			runner := operation.NewRunner(logger, ro.Config.Async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("dry run: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", "", "also write an inspection export to this directory")

	return cmd
}
