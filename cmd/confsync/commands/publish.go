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
	"github.com/walteh/confsync/cmd/confsync/opts"
	"github.com/walteh/confsync/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// OptsFactory loads the shared collaborators for a subcommand
type OptsFactory func(cmd *cobra.Command) (*opts.RootOpts, error)

// NewPublishCmd creates a new publish command
func NewPublishCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the documentation tree to Confluence",
		Long: `Publish reconciles the local documentation tree against the remote
space and applies the resulting operations. It will:
1. Build the page tree from the navigation file
2. Fetch the remote pages under the configured parent
3. Create, update or skip each page as needed
4. Report per-page results and fail if any page could not be written`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "publish").Logger().WithContext(ctx)

			ro, err := factory(cmd)
			if err != nil {
				return err
			}
			// Publish regardless of what the config file's mode flags say
			ro.Config.DryRun = false
			ro.Config.ExportOnly = false
			if err := ro.Config.Validate(); err != nil {
				return errors.Errorf("validating config for publish: %w", err)
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
				return errors.Errorf("publishing: %w", err)
			}
			return nil
		},
	}

	return cmd
}
