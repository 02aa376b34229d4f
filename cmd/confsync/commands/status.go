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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/confsync/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check if the remote space is in sync with the local tree",
		Long: `Status compares the local tree against the remote space and reports
whether publish would change anything. Exits non-zero when the space has
drifted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			ro, err := factory(cmd)
			if err != nil {
				return err
			}
			ro.Config.DryRun = true
			ro.Config.ExportOnly = false
			if err := ro.Config.Validate(); err != nil {
				return errors.Errorf("validating config for status: %w", err)
			}

			client, err := ro.NewClient()
			if err != nil {
				return errors.Errorf("creating remote client: %w", err)
			}

			drifted, err := operation.CheckStatus(ctx, operation.Options{
				Config:   ro.Config,
				Tree:     ro.Tree,
				Client:   client,
				Reporter: ro.Reporter,
			})
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if drifted {
				return errors.Errorf("space %s is out of sync, run publish", ro.Config.Space)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "space %s is up to date\n", ro.Config.Space)
			return nil
		},
	}

	return cmd
}
