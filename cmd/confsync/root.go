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

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/confsync/cmd/confsync/commands"
	"github.com/walteh/confsync/cmd/confsync/opts"
	"github.com/walteh/confsync/pkg/config"
	"github.com/walteh/confsync/pkg/remote"
	"github.com/walteh/confsync/pkg/remote/confluence"
	"github.com/walteh/confsync/pkg/render"
	"github.com/walteh/confsync/pkg/site"
	"github.com/walteh/confsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// NewRootCmd builds the confsync command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "confsync",
		Short:         "Synchronize a documentation tree to a Confluence space",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}
	addRootFlags(root)

	root.AddCommand(
		commands.NewPublishCmd(newRootOpts),
		commands.NewDryRunCmd(newRootOpts),
		commands.NewExportCmd(newRootOpts),
		commands.NewStatusCmd(newRootOpts),
		commands.NewVersionCmd(),
	)
	return root
}

// newRootOpts loads config, builds the page tree, and wires the shared
// collaborators for a subcommand
func newRootOpts(cmd *cobra.Command) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	nav, err := site.LoadNav(cfg.NavFile)
	if err != nil {
		return nil, errors.Errorf("loading nav: %w", err)
	}

	tree, err := site.Build(ctx, nav, site.BuildOptions{
		DocsDir:            cfg.DocsDir,
		Renderer:           render.NewMarkdown(),
		AttachmentPatterns: cfg.AttachmentPatterns,
		ExcludePatterns:    cfg.ExcludePatterns,
	})
	if err != nil {
		return nil, errors.Errorf("building site tree: %w", err)
	}

	return &opts.RootOpts{
		Config:   cfg,
		Tree:     tree,
		Reporter: status.NewReporter(cmd.OutOrStdout()),
		NewClient: func() (remote.Client, error) {
			return confluence.New(ctx, cfg.HostURL)
		},
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".confsync.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
