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

// Package operation interprets the reconciler's operation set under one
// of the three execution modes.
package operation

import (
	"context"

	"github.com/walteh/confsync/pkg/config"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/remote"
	"github.com/walteh/confsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one full run in a single mode. The mode is fixed for
// the lifetime of the operation; there are no mid-run transitions.
type Operation interface {
	// Name returns the operation's mode name
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains the collaborators an operation needs
type Options struct {
	// Config is the immutable run configuration
	Config *config.Config
	// Tree is the local page forest built from the navigation
	Tree *page.Tree
	// Client is the remote API client; nil in export-only mode
	Client remote.Client
	// Reporter renders user-facing per-page lines and the summary
	Reporter *status.Reporter
}

// 📦 BaseOperation provides common fields for operations
type BaseOperation struct {
	Config   *config.Config
	Tree     *page.Tree
	Client   remote.Client
	Reporter *status.Reporter
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Config:   opts.Config,
		Tree:     opts.Tree,
		Client:   opts.Client,
		Reporter: opts.Reporter,
	}
}

// 🏭 New creates the operation for the configured mode
func New(opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Tree == nil {
		return nil, errors.New("page tree is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}

	mode := opts.Config.Mode()
	if mode != config.ExportOnly && opts.Client == nil {
		return nil, errors.Errorf("remote client is required in %s mode", mode)
	}

	switch mode {
	case config.Publish:
		return NewPublishOperation(opts), nil
	case config.DryRun:
		return NewDryRunOperation(opts), nil
	case config.ExportOnly:
		return NewExportOperation(opts), nil
	default:
		return nil, errors.Errorf("unknown mode %d", mode)
	}
}
