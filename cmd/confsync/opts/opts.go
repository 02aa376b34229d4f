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

package opts

import (
	"github.com/walteh/confsync/pkg/config"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/remote"
	"github.com/walteh/confsync/pkg/status"
)

// 🔧 RootOpts carries the collaborators shared by all subcommands
type RootOpts struct {
	// Config is the loaded run configuration
	Config *config.Config
	// Tree is the page forest built from the navigation file
	Tree *page.Tree
	// Reporter renders user-facing output
	Reporter *status.Reporter
	// NewClient creates the remote client on demand; export-only runs
	// never call it
	NewClient func() (remote.Client, error)
}
