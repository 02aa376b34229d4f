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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		HostURL        string `hcl:"host_url,optional"`
		Space          string `hcl:"space,optional"`
		ParentPageName string `hcl:"parent_page_name,optional"`

		DocsDir string `hcl:"docs_dir,optional"`
		NavFile string `hcl:"nav_file"`

		StripH1              bool   `hcl:"strip_h1,optional"`
		DryRun               bool   `hcl:"dryrun,optional"`
		ExportOnly           bool   `hcl:"export_only,optional"`
		ExportDir            string `hcl:"export_dir,optional"`
		CleanupOrphanedPages bool   `hcl:"cleanup_orphaned_pages,optional"`

		AttachmentPatterns []string `hcl:"attachment_patterns,optional"`
		ExcludePatterns    []string `hcl:"exclude_patterns,optional"`

		Async bool `hcl:"async,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		HostURL:              hclCfg.HostURL,
		Space:                hclCfg.Space,
		ParentPageName:       hclCfg.ParentPageName,
		DocsDir:              hclCfg.DocsDir,
		NavFile:              hclCfg.NavFile,
		StripH1:              hclCfg.StripH1,
		DryRun:               hclCfg.DryRun,
		ExportOnly:           hclCfg.ExportOnly,
		ExportDir:            hclCfg.ExportDir,
		CleanupOrphanedPages: hclCfg.CleanupOrphanedPages,
		AttachmentPatterns:   hclCfg.AttachmentPatterns,
		ExcludePatterns:      hclCfg.ExcludePatterns,
		Async:                hclCfg.Async,
	}

	return cfg, nil
}
