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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎛️ Mode selects how a run executes. It is fixed at build start;
// there are no mid-build transitions.
type Mode int

const (
	// Publish fetches remote state and performs real writes
	Publish Mode = iota
	// DryRun fetches remote state but only reports what would happen
	DryRun
	// ExportOnly skips the remote entirely and writes to the filesystem
	ExportOnly
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case Publish:
		return "publish"
	case DryRun:
		return "dryrun"
	case ExportOnly:
		return "export-only"
	default:
		return "unknown"
	}
}

// 📚 Config represents the complete configuration
type Config struct {
	HostURL        string `json:"host_url" yaml:"host_url"`                 // Remote API endpoint
	Space          string `json:"space" yaml:"space"`                       // Remote space key
	ParentPageName string `json:"parent_page_name" yaml:"parent_page_name"` // Root anchor page in the space

	DocsDir string `json:"docs_dir" yaml:"docs_dir"` // Directory source documents resolve against
	NavFile string `json:"nav_file" yaml:"nav_file"` // Navigation specification file

	StripH1              bool   `json:"strip_h1,omitempty" yaml:"strip_h1,omitempty"`
	DryRun               bool   `json:"dryrun,omitempty" yaml:"dryrun,omitempty"`
	ExportOnly           bool   `json:"export_only,omitempty" yaml:"export_only,omitempty"`
	ExportDir            string `json:"export_dir,omitempty" yaml:"export_dir,omitempty"`
	CleanupOrphanedPages bool   `json:"cleanup_orphaned_pages,omitempty" yaml:"cleanup_orphaned_pages,omitempty"`

	AttachmentPatterns []string `json:"attachment_patterns,omitempty" yaml:"attachment_patterns,omitempty"` // Globs for files attached to pages
	ExcludePatterns    []string `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`       // Globs for nav paths to skip

	Async bool `json:"async,omitempty" yaml:"async,omitempty"` // Run the operation off the main goroutine
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎛️ Mode derives the execution mode from the boolean flags.
// ExportOnly wins over DryRun; both unset means Publish.
func (cfg *Config) Mode() Mode {
	switch {
	case cfg.ExportOnly:
		return ExportOnly
	case cfg.DryRun:
		return DryRun
	default:
		return Publish
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.NavFile == "" {
		return errors.Errorf("nav_file is required")
	}
	if cfg.DryRun && cfg.ExportOnly {
		return errors.Errorf("dryrun and export_only are mutually exclusive")
	}
	if cfg.ExportOnly && cfg.ExportDir == "" {
		return errors.Errorf("export_dir is required when export_only is set")
	}

	// Remote coordinates only matter when a remote is involved
	if cfg.Mode() != ExportOnly {
		if cfg.HostURL == "" {
			return errors.Errorf("host_url is required")
		}
		if !strings.HasPrefix(cfg.HostURL, "http://") && !strings.HasPrefix(cfg.HostURL, "https://") {
			return errors.Errorf("host_url must be an http(s) URL: %s", cfg.HostURL)
		}
		if cfg.Space == "" {
			return errors.Errorf("space is required")
		}
		if cfg.ParentPageName == "" {
			return errors.Errorf("parent_page_name is required")
		}
	}

	// Clean up paths
	if cfg.DocsDir == "" {
		cfg.DocsDir = "."
	}
	cfg.DocsDir = filepath.Clean(cfg.DocsDir)
	if cfg.ExportDir != "" {
		cfg.ExportDir = filepath.Clean(cfg.ExportDir)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	if cfg.Mode() == ExportOnly {
		return fmt.Sprintf("%s -> %s (export-only)", cfg.NavFile, cfg.ExportDir)
	}
	return fmt.Sprintf("%s -> %s/%s under %q (%s)", cfg.NavFile, cfg.HostURL, cfg.Space, cfg.ParentPageName, cfg.Mode())
}
