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

package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 🎨 Display configuration
const (
	lineIndent  = 4  // spaces to indent page entries
	titleWidth  = 35 // Base width for page title
	actionWidth = 18 // Width for the action text
)

// 🎯 PageLine is one page operation for display
type PageLine struct {
	Title      string // Page title
	Action     string // Human action text ("Created", "Would Update", ...)
	Detail     string // Optional trailing detail (reason, error)
	IsNew      bool   // Whether the page was (or would be) created
	IsModified bool   // Whether the page was (or would be) updated
	IsRemoved  bool   // Whether the page was (or would be) deleted
	IsOrphan   bool   // Whether this is an orphan advisory
	IsFailed   bool   // Whether the operation failed
}

// 📊 Summary aggregates a run's outcomes
type Summary struct {
	Created   int
	Updated   int
	Unchanged int
	Orphans   int
	Deleted   int
	Exported  int
	Failed    int
}

// 🎯 Reporter renders per-page lines and the final run summary to the
// console. Structured logging stays on zerolog; this is the human
// channel.
type Reporter struct {
	console io.Writer

	mu      sync.Mutex
	summary Summary
}

// 🏭 NewReporter creates a reporter writing to the given console
func NewReporter(console io.Writer) *Reporter {
	return &Reporter{console: console}
}

// 📝 Page renders one page operation line and tallies it
func (r *Reporter) Page(line PageLine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case line.IsFailed:
		r.summary.Failed++
	case line.IsRemoved:
		r.summary.Deleted++
	case line.IsOrphan:
		r.summary.Orphans++
	case line.IsNew:
		r.summary.Created++
	case line.IsModified:
		r.summary.Updated++
	default:
		r.summary.Unchanged++
	}

	fmt.Fprintln(r.console, formatPageLine(line))
}

// 📦 Exported tallies a page queued for export
func (r *Reporter) Exported(title string) {
	r.mu.Lock()
	r.summary.Exported++
	r.mu.Unlock()

	fmt.Fprintln(r.console, formatPageLine(PageLine{Title: title, Action: "Queued For Export", IsNew: true}))
}

// Summary returns a copy of the tallies so far.
func (r *Reporter) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// ✅ Finish prints the final run summary. A run with failures gets an
// error banner, orphans alone get a warning.
func (r *Reporter) Finish(headline string) {
	r.mu.Lock()
	s := r.summary
	r.mu.Unlock()

	text := fmt.Sprintf("%s: %d created, %d updated, %d unchanged", headline, s.Created, s.Updated, s.Unchanged)
	if s.Exported > 0 {
		text = fmt.Sprintf("%s: %d pages exported", headline, s.Exported)
	}
	if s.Deleted > 0 {
		text += fmt.Sprintf(", %d deleted", s.Deleted)
	}

	switch {
	case s.Failed > 0:
		pterm.Error.WithWriter(r.console).Printfln("%s, %d failed", text, s.Failed)
	case s.Orphans > 0:
		pterm.Warning.WithWriter(r.console).Printfln("%s, %d orphaned remote page(s) left in place", text, s.Orphans)
	default:
		pterm.Success.WithWriter(r.console).Println(text)
	}
}

// 📝 formatPageLine formats a page operation for display
func formatPageLine(line PageLine) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case line.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case line.IsRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	case line.IsOrphan:
		symbol = '!'
		symbolColor = color.FgYellow
	case line.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case line.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '-'
		symbolColor = color.FgHiBlack
	}

	out := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", lineIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", titleWidth, line.Title),
		fmt.Sprintf("%-*s", actionWidth, line.Action))
	if line.Detail != "" {
		out += " " + color.HiBlackString(line.Detail)
	}
	return out
}
