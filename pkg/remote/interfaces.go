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

package remote

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// Sentinel errors shared by every Client implementation. Callers match
// them with errors.Is; implementations wrap them with request context.
var (
	// ErrConnection indicates a network-level failure reaching the remote
	ErrConnection = errors.Base("connection failed")
	// ErrAuth indicates the remote rejected our credentials
	ErrAuth = errors.Base("authentication rejected")
	// ErrNotFound indicates the requested page does not exist
	ErrNotFound = errors.Base("page not found")
	// ErrConflict indicates a version mismatch on update (the page
	// changed remotely since we fetched it)
	ErrConflict = errors.Base("version conflict")
)

// 📄 PageState is the remote side of a page as seen at fetch time. It
// is compared by value against local pages and never mutated.
type PageState struct {
	ID          string // Opaque remote identifier
	Title       string // Remote page title
	Version     int    // Version counter, required for safe updates
	ParentID    string // Remote parent id, used to detect hierarchy drift
	Fingerprint string // Content fingerprint comparable to page.Fingerprint
}

// 🔌 Client is the narrow interface the core uses to talk to the wiki.
// Implementations live in subpackages (confluence); tests substitute
// fakes.
type Client interface {
	// FindPage locates a page by title within a space.
	// Returns ErrNotFound if no such page exists.
	FindPage(ctx context.Context, space, title string) (*PageState, error)

	// ListChildren returns the direct children of a page. Pagination is
	// handled inside the implementation; the caller always sees the
	// complete child set.
	ListChildren(ctx context.Context, id string) ([]PageState, error)

	// CreatePage creates a page under the given parent and returns its
	// new remote identifier.
	CreatePage(ctx context.Context, space, parentID, title, body string) (string, error)

	// UpdatePage replaces a page's body. The version passed must be the
	// current remote version; a mismatch fails with ErrConflict. Returns
	// the new remote version.
	UpdatePage(ctx context.Context, id string, version int, title, body string) (int, error)

	// DeletePage removes a page.
	DeletePage(ctx context.Context, id string) error

	// UploadAttachment associates attachment bytes with a page,
	// replacing any existing attachment with the same filename.
	UploadAttachment(ctx context.Context, pageID, filename string, data []byte) error
}
