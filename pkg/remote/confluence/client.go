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

package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/confsync/pkg/page"
	"github.com/walteh/confsync/pkg/remote"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

// childPageLimit is the page size used when walking child listings.
const childPageLimit = 50

// 🎯 Client implements remote.Client against the Confluence REST API
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

var _ remote.Client = (*Client)(nil)

// 🏭 New creates a new Confluence client. The API token is taken from
// the CONFLUENCE_TOKEN environment variable and sent as a bearer token.
func New(ctx context.Context, hostURL string) (*Client, error) {
	logger := zerolog.Ctx(ctx)

	// Get token from environment
	token := os.Getenv("CONFLUENCE_TOKEN")
	if token == "" {
		return nil, errors.New("CONFLUENCE_TOKEN environment variable not set")
	}

	// Create OAuth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		baseURL: strings.TrimRight(hostURL, "/"),
		http:    tc,
		logger:  *logger,
	}, nil
}

// wire types for the content endpoints

type contentPage struct {
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Title   string `json:"title"`
	Version *struct {
		Number int `json:"number"`
	} `json:"version,omitempty"`
	Body *struct {
		Storage struct {
			Value          string `json:"value"`
			Representation string `json:"representation"`
		} `json:"storage"`
	} `json:"body,omitempty"`
	Ancestors []struct {
		ID string `json:"id"`
	} `json:"ancestors,omitempty"`
}

type contentList struct {
	Results []contentPage `json:"results"`
	Start   int           `json:"start"`
	Limit   int           `json:"limit"`
	Size    int           `json:"size"`
}

func (p *contentPage) toState() remote.PageState {
	st := remote.PageState{
		ID:    p.ID,
		Title: p.Title,
	}
	if p.Version != nil {
		st.Version = p.Version.Number
	}
	if p.Body != nil {
		st.Fingerprint = page.Fingerprint(p.Body.Storage.Value)
	}
	if len(p.Ancestors) > 0 {
		// Confluence lists ancestors root-first; the direct parent is last
		st.ParentID = p.Ancestors[len(p.Ancestors)-1].ID
	}
	return st
}

// 🔍 FindPage locates a page by title within a space
func (c *Client) FindPage(ctx context.Context, space, title string) (*remote.PageState, error) {
	query := url.Values{}
	query.Set("spaceKey", space)
	query.Set("title", title)
	query.Set("expand", "version,body.storage,ancestors")
	query.Set("limit", "1")

	var list contentList
	if err := c.do(ctx, http.MethodGet, "/content", query, nil, &list); err != nil {
		return nil, errors.Errorf("finding page %q in space %s: %w", title, space, err)
	}
	if len(list.Results) == 0 {
		return nil, errors.Errorf("page %q in space %s: %w", title, space, remote.ErrNotFound)
	}

	st := list.Results[0].toState()
	return &st, nil
}

// 📂 ListChildren returns all direct children of a page, paging through
// the API transparently
func (c *Client) ListChildren(ctx context.Context, id string) ([]remote.PageState, error) {
	var children []remote.PageState
	for start := 0; ; start += childPageLimit {
		query := url.Values{}
		query.Set("expand", "version,body.storage,ancestors")
		query.Set("start", fmt.Sprintf("%d", start))
		query.Set("limit", fmt.Sprintf("%d", childPageLimit))

		var list contentList
		if err := c.do(ctx, http.MethodGet, "/content/"+id+"/child/page", query, nil, &list); err != nil {
			return nil, errors.Errorf("listing children of %s: %w", id, err)
		}
		for i := range list.Results {
			children = append(children, list.Results[i].toState())
		}
		if len(list.Results) < childPageLimit {
			return children, nil
		}
	}
}

// ➕ CreatePage creates a page under the given parent
func (c *Client) CreatePage(ctx context.Context, space, parentID, title, body string) (string, error) {
	req := map[string]any{
		"type":  "page",
		"title": title,
		"space": map[string]any{"key": space},
		"body": map[string]any{
			"storage": map[string]any{
				"value":          body,
				"representation": "storage",
			},
		},
	}
	if parentID != "" {
		req["ancestors"] = []map[string]any{{"id": parentID}}
	}

	var created contentPage
	if err := c.do(ctx, http.MethodPost, "/content", nil, req, &created); err != nil {
		return "", errors.Errorf("creating page %q: %w", title, err)
	}

	c.logger.Debug().Str("title", title).Str("id", created.ID).Msg("created page")
	return created.ID, nil
}

// 🔄 UpdatePage replaces a page's body using optimistic concurrency:
// the write carries version+1 and the API rejects it with a conflict if
// the remote version moved underneath us
func (c *Client) UpdatePage(ctx context.Context, id string, version int, title, body string) (int, error) {
	req := map[string]any{
		"id":      id,
		"type":    "page",
		"title":   title,
		"version": map[string]any{"number": version + 1},
		"body": map[string]any{
			"storage": map[string]any{
				"value":          body,
				"representation": "storage",
			},
		},
	}

	var updated contentPage
	if err := c.do(ctx, http.MethodPut, "/content/"+id, nil, req, &updated); err != nil {
		return 0, errors.Errorf("updating page %q (id %s): %w", title, id, err)
	}

	newVersion := version + 1
	if updated.Version != nil {
		newVersion = updated.Version.Number
	}
	c.logger.Debug().Str("title", title).Str("id", id).Int("version", newVersion).Msg("updated page")
	return newVersion, nil
}

// 🗑️ DeletePage removes a page
func (c *Client) DeletePage(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/content/"+id, nil, nil, nil); err != nil {
		return errors.Errorf("deleting page %s: %w", id, err)
	}
	return nil
}

// 📎 UploadAttachment associates attachment bytes with a page. The
// create-or-update endpoint replaces an existing attachment with the
// same filename.
func (c *Client) UploadAttachment(ctx context.Context, pageID, filename string, data []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return errors.Errorf("building multipart form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return errors.Errorf("writing attachment bytes: %w", err)
	}
	if err := mw.Close(); err != nil {
		return errors.Errorf("closing multipart form: %w", err)
	}

	endpoint := c.baseURL + "/rest/api/content/" + pageID + "/child/attachment"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, &buf)
	if err != nil {
		return errors.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "nocheck")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Errorf("uploading attachment %s: %w: %w", filename, remote.ErrConnection, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return errors.Errorf("uploading attachment %s to page %s: %w", filename, pageID, err)
	}
	return nil
}

// do performs one JSON request against the REST API and decodes the
// response into out (when non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/rest/api" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Errorf("%s %s: %w: %w", method, path, remote.ErrConnection, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// statusError maps HTTP status codes onto the shared sentinel errors
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Errorf("status %d: %w", resp.StatusCode, remote.ErrAuth)
	case resp.StatusCode == http.StatusNotFound:
		return errors.Errorf("status %d: %w", resp.StatusCode, remote.ErrNotFound)
	case resp.StatusCode == http.StatusConflict:
		return errors.Errorf("status %d: %w", resp.StatusCode, remote.ErrConflict)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
