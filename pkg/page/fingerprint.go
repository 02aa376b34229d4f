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

package page

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// 🔍 Fingerprint returns a SHA-256 hash of the normalized body.
// Identical bodies always produce identical fingerprints, which is what
// makes NoChange detection possible without semantic diffing. The same
// function is applied to local and remote bodies so the two sides are
// comparable.
func Fingerprint(body string) string {
	hash := sha256.Sum256([]byte(normalize(body)))
	return hex.EncodeToString(hash[:])
}

// Fingerprint returns the node's cached body fingerprint, computing it
// on first use.
func (n *Node) Fingerprint() string {
	if n.fp == "" {
		n.fp = Fingerprint(n.Body)
	}
	return n.fp
}

// normalize strips the content differences that survive a round trip
// through the remote editor without meaning anything: line ending
// flavor, trailing whitespace per line, and leading/trailing blank
// space.
func normalize(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
