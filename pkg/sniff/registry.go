// Copyright (c) 2025 The mediaprobe authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package sniff identifies audio and image content by matching magic-byte
// prefixes against a fixed registry of known formats.
package sniff

import (
	"bytes"
	"fmt"
	"strings"
)

// Header associates a magic-byte sequence with a format label.
type Header struct {
	Magic []byte
	Label string
}

// Registry is an ordered set of headers. Lookups in both directions are
// derived from the same canonical entry list, so the magic<->label mapping
// cannot drift apart.
//
// Identification scans entries in declaration order and returns the first
// match, which keeps results deterministic should overlapping prefixes ever
// be registered.
type Registry struct {
	entries []Header
	byLabel map[string][]byte
}

// NewRegistry builds a registry from an ordered list of headers.
// Duplicate magics or labels violate the bijection and are rejected.
func NewRegistry(entries []Header) (*Registry, error) {
	byLabel := make(map[string][]byte, len(entries))

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if len(e.Magic) == 0 || e.Label == "" {
			return nil, fmt.Errorf("sniff: empty header entry for %q", e.Label)
		}

		if _, ok := seen[string(e.Magic)]; ok {
			return nil, fmt.Errorf("sniff: duplicate magic %x", e.Magic)
		}
		seen[string(e.Magic)] = struct{}{}

		if _, ok := byLabel[e.Label]; ok {
			return nil, fmt.Errorf("sniff: duplicate label %q", e.Label)
		}
		byLabel[e.Label] = e.Magic
	}

	return &Registry{
		entries: entries,
		byLabel: byLabel,
	}, nil
}

// MustRegistry is like NewRegistry but panics on error.
// Intended for the built-in tables.
func MustRegistry(entries []Header) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Identify returns the label of the first entry whose magic is a prefix of
// data. A buffer too short to match any entry simply yields no result.
func (r *Registry) Identify(data []byte) (string, bool) {
	for _, e := range r.entries {
		if bytes.HasPrefix(data, e.Magic) {
			return e.Label, true
		}
	}
	return "", false
}

// Header returns the magic bytes registered for label. A single leading
// separator dot is stripped, so Header(".flac") and Header("flac") agree.
func (r *Registry) Header(label string) ([]byte, bool) {
	label = strings.TrimPrefix(label, ".")

	magic, ok := r.byLabel[label]
	if !ok {
		return nil, false
	}
	return bytes.Clone(magic), true
}

// Entries returns a copy of the canonical entry list, in declaration order.
func (r *Registry) Entries() []Header {
	entries := make([]Header, len(r.entries))
	for i, e := range r.entries {
		entries[i] = Header{Magic: bytes.Clone(e.Magic), Label: e.Label}
	}
	return entries
}
