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

// Package scheme maps file names onto proprietary encryption/container
// schemes using ordered shell-glob pattern tables.
package scheme

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Scheme names an encryption scheme and the glob patterns its files carry.
// Patterns use shell semantics: `*`, `?`, `[...]` and `[!...]`, matched
// case-sensitively against the full file name.
type Scheme struct {
	Name     string
	Patterns []string
}

type compiledScheme struct {
	name     string
	patterns []glob.Glob
	sources  []string
}

// Classifier resolves file names against an ordered scheme table.
// Scheme order, then pattern order within a scheme, decides the winner when
// patterns overlap.
type Classifier struct {
	schemes []compiledScheme
}

// NewClassifier compiles an ordered scheme table.
func NewClassifier(schemes []Scheme) (*Classifier, error) {
	compiled := make([]compiledScheme, 0, len(schemes))
	for _, s := range schemes {
		cs := compiledScheme{name: s.Name}
		for _, p := range s.Patterns {
			g, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("scheme %q: bad pattern %q: %w", s.Name, p, err)
			}
			cs.patterns = append(cs.patterns, g)
			cs.sources = append(cs.sources, p)
		}
		compiled = append(compiled, cs)
	}
	return &Classifier{schemes: compiled}, nil
}

// MustClassifier is like NewClassifier but panics on a bad pattern.
func MustClassifier(schemes []Scheme) *Classifier {
	c, err := NewClassifier(schemes)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first scheme with a pattern matching name.
// No match is a normal outcome, not an error.
func (c *Classifier) Classify(name string) (string, bool) {
	for _, s := range c.schemes {
		for _, g := range s.patterns {
			if g.Match(name) {
				return s.name, true
			}
		}
	}
	return "", false
}

// Schemes returns the table in declaration order, with the original
// pattern sources.
func (c *Classifier) Schemes() []Scheme {
	out := make([]Scheme, len(c.schemes))
	for i, s := range c.schemes {
		out[i] = Scheme{
			Name:     s.name,
			Patterns: append([]string(nil), s.sources...),
		}
	}
	return out
}

// builtin is the default scheme table. qmc covers the whole family of
// QQ Music derivatives (qmc*, tkm, mflac/mgg and the bkc* renames).
var builtin = MustClassifier([]Scheme{
	{
		Name:     "ncm",
		Patterns: []string{"*.ncm"},
	},
	{
		Name: "qmc",
		Patterns: []string{
			"*.qmc[023468]", "*.qmcflac", "*.qmcogg",
			"*.tkm",
			"*.mflac", "*.mflac[0]", "*.mgg", "*.mgg[01l]",
			"*.bkcmp3", "*.bkcm4a", "*.bkcflac", "*.bkcwav",
			"*.bkcape", "*.bkcogg", "*.bkcwma",
		},
	},
})

// Default returns the built-in classifier.
func Default() *Classifier { return builtin }

// Classify resolves name against the built-in scheme table.
func Classify(name string) (string, bool) {
	return builtin.Classify(name)
}

// Ext returns the last dot-delimited suffix of name including the dot,
// or "" if there is none. Standard path-splitting convention, independent
// of any glob table.
func Ext(name string) string {
	return filepath.Ext(name)
}
