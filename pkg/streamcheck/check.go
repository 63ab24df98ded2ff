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

// Package streamcheck probes caller-supplied stream handles for the I/O
// capabilities a downstream decoder needs, before any real decoding starts.
package streamcheck

import (
	"fmt"
	"io"
)

// Capability names one of the probed stream operations.
type Capability int

const (
	CapRead Capability = iota
	CapSeek
	CapWrite
)

func (c Capability) String() string {
	switch c {
	case CapRead:
		return "read"
	case CapSeek:
		return "seek"
	case CapWrite:
		return "write"
	default:
		return "unknown"
	}
}

// CapabilityError reports a stream handle that lacks, or fails on, a
// required operation. Missing distinguishes "the handle does not expose the
// operation at all" from "the operation exists but the probe call errored".
type CapabilityError struct {
	Capability Capability
	Missing    bool
	Name       string // diagnostic stream name, may be empty
	Err        error  // probe error, nil when Missing
}

func (e *CapabilityError) Error() string {
	target := "stream"
	if e.Name != "" {
		target = fmt.Sprintf("stream %q", e.Name)
	}
	if e.Missing {
		return fmt.Sprintf("streamcheck: %s does not support %s", target, e.Capability)
	}
	return fmt.Sprintf("streamcheck: cannot %s %s: %v", e.Capability, target, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// Checks selects which probes Validate runs. Probe order is fixed:
// read, then seek, then write.
type Checks struct {
	Read  bool
	Seek  bool
	Write bool
}

// DefaultChecks enables the read and seek probes, the set every decoder
// needs on its input stream.
func DefaultChecks() Checks {
	return Checks{Read: true, Seek: true}
}

// Validate probes v for the enabled capabilities and returns a
// *CapabilityError naming the first one that is missing or faulty.
//
// The read probe performs a zero-length read (io.EOF counts as success).
// The seek probe seeks to end-of-stream and deliberately does not restore
// the prior position; callers must rewind before handing the stream to a
// decoder. The write probe performs a zero-length write.
func Validate(v any, c Checks) error {
	if c.Read {
		r, ok := v.(io.Reader)
		if !ok {
			return &CapabilityError{Capability: CapRead, Missing: true, Name: DisplayName(v)}
		}
		if _, err := r.Read(nil); err != nil && err != io.EOF {
			return &CapabilityError{Capability: CapRead, Name: DisplayName(v), Err: err}
		}
	}

	if c.Seek {
		s, ok := v.(io.Seeker)
		if !ok {
			return &CapabilityError{Capability: CapSeek, Missing: true, Name: DisplayName(v)}
		}
		if _, err := s.Seek(0, io.SeekEnd); err != nil {
			return &CapabilityError{Capability: CapSeek, Name: DisplayName(v), Err: err}
		}
	}

	if c.Write {
		w, ok := v.(io.Writer)
		if !ok {
			return &CapabilityError{Capability: CapWrite, Missing: true, Name: DisplayName(v)}
		}
		if _, err := w.Write(nil); err != nil {
			return &CapabilityError{Capability: CapWrite, Name: DisplayName(v), Err: err}
		}
	}
	return nil
}

// PathLike marks values that render as a filesystem path rather than an
// open handle.
type PathLike interface {
	Path() string
}

// IsStream reports whether v looks like an already-open stream handle, as
// opposed to path-like input (a string, raw bytes, or a PathLike value)
// that still needs opening.
func IsStream(v any) bool {
	switch v.(type) {
	case string, []byte:
		return false
	}
	if _, ok := v.(PathLike); ok {
		return false
	}
	return true
}

// DisplayName returns a diagnostic name for a stream handle: its Name()
// if it has one, else its string rendering, else "". Never used for
// classification decisions.
func DisplayName(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}
