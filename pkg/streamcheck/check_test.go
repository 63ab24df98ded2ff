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
package streamcheck_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yutoh/mediaprobe/pkg/streamcheck"
)

// readSeeker is a read+seek handle with no write support.
type readSeeker struct {
	*bytes.Reader
}

// readOnly is a reader with no seek support.
type readOnly struct {
	r io.Reader
}

func (r *readOnly) Read(p []byte) (int, error) { return r.r.Read(p) }

// faultySeeker reads fine but errors on every seek.
type faultySeeker struct {
	*bytes.Reader
	writes int
}

var errSeekBroken = errors.New("seek broken")

func (f *faultySeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, errSeekBroken
}

func (f *faultySeeker) Write(p []byte) (int, error) {
	f.writes++
	return len(p), nil
}

func capErr(t *testing.T, err error) *streamcheck.CapabilityError {
	t.Helper()
	var cerr *streamcheck.CapabilityError
	require.ErrorAs(t, err, &cerr)
	return cerr
}

func TestValidateReadSeek(t *testing.T) {
	rs := &readSeeker{bytes.NewReader([]byte("payload"))}
	require.NoError(t, streamcheck.Validate(rs, streamcheck.DefaultChecks()))
}

func TestValidateMissingWrite(t *testing.T) {
	rs := &readSeeker{bytes.NewReader([]byte("payload"))}

	err := streamcheck.Validate(rs, streamcheck.Checks{Read: true, Seek: true, Write: true})
	cerr := capErr(t, err)
	require.Equal(t, streamcheck.CapWrite, cerr.Capability)
	require.True(t, cerr.Missing)

	// with the write probe disabled the same handle passes
	require.NoError(t, streamcheck.Validate(rs, streamcheck.Checks{Read: true, Seek: true}))
}

func TestValidateMissingSeekStopsBeforeWrite(t *testing.T) {
	ro := &readOnly{strings.NewReader("payload")}

	err := streamcheck.Validate(ro, streamcheck.DefaultChecks())
	cerr := capErr(t, err)
	require.Equal(t, streamcheck.CapSeek, cerr.Capability)
	require.True(t, cerr.Missing)

	// seek fails first, so the write probe must never run
	fs := &faultySeeker{Reader: bytes.NewReader([]byte("payload"))}
	err = streamcheck.Validate(fs, streamcheck.Checks{Read: true, Seek: true, Write: true})
	cerr = capErr(t, err)
	require.Equal(t, streamcheck.CapSeek, cerr.Capability)
	require.False(t, cerr.Missing)
	require.ErrorIs(t, err, errSeekBroken)
	require.Zero(t, fs.writes)
}

func TestValidateMissingRead(t *testing.T) {
	err := streamcheck.Validate(struct{}{}, streamcheck.DefaultChecks())
	cerr := capErr(t, err)
	require.Equal(t, streamcheck.CapRead, cerr.Capability)
	require.True(t, cerr.Missing)
}

func TestValidateSeekMovesCursor(t *testing.T) {
	rs := bytes.NewReader([]byte("payload"))
	require.NoError(t, streamcheck.Validate(rs, streamcheck.DefaultChecks()))

	// the seek probe leaves the cursor at end-of-stream
	pos, err := rs.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(len("payload")), pos)
}

func TestIsStream(t *testing.T) {
	require.False(t, streamcheck.IsStream("some/path"))
	require.False(t, streamcheck.IsStream([]byte("raw")))
	require.False(t, streamcheck.IsStream(pathValue{}))
	require.True(t, streamcheck.IsStream(bytes.NewReader(nil)))
	require.True(t, streamcheck.IsStream(struct{}{}))
}

type pathValue struct{}

func (pathValue) Path() string { return "/tmp/x" }

type namedStream struct{ io.Reader }

func (namedStream) Name() string { return "input.qmc3" }

type stringerStream struct{ io.Reader }

func (stringerStream) String() string { return "<mem stream>" }

func TestDisplayName(t *testing.T) {
	require.Equal(t, "input.qmc3", streamcheck.DisplayName(namedStream{}))
	require.Equal(t, "<mem stream>", streamcheck.DisplayName(stringerStream{}))
	require.Equal(t, "", streamcheck.DisplayName(struct{}{}))
}
