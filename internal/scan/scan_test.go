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
package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yutoh/mediaprobe/pkg/report"
	"github.com/yutoh/mediaprobe/pkg/scheme"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestClassifyFile(t *testing.T) {
	dir := t.TempDir()

	byName := writeFile(t, dir, "song.qmc3", []byte("opaque encrypted payload"))
	byContent := writeFile(t, dir, "cover.bin", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00})
	audio := writeFile(t, dir, "track.raw", []byte("fLaC\x00\x00\x00\x22 stream"))
	noMatch := writeFile(t, dir, "plain.txt", []byte("just text"))

	m, err := classifyFile(byName, 24, scheme.Default(), DefaultMaxHeader)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "qmc", m.Scheme)
	require.Equal(t, "name", m.MatchedBy)

	m, err = classifyFile(byContent, 9, scheme.Default(), DefaultMaxHeader)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "image/png", m.Format)
	require.Equal(t, "content", m.MatchedBy)

	m, err = classifyFile(audio, 14, scheme.Default(), DefaultMaxHeader)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "flac", m.Format)

	m, err = classifyFile(noMatch, 9, scheme.Default(), DefaultMaxHeader)
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestSchemeClassifierFilter(t *testing.T) {
	c, err := schemeClassifier([]string{"ncm"})
	require.NoError(t, err)

	_, ok := c.Classify("a.qmc3")
	require.False(t, ok)

	name, ok := c.Classify("a.ncm")
	require.True(t, ok)
	require.Equal(t, "ncm", name)

	_, err = schemeClassifier([]string{"nope"})
	require.Error(t, err)
}

func TestScanWritesReport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "song.ncm", []byte("payload"))
	writeFile(t, dir, "plain.txt", []byte("text"))

	reportPath := filepath.Join(t.TempDir(), "report.xml")

	err := Scan(dir, Options{
		ReportFile: reportPath,
		LogDir:     t.TempDir(),
	})
	require.NoError(t, err)

	f, err := os.Open(reportPath)
	require.NoError(t, err)
	defer f.Close()

	objs, err := report.ReadFileObjects(f)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	require.Equal(t, "ncm", objs[0].Scheme)
	require.Equal(t, "name", objs[0].MatchedBy)
}

func TestFormatDurationHMS(t *testing.T) {
	require.Equal(t, "0.50s", FormatDurationHMS(500*time.Millisecond))
	require.Equal(t, "00:01:05", FormatDurationHMS(65*time.Second))
	require.Equal(t, "02:00:00", FormatDurationHMS(2*time.Hour))
}
