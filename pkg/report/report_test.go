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
package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yutoh/mediaprobe/pkg/report"
)

func TestWriteAndReadBack(t *testing.T) {
	var buf bytes.Buffer

	w := report.NewWriter(&buf)
	err := w.WriteHeader(report.Header{
		Creator: report.Creator{
			Package:              "mediaprobe",
			Version:              "test",
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{RootPath: "/music"},
	})
	require.NoError(t, err)

	objs := []report.FileObject{
		{Filename: "a.qmc3", FileSize: 1024, Scheme: "qmc", MatchedBy: "name"},
		{Filename: "b.bin", FileSize: 2048, Format: "flac", MatchedBy: "content"},
	}
	for _, obj := range objs {
		require.NoError(t, w.WriteFileObject(obj))
	}
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, "<mediaprobe_report>")
	require.Contains(t, out, "</mediaprobe_report>")

	got, err := report.ReadFileObjects(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a.qmc3", got[0].Filename)
	require.Equal(t, "qmc", got[0].Scheme)
	require.Equal(t, "flac", got[1].Format)
	require.Equal(t, uint64(2048), got[1].FileSize)
}
