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
package sniff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yutoh/mediaprobe/pkg/sniff"
)

func TestIdentifyRoundTrip(t *testing.T) {
	for _, r := range []*sniff.Registry{sniff.Audio(), sniff.Image()} {
		for _, e := range r.Entries() {
			data := append(e.Magic, []byte("trailing payload bytes")...)

			label, ok := r.Identify(data)
			require.True(t, ok)
			require.Equal(t, e.Label, label)

			magic, ok := r.Header(e.Label)
			require.True(t, ok)
			require.Equal(t, e.Magic, magic)

			dotted, ok := r.Header("." + e.Label)
			require.True(t, ok)
			require.Equal(t, magic, dotted)
		}
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	_, ok := sniff.IdentifyAudio(nil)
	require.False(t, ok)

	_, ok = sniff.IdentifyAudio([]byte{})
	require.False(t, ok)

	// shorter than every registered magic
	_, ok = sniff.IdentifyImage([]byte{0x89})
	require.False(t, ok)

	_, ok = sniff.IdentifyAudio([]byte("not a known header"))
	require.False(t, ok)
}

func TestIdentifyFlac(t *testing.T) {
	label, ok := sniff.IdentifyAudio([]byte("fLaC\x00\x00\x00\x22"))
	require.True(t, ok)
	require.Equal(t, "flac", label)
}

func TestHeaderUnknownLabel(t *testing.T) {
	_, ok := sniff.AudioHeader("mid")
	require.False(t, ok)

	_, ok = sniff.ImageHeader("image/gif")
	require.False(t, ok)
}

func TestDeclarationOrderWins(t *testing.T) {
	r, err := sniff.NewRegistry([]sniff.Header{
		{Magic: []byte("AB"), Label: "short"},
		{Magic: []byte("ABC"), Label: "long"},
	})
	require.NoError(t, err)

	label, ok := r.Identify([]byte("ABCD"))
	require.True(t, ok)
	require.Equal(t, "short", label)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := sniff.NewRegistry([]sniff.Header{
		{Magic: []byte("AB"), Label: "one"},
		{Magic: []byte("AB"), Label: "two"},
	})
	require.Error(t, err)

	_, err = sniff.NewRegistry([]sniff.Header{
		{Magic: []byte("AB"), Label: "one"},
		{Magic: []byte("CD"), Label: "one"},
	})
	require.Error(t, err)
}
